package entity

// MarkerKind distinguishes how a map renderer should draw a marker.
type MarkerKind int

const (
	// MarkerStart marks the first trail point with a distinct icon.
	MarkerStart MarkerKind = iota
	// MarkerEnd emphasizes the most recent trail point.
	MarkerEnd
	// MarkerWaypoint is the uniform small marker for intermediate points.
	MarkerWaypoint
	// MarkerDestination marks the destination airport when known.
	MarkerDestination
)

// MapMarker is one marker in a MapSpec.
type MapMarker struct {
	Position Point
	Kind     MarkerKind
}

// MapSpec is the renderer-facing description of a flight-path map: a
// polyline over the trail plus classified markers, with precomputed center
// and bounding envelope.
type MapSpec struct {
	Path    []Point
	Markers []MapMarker
	Center  Point
	Bounds  Bounds
}

// GraphSpec is the renderer-facing description of the dual-axis telemetry
// graph. Labels, Speeds and Altitudes are parallel slices in chronological
// order; x-axis labels are suppressed at render time.
type GraphSpec struct {
	Labels    []string
	Speeds    []float64
	Altitudes []float64
}
