package usecase

import (
	"context"
	"errors"

	"flightcast-service/internal/domain/entity"
	"flightcast-service/internal/domain/repository"
	"flightcast-service/pkg/logger"
	"flightcast-service/pkg/utils"
)

// ErrEmptyTrail is returned when a flight record carries no telemetry
// history to visualize.
var ErrEmptyTrail = errors.New("flight trail is empty")

// Visualizer converts a flight's trail into renderer-facing specs.
type Visualizer struct {
	airports repository.AirportRepository
	logger   logger.Logger
}

// NewVisualizer creates a new visualizer. airports is used to resolve the
// destination position when the live handle does not carry one; it may be
// nil, in which case the destination marker is simply omitted.
func NewVisualizer(airports repository.AirportRepository, logger logger.Logger) *Visualizer {
	return &Visualizer{
		airports: airports,
		logger:   logger,
	}
}

// BuildGraph produces the dual-axis time-series spec: timestamps, speeds
// and altitudes as parallel slices. The raw trail arrives newest-first and
// is reversed to chronological order here.
func (v *Visualizer) BuildGraph(details entity.FlightDetails) (*entity.GraphSpec, error) {
	trail := details.Trail()
	if len(trail) == 0 {
		return nil, ErrEmptyTrail
	}

	n := len(trail)
	spec := &entity.GraphSpec{
		Labels:    make([]string, n),
		Speeds:    make([]float64, n),
		Altitudes: make([]float64, n),
	}

	for i, point := range trail {
		j := n - 1 - i
		spec.Labels[j] = utils.FormatTrailTimestamp(point.Timestamp)
		spec.Speeds[j] = point.SpeedKt
		spec.Altitudes[j] = point.AltitudeFt
	}

	return spec, nil
}

// BuildMap produces the flight-path map spec: a polyline over the trail in
// as-received order, a distinct start marker, an emphasized end marker,
// uniform waypoints in between, and a destination marker when a destination
// position can be resolved. The bounding envelope includes the destination
// and the first trail point so the destination stays visible even when it
// lies beyond the flown path.
func (v *Visualizer) BuildMap(ctx context.Context, details entity.FlightDetails, current *entity.Flight) (*entity.MapSpec, error) {
	trail := details.Trail()
	if len(trail) == 0 {
		return nil, ErrEmptyTrail
	}

	path := make([]entity.Point, len(trail))
	for i, point := range trail {
		path[i] = entity.NewPoint(point.Latitude, point.Longitude)
	}

	destination, haveDest := v.resolveDestination(ctx, details, current)

	included := make([]entity.Point, 0, len(path)+2)
	included = append(included, path...)
	if haveDest {
		included = append(included, destination)
	}
	included = append(included, path[0])

	spec := &entity.MapSpec{
		Path:    path,
		Center:  meanPoint(included),
		Bounds:  envelope(included),
		Markers: make([]entity.MapMarker, 0, len(path)+1),
	}

	for i, point := range path {
		kind := entity.MarkerWaypoint
		switch i {
		case 0:
			kind = entity.MarkerStart
		case len(path) - 1:
			kind = entity.MarkerEnd
		}
		spec.Markers = append(spec.Markers, entity.MapMarker{Position: point, Kind: kind})
	}

	if haveDest {
		spec.Markers = append(spec.Markers, entity.MapMarker{
			Position: destination,
			Kind:     entity.MarkerDestination,
		})
	}

	return spec, nil
}

// resolveDestination prefers the live handle's destination accessor and
// falls back to an airport lookup by destination code. Both paths failing
// just means no destination marker.
func (v *Visualizer) resolveDestination(ctx context.Context, details entity.FlightDetails, current *entity.Flight) (entity.Point, bool) {
	if current != nil {
		if pos, ok := current.DestinationPosition(); ok {
			return pos, true
		}
	}

	if v.airports == nil {
		return entity.Point{}, false
	}

	code, ok := details.String("airport.destination.code.icao")
	if !ok {
		return entity.Point{}, false
	}

	airport, err := v.airports.GetByCode(ctx, code)
	if err != nil {
		v.logger.Debug("Destination airport lookup failed", "code", code, "error", err)
		return entity.Point{}, false
	}

	return airport.Position(), true
}

func meanPoint(points []entity.Point) entity.Point {
	var sumLat, sumLon float64
	for _, p := range points {
		sumLat += p.Latitude
		sumLon += p.Longitude
	}

	n := float64(len(points))

	return entity.NewPoint(sumLat/n, sumLon/n)
}

func envelope(points []entity.Point) entity.Bounds {
	bounds := entity.Bounds{
		North: points[0].Latitude,
		South: points[0].Latitude,
		West:  points[0].Longitude,
		East:  points[0].Longitude,
	}

	for _, p := range points[1:] {
		if p.Latitude > bounds.North {
			bounds.North = p.Latitude
		}
		if p.Latitude < bounds.South {
			bounds.South = p.Latitude
		}
		if p.Longitude < bounds.West {
			bounds.West = p.Longitude
		}
		if p.Longitude > bounds.East {
			bounds.East = p.Longitude
		}
	}

	return bounds
}
