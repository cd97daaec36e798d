package entity

import (
	"flightcast-service/pkg/utils"
)

// FlightDetails is the nested detail record merged onto a live handle
// during enrichment. The upstream shape is loosely typed and any field or
// nesting level may be absent, so access goes through path extraction
// rather than struct decoding.
type FlightDetails map[string]any

// String extracts a string value at a dotted path. The receiver is passed
// down as its underlying map type; the extractor walks plain maps and
// slices only.
func (d FlightDetails) String(path string) (string, bool) {
	return utils.ExtractString(map[string]any(d), path)
}

// Float extracts a numeric value at a dotted path.
func (d FlightDetails) Float(path string) (float64, bool) {
	return utils.ExtractFloat(map[string]any(d), path)
}

// Int extracts an integer value at a dotted path.
func (d FlightDetails) Int(path string) (int64, bool) {
	return utils.ExtractInt(map[string]any(d), path)
}

// StringOr extracts a string value at a dotted path, degrading to the
// fallback on any failure.
func (d FlightDetails) StringOr(path, fallback string) string {
	return utils.StringOr(map[string]any(d), path, fallback)
}

// TrailPoint is one telemetry sample of the flight's history.
type TrailPoint struct {
	Timestamp  int64
	Latitude   float64
	Longitude  float64
	SpeedKt    float64
	AltitudeFt float64
}

// Trail decodes the ordered telemetry history. The provider returns samples
// newest-first; callers needing chronological order must reverse.
func (d FlightDetails) Trail() []TrailPoint {
	raw, ok := utils.Extract(map[string]any(d), "trail")
	if !ok {
		return nil
	}

	items, ok := raw.([]any)
	if !ok {
		return nil
	}

	points := make([]TrailPoint, 0, len(items))
	for _, item := range items {
		sample, ok := item.(map[string]any)
		if !ok {
			continue
		}

		ts, tsOK := utils.ExtractInt(sample, "ts")
		lat, latOK := utils.ExtractFloat(sample, "lat")
		lon, lonOK := utils.ExtractFloat(sample, "lng")
		if !tsOK || !latOK || !lonOK {
			continue
		}

		spd, _ := utils.ExtractFloat(sample, "spd")
		alt, _ := utils.ExtractFloat(sample, "alt")

		points = append(points, TrailPoint{
			Timestamp:  ts,
			Latitude:   lat,
			Longitude:  lon,
			SpeedKt:    spd,
			AltitudeFt: alt,
		})
	}

	return points
}
