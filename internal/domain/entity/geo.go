package entity

import (
	"math"
)

const (
	earthRadiusKilometers float64 = 6371
	degToRad              float64 = math.Pi / 180
)

// Point is a first-class geographic coordinate. Reference points for
// distance computations are always expressed as a Point, never by mutating
// another location-bearing record.
type Point struct {
	Latitude  float64
	Longitude float64
}

// NewPoint returns a Point for the given coordinates in degrees.
func NewPoint(latitude, longitude float64) Point {
	return Point{
		Latitude:  latitude,
		Longitude: longitude,
	}
}

func (p Point) toRadians() Point {
	return Point{
		Latitude:  p.Latitude * degToRad,
		Longitude: p.Longitude * degToRad,
	}
}

// Distance calculates the great-circle distance between two points in
// kilometers using the haversine formula.
func Distance(p, q Point) float64 {
	fromPos := p.toRadians()
	toPos := q.toRadians()

	deltaLat := toPos.Latitude - fromPos.Latitude
	deltaLon := toPos.Longitude - fromPos.Longitude

	a := math.Pow(math.Sin(deltaLat/2), 2) +
		math.Cos(fromPos.Latitude)*
			math.Cos(toPos.Latitude)*
			math.Pow(math.Sin(deltaLon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return c * earthRadiusKilometers
}

// Bounds is the rectangular region used to query the provider for flights
// near a point.
type Bounds struct {
	North float64
	South float64
	West  float64
	East  float64
}

// BoundsAroundPoint derives the bounding rectangle whose edges lie
// radiusMeters away from the center point.
func BoundsAroundPoint(center Point, radiusMeters float64) Bounds {
	latDelta := (radiusMeters / 1000) / (earthRadiusKilometers * degToRad)

	lonRadius := earthRadiusKilometers * math.Cos(center.Latitude*degToRad)
	lonDelta := (radiusMeters / 1000) / (lonRadius * degToRad)

	return Bounds{
		North: center.Latitude + latDelta,
		South: center.Latitude - latDelta,
		West:  center.Longitude - lonDelta,
		East:  center.Longitude + lonDelta,
	}
}
