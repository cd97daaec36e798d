package entity

import (
	"fmt"
)

// Flight is the live handle for one tracked flight instance as reported by
// the realtime feed. TrailPoint history and the nested detail record are
// attached during enrichment; until then Details is nil.
type Flight struct {
	ID            string
	ICAO24        string
	Registration  string
	Callsign      string
	Number        string
	AircraftCode  string
	AirlineICAO   string
	OriginIATA    string
	DestIATA      string
	Latitude      float64
	Longitude     float64
	AltitudeFt    int
	GroundSpeedKt int
	Heading       int
	VerticalFpm   int
	Squawk        string
	OnGround      bool
	Timestamp     int64

	Details FlightDetails

	destination *Point
}

// Position returns the flight's last reported coordinates.
func (f *Flight) Position() Point {
	return NewPoint(f.Latitude, f.Longitude)
}

// FlightLevel reports the altitude as a flight level string for altitudes
// in the transition layer and above, otherwise the raw altitude in feet.
func (f *Flight) FlightLevel() string {
	if f.AltitudeFt >= 10000 {
		return fmt.Sprintf("%03d FL", f.AltitudeFt/100)
	}
	return fmt.Sprintf("%d ft", f.AltitudeFt)
}

// VerticalSpeed returns the climb/descent rate in feet per minute.
func (f *Flight) VerticalSpeed() int {
	return f.VerticalFpm
}

// DistanceFrom returns the great-circle distance in kilometers between the
// flight's live position and a reference point.
func (f *Flight) DistanceFrom(p Point) float64 {
	return Distance(f.Position(), p)
}

// SetFlightDetails attaches the nested detail record and lifts the
// destination airport position out of it when present.
func (f *Flight) SetFlightDetails(details FlightDetails) {
	f.Details = details

	lat, latOK := details.Float("airport.destination.position.latitude")
	lon, lonOK := details.Float("airport.destination.position.longitude")
	if latOK && lonOK {
		pos := NewPoint(lat, lon)
		f.destination = &pos
	}
}

// DestinationPosition reports the destination airport coordinates when the
// enriched record carries them.
func (f *Flight) DestinationPosition() (Point, bool) {
	if f.destination == nil {
		return Point{}, false
	}
	return *f.destination, true
}

// SetDestinationPosition records a destination position resolved from an
// external airport lookup.
func (f *Flight) SetDestinationPosition(p Point) {
	f.destination = &p
}

// String renders the compact listing form. The proximity scanner extracts
// aircraft type and registration from this exact token layout, so the
// "(TYPE) REG - CALLSIGN" grammar is a contract, not a formatting choice.
func (f *Flight) String() string {
	return fmt.Sprintf("(%s) %s - %s", f.AircraftCode, f.Registration, f.Callsign)
}
