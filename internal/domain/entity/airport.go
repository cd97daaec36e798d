package entity

// Airport represents airport reference data. Airports are read-mostly
// reference records; their identity and position fields are never mutated
// after retrieval.
type Airport struct {
	Name       string
	ICAO       string
	IATA       string
	Latitude   float64
	Longitude  float64
	AltitudeFt int
	Country    string
}

// Position returns the airport coordinates as a Point.
func (a *Airport) Position() Point {
	return NewPoint(a.Latitude, a.Longitude)
}
