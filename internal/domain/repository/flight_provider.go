package repository

import (
	"context"

	"flightcast-service/internal/domain/entity"
)

// FlightQuery narrows a realtime feed request. Exactly one of Registration,
// AirlineICAO or Bounds is normally set. The feed carries instantaneous
// telemetry only; full detail records are fetched per flight through
// GetFlightDetails.
type FlightQuery struct {
	Registration string
	AirlineICAO  string
	Bounds       *entity.Bounds
}

// FlightProvider defines the interface to the upstream flight-data source.
type FlightProvider interface {
	// Search resolves a free-text identifier (callsign, flight number or
	// registration) into grouped search hits.
	Search(ctx context.Context, query string) (*entity.SearchResult, error)

	// GetFlights enumerates currently tracked flights matching the query.
	GetFlights(ctx context.Context, query FlightQuery) ([]*entity.Flight, error)

	// GetFlightDetails fetches the full nested telemetry record for one
	// tracked flight.
	GetFlightDetails(ctx context.Context, flight *entity.Flight) (entity.FlightDetails, error)

	// GetBoundsByPoint derives the rectangular region radiusMeters around
	// a point, in the provider's bounds convention.
	GetBoundsByPoint(lat, lon, radiusMeters float64) entity.Bounds

	// GetAirport fetches airport reference data by ICAO or IATA code.
	GetAirport(ctx context.Context, code string) (*entity.Airport, error)
}
