package repository

import (
	"context"

	"flightcast-service/internal/domain/entity"
)

// AirlineRepository defines the interface for airline reference lookups.
type AirlineRepository interface {
	GetByICAO(ctx context.Context, icao string) (*entity.Airline, error)
}
