package repository

import (
	"context"

	"flightcast-service/internal/domain/entity"
	"flightcast-service/internal/domain/repository"
)

// ProviderAirportRepository adapts the flight provider's airport lookup to
// the AirportRepository interface.
type ProviderAirportRepository struct {
	provider repository.FlightProvider
}

// NewProviderAirportRepository creates the adapter.
func NewProviderAirportRepository(provider repository.FlightProvider) *ProviderAirportRepository {
	return &ProviderAirportRepository{provider: provider}
}

// GetByCode fetches airport reference data from the provider.
func (r *ProviderAirportRepository) GetByCode(ctx context.Context, code string) (*entity.Airport, error) {
	return r.provider.GetAirport(ctx, code)
}

// FallbackAirportRepository tries a primary source first and falls back to
// a secondary one. Used to consult the local reference table before paying
// for a provider round-trip.
type FallbackAirportRepository struct {
	primary   repository.AirportRepository
	secondary repository.AirportRepository
}

// NewFallbackAirportRepository chains two airport sources.
func NewFallbackAirportRepository(primary, secondary repository.AirportRepository) *FallbackAirportRepository {
	return &FallbackAirportRepository{
		primary:   primary,
		secondary: secondary,
	}
}

// GetByCode resolves an airport from the primary source, then the secondary.
func (r *FallbackAirportRepository) GetByCode(ctx context.Context, code string) (*entity.Airport, error) {
	airport, err := r.primary.GetByCode(ctx, code)
	if err == nil {
		return airport, nil
	}

	return r.secondary.GetByCode(ctx, code)
}
