package usecase

import (
	"context"

	"flightcast-service/internal/domain/entity"
	"flightcast-service/internal/domain/repository"
	"flightcast-service/pkg/logger"
	"flightcast-service/pkg/metrics"
)

// EnrichedFlight pairs a live flight handle with the registration it was
// resolved from. It is the single per-request result value carried through
// the pipeline; nothing is staged in shared state between stages.
type EnrichedFlight struct {
	Flight       *entity.Flight
	Registration string
}

// Details returns the nested detail record attached during enrichment.
func (e *EnrichedFlight) Details() entity.FlightDetails {
	return e.Flight.Details
}

// FlightLookup resolves a free-text flight identifier into one enriched
// flight record.
type FlightLookup struct {
	provider repository.FlightProvider
	metrics  *metrics.Metrics
	logger   logger.Logger
}

// NewFlightLookup creates a new flight lookup pipeline.
func NewFlightLookup(provider repository.FlightProvider, m *metrics.Metrics, logger logger.Logger) *FlightLookup {
	return &FlightLookup{
		provider: provider,
		metrics:  m,
		logger:   logger,
	}
}

// Lookup runs the pipeline for one identifier: search, resolve the
// registration of the first live hit, then enrich. It returns
// entity.ErrFlightNotFound when the search has no live entries,
// entity.ErrNoTrackedInstances when the registration enumerates no tracked
// flights, and a *entity.ProviderError for upstream faults. All outcomes
// are terminal for the request; there are no retries.
func (l *FlightLookup) Lookup(ctx context.Context, identifier string) (*EnrichedFlight, error) {
	l.logger.Info("Looking up flight", "identifier", identifier)
	l.metrics.LookupsTotal.Inc()

	result, err := l.provider.Search(ctx, identifier)
	if err != nil {
		l.metrics.ProviderErrors.WithLabelValues("search").Inc()
		return nil, entity.NewProviderError("search", err)
	}

	if !result.HasLive() {
		l.logger.Info("No live entries for identifier", "identifier", identifier)
		l.metrics.LookupsNotFound.Inc()
		return nil, entity.ErrFlightNotFound
	}

	registration := result.Live[0].Detail.Registration
	l.logger.Info("Resolved registration", "identifier", identifier, "registration", registration)

	flight, err := l.Enrich(ctx, registration)
	if err != nil {
		return nil, err
	}

	return flight, nil
}

// Enrich fetches all tracked instances for a registration and attaches full
// telemetry to each. When more than one instance is tracked, the last one
// processed becomes the canonical record for the request.
func (l *FlightLookup) Enrich(ctx context.Context, registration string) (*EnrichedFlight, error) {
	flights, err := l.provider.GetFlights(ctx, repository.FlightQuery{
		Registration: registration,
	})
	if err != nil {
		l.metrics.ProviderErrors.WithLabelValues("get_flights").Inc()
		return nil, entity.NewProviderError("get_flights", err)
	}

	if len(flights) == 0 {
		l.logger.Warn("Registration enumerates no tracked instances", "registration", registration)
		return nil, entity.ErrNoTrackedInstances
	}

	var current *entity.Flight
	for _, flight := range flights {
		details, err := l.provider.GetFlightDetails(ctx, flight)
		if err != nil {
			l.metrics.ProviderErrors.WithLabelValues("get_flight_details").Inc()
			return nil, entity.NewProviderError("get_flight_details", err)
		}
		flight.SetFlightDetails(details)
		current = flight
	}

	l.logger.Info("Enriched flight",
		"registration", registration,
		"callsign", current.Callsign,
		"instances", len(flights))

	return &EnrichedFlight{
		Flight:       current,
		Registration: registration,
	}, nil
}
