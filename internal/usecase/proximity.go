package usecase

import (
	"context"
	"errors"
	"math"
	"regexp"

	"flightcast-service/internal/domain/entity"
	"flightcast-service/internal/domain/repository"
	"flightcast-service/pkg/logger"
	"flightcast-service/pkg/metrics"
)

// listingPattern pins the token grammar of the compact feed listing:
// parenthesized aircraft type, then a registration token before a hyphen.
// The listing form is the only place the feed exposes both fields together,
// so the grammar is a documented contract with the entity String method.
var listingPattern = regexp.MustCompile(`\((\w+)\)\s*([\w-]+)\s*-`)

// ScanResult is one nearby aircraft with its distance from the query point.
type ScanResult struct {
	Flight         *EnrichedFlight
	AircraftType   string
	DistanceMeters int
}

// ProximityScanner resolves all aircraft within a radius of a point into a
// deduplicated, enriched, distance-annotated listing.
type ProximityScanner struct {
	provider repository.FlightProvider
	lookup   *FlightLookup
	metrics  *metrics.Metrics
	logger   logger.Logger
}

// NewProximityScanner creates a new proximity scanner. Enrichment per
// candidate is delegated to the lookup pipeline's enriching stage.
func NewProximityScanner(provider repository.FlightProvider, lookup *FlightLookup, m *metrics.Metrics, logger logger.Logger) *ProximityScanner {
	return &ProximityScanner{
		provider: provider,
		lookup:   lookup,
		metrics:  m,
		logger:   logger,
	}
}

// Scan finds all tracked aircraft within radiusMeters of point, enriches
// each unique registration and annotates it with the great-circle distance
// to the query point. Results keep discovery order; zero candidates yield
// an empty slice, not an error.
func (s *ProximityScanner) Scan(ctx context.Context, point entity.Point, radiusMeters float64) ([]ScanResult, error) {
	s.logger.Info("Scanning for nearby aircraft",
		"lat", point.Latitude,
		"lon", point.Longitude,
		"radiusMeters", radiusMeters)
	s.metrics.ScansTotal.Inc()

	bounds := s.provider.GetBoundsByPoint(point.Latitude, point.Longitude, radiusMeters)

	listing, err := s.provider.GetFlights(ctx, repository.FlightQuery{Bounds: &bounds})
	if err != nil {
		s.metrics.ProviderErrors.WithLabelValues("get_flights").Inc()
		return nil, entity.NewProviderError("get_flights", err)
	}

	registrations, order := DedupListing(listing)
	s.logger.Info("Deduplicated listing",
		"candidates", len(listing),
		"unique", len(order))

	results := make([]ScanResult, 0, len(order))
	for _, registration := range order {
		enriched, err := s.lookup.Enrich(ctx, registration)
		if err != nil {
			// A candidate that vanished between the listing and the
			// enrichment round-trip is skipped, but a provider fault ends
			// the whole scan.
			if errors.Is(err, entity.ErrNoTrackedInstances) {
				s.logger.Debug("Candidate no longer tracked", "registration", registration)
				continue
			}
			return nil, err
		}

		distanceMeters := int(math.Round(enriched.Flight.DistanceFrom(point) * 1000))
		results = append(results, ScanResult{
			Flight:         enriched,
			AircraftType:   registrations[registration],
			DistanceMeters: distanceMeters,
		})
	}

	return results, nil
}

// ListingToken is one (type, registration) pair extracted from the textual
// form of a listing entry.
type ListingToken struct {
	AircraftType string
	Registration string
}

// ExtractListingTokens applies the pinned listing grammar to one entry's
// textual form. Text that does not match yields no tokens.
func ExtractListingTokens(text string) []ListingToken {
	matches := listingPattern.FindAllStringSubmatch(text, -1)
	tokens := make([]ListingToken, 0, len(matches))
	for _, match := range matches {
		tokens = append(tokens, ListingToken{
			AircraftType: match[1],
			Registration: match[2],
		})
	}

	return tokens
}

// DedupListing extracts (type, registration) pairs from the textual form of
// each listing entry and deduplicates by registration, last sighting wins.
// Entries that do not match the listing grammar are silently skipped. The
// returned order preserves first discovery.
func DedupListing(listing []*entity.Flight) (map[string]string, []string) {
	byRegistration := make(map[string]string)
	order := make([]string, 0, len(listing))

	for _, item := range listing {
		for _, token := range ExtractListingTokens(item.String()) {
			if _, seen := byRegistration[token.Registration]; !seen {
				order = append(order, token.Registration)
			}
			byRegistration[token.Registration] = token.AircraftType
		}
	}

	return byRegistration, order
}
