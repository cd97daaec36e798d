package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"flightcast-service/internal/domain/entity"
	"flightcast-service/internal/domain/repository"
	"flightcast-service/pkg/logger"
	"flightcast-service/pkg/metrics"
	"flightcast-service/pkg/utils"
)

const (
	searchPath       = "/v1/search/web/find"
	feedPath         = "/zones/fcgi/feed.js"
	clickhandlerPath = "/clickhandler/"
	airportStatsPath = "/airports/traffic-stats/"

	// Feed entries are positional arrays; the slots below are fixed by the
	// upstream wire format.
	slotICAO24       = 0
	slotLatitude     = 1
	slotLongitude    = 2
	slotHeading      = 3
	slotAltitude     = 4
	slotGroundSpeed  = 5
	slotSquawk       = 6
	slotAircraftCode = 8
	slotRegistration = 9
	slotTimestamp    = 10
	slotOriginIATA   = 11
	slotDestIATA     = 12
	slotNumber       = 13
	slotOnGround     = 14
	slotVertical     = 15
	slotCallsign     = 16
	slotAirlineICAO  = 18
)

var (
	ErrNonOKResponse     = errors.New("non-OK response")
	ErrEmptyResponseBody = errors.New("empty response body")
)

// feedMetaKeys are the non-flight keys of a feed response.
var feedMetaKeys = map[string]bool{
	"full_count": true,
	"version":    true,
	"stats":      true,
}

// Client talks to the flight-data source over HTTP and implements the
// FlightProvider interface.
type Client struct {
	baseURL    string
	dataURL    string
	httpClient *http.Client
	metrics    *metrics.Metrics
	logger     logger.Logger
}

var _ repository.FlightProvider = (*Client)(nil)

// NewClient creates a new provider client.
func NewClient(baseURL, dataURL string, timeout time.Duration, m *metrics.Metrics, logger logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		dataURL:    strings.TrimRight(dataURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		metrics:    m,
		logger:     logger,
	}
}

// Search resolves a free-text identifier into grouped search hits.
func (c *Client) Search(ctx context.Context, query string) (*entity.SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", "50")

	body, err := c.get(ctx, c.baseURL+searchPath+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	var raw struct {
		Results []entity.SearchEntry `json:"results"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("search %q: decode: %w", query, err)
	}

	result := &entity.SearchResult{}
	for _, entry := range raw.Results {
		switch entry.Type {
		case "live":
			result.Live = append(result.Live, entry)
		case "airport":
			result.Airports = append(result.Airports, entry)
		case "schedule":
			result.Schedule = append(result.Schedule, entry)
		case "aircraft":
			result.Aircraft = append(result.Aircraft, entry)
		}
	}

	return result, nil
}

// GetFlights enumerates currently tracked flights matching the query.
func (c *Client) GetFlights(ctx context.Context, query repository.FlightQuery) ([]*entity.Flight, error) {
	params := url.Values{}
	params.Set("faa", "1")
	params.Set("satellite", "1")
	params.Set("mlat", "1")
	params.Set("flarm", "1")
	params.Set("adsb", "1")
	params.Set("gnd", "1")
	params.Set("air", "1")
	params.Set("vehicles", "1")
	params.Set("estimated", "1")
	params.Set("gliders", "1")
	params.Set("stats", "0")
	params.Set("maxage", "14400")

	if query.Registration != "" {
		params.Set("reg", query.Registration)
	}
	if query.AirlineICAO != "" {
		params.Set("airline", query.AirlineICAO)
	}
	if query.Bounds != nil {
		params.Set("bounds", fmt.Sprintf("%.4f,%.4f,%.4f,%.4f",
			query.Bounds.North, query.Bounds.South, query.Bounds.West, query.Bounds.East))
	}

	body, err := c.get(ctx, c.dataURL+feedPath+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("get flights: %w", err)
	}

	var feed map[string]json.RawMessage
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("get flights: decode feed: %w", err)
	}

	flights := make([]*entity.Flight, 0, len(feed))
	for id, raw := range feed {
		if feedMetaKeys[id] {
			continue
		}

		var slots []any
		if err := json.Unmarshal(raw, &slots); err != nil {
			// Non-array keys carry feed metadata, not flights.
			continue
		}

		flights = append(flights, decodeFeedEntry(id, slots))
	}

	return flights, nil
}

// GetFlightDetails fetches the full nested telemetry record for one flight.
func (c *Client) GetFlightDetails(ctx context.Context, flight *entity.Flight) (entity.FlightDetails, error) {
	params := url.Values{}
	params.Set("version", "1.5")
	params.Set("flight", flight.ID)

	body, err := c.get(ctx, c.dataURL+clickhandlerPath+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("get flight details %s: %w", flight.ID, err)
	}

	var details entity.FlightDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, fmt.Errorf("get flight details %s: decode: %w", flight.ID, err)
	}

	return details, nil
}

// GetBoundsByPoint derives the rectangular region radiusMeters around a
// point. This is a local computation in the provider's bounds convention.
func (c *Client) GetBoundsByPoint(lat, lon, radiusMeters float64) entity.Bounds {
	return entity.BoundsAroundPoint(entity.NewPoint(lat, lon), radiusMeters)
}

// GetAirport fetches airport reference data by code.
func (c *Client) GetAirport(ctx context.Context, code string) (*entity.Airport, error) {
	params := url.Values{}
	params.Set("airport", code)

	body, err := c.get(ctx, c.baseURL+airportStatsPath+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("get airport %s: %w", code, err)
	}

	var record map[string]any
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("get airport %s: decode: %w", code, err)
	}

	lat, latOK := utils.ExtractFloat(record, "details.position.latitude")
	lon, lonOK := utils.ExtractFloat(record, "details.position.longitude")
	if !latOK || !lonOK {
		return nil, fmt.Errorf("get airport %s: record carries no position", code)
	}

	elevation, _ := utils.ExtractInt(record, "details.position.elevation")

	airport := &entity.Airport{
		Name:       utils.StringOr(record, "details.name", code),
		ICAO:       utils.StringOr(record, "details.code.icao", ""),
		IATA:       utils.StringOr(record, "details.code.iata", ""),
		Latitude:   lat,
		Longitude:  lon,
		AltitudeFt: int(elevation),
		Country:    utils.StringOr(record, "details.position.country.name", ""),
	}

	return airport, nil
}

// get sends an HTTP GET request and returns a valid byte slice of the
// response body.
func (c *Client) get(ctx context.Context, targetURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid request %s: %w", targetURL, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "flightcast-service")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.metrics != nil {
		c.metrics.ProviderLatency.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to send GET request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrNonOKResponse, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if len(body) == 0 {
		return nil, ErrEmptyResponseBody
	}

	return body, nil
}

// decodeFeedEntry converts one positional feed array into a Flight. Short
// or mistyped slots leave the zero value for that field; the feed is best
// effort and the formatting layer degrades per field anyway.
func decodeFeedEntry(id string, slots []any) *entity.Flight {
	flight := &entity.Flight{
		ID:            id,
		ICAO24:        stringAt(slots, slotICAO24),
		Latitude:      floatAt(slots, slotLatitude),
		Longitude:     floatAt(slots, slotLongitude),
		Heading:       int(floatAt(slots, slotHeading)),
		AltitudeFt:    int(floatAt(slots, slotAltitude)),
		GroundSpeedKt: int(floatAt(slots, slotGroundSpeed)),
		Squawk:        stringAt(slots, slotSquawk),
		AircraftCode:  stringAt(slots, slotAircraftCode),
		Registration:  stringAt(slots, slotRegistration),
		Timestamp:     int64(floatAt(slots, slotTimestamp)),
		OriginIATA:    stringAt(slots, slotOriginIATA),
		DestIATA:      stringAt(slots, slotDestIATA),
		Number:        stringAt(slots, slotNumber),
		OnGround:      floatAt(slots, slotOnGround) == 1,
		VerticalFpm:   int(floatAt(slots, slotVertical)),
		Callsign:      stringAt(slots, slotCallsign),
		AirlineICAO:   stringAt(slots, slotAirlineICAO),
	}

	return flight
}

func stringAt(slots []any, index int) string {
	if index >= len(slots) {
		return ""
	}
	s, _ := slots[index].(string)
	return s
}

func floatAt(slots []any, index int) float64 {
	if index >= len(slots) {
		return 0
	}
	f, _ := slots[index].(float64)
	return f
}
