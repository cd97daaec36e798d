package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightcast-service/internal/domain/entity"
	"flightcast-service/internal/domain/repository"
	"flightcast-service/pkg/logger"
)

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(srv.URL, srv.URL, 5*time.Second, nil, logger.NewNop())
}

func TestSearchGroupsResults(t *testing.T) {
	payload := map[string]any{
		"results": []any{
			map[string]any{
				"id":    "2f1c8e4a",
				"type":  "live",
				"label": "AFL123 / SU123 (RA-73806)",
				"detail": map[string]any{
					"reg":      "RA-73806",
					"callsign": "AFL123",
				},
			},
			map[string]any{
				"id":    "ULLI",
				"type":  "airport",
				"label": "St. Petersburg Pulkovo Airport",
			},
			map[string]any{
				"id":   "SU123",
				"type": "schedule",
			},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, searchPath, r.URL.Path)
		assert.Equal(t, "AFL123", r.URL.Query().Get("query"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	result, err := newTestClient(srv).Search(context.Background(), "AFL123")
	require.NoError(t, err)

	require.True(t, result.HasLive())
	require.Len(t, result.Live, 1)
	assert.Equal(t, "RA-73806", result.Live[0].Detail.Registration)
	assert.Len(t, result.Airports, 1)
	assert.Len(t, result.Schedule, 1)
	assert.Empty(t, result.Aircraft)
}

func TestSearchNoLive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	result, err := newTestClient(srv).Search(context.Background(), "NOSUCH1")
	require.NoError(t, err)
	assert.False(t, result.HasLive())
}

func feedPayload() map[string]any {
	return map[string]any{
		"full_count": 12345,
		"version":    4,
		"2f1c8e4a": []any{
			"780dc0",  // icao24
			59.88,     // latitude
			30.41,     // longitude
			185.0,     // heading
			10600.0,   // altitude ft
			440.0,     // ground speed kt
			"3421",    // squawk
			"T-ULLI1", // station
			"B738",    // aircraft code
			"RA-73806",
			1700000000.0,
			"LED",
			"SVO",
			"SU123",
			0.0,
			-512.0,
			"AFL123",
			0.0,
			"AFL",
		},
	}
}

func TestGetFlightsDecodesFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, feedPath, r.URL.Path)
		assert.Equal(t, "RA-73806", r.URL.Query().Get("reg"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(feedPayload())
	}))
	defer srv.Close()

	flights, err := newTestClient(srv).GetFlights(context.Background(), repository.FlightQuery{
		Registration: "RA-73806",
	})
	require.NoError(t, err)
	require.Len(t, flights, 1)

	f := flights[0]
	assert.Equal(t, "2f1c8e4a", f.ID)
	assert.Equal(t, "780dc0", f.ICAO24)
	assert.Equal(t, "RA-73806", f.Registration)
	assert.Equal(t, "AFL123", f.Callsign)
	assert.Equal(t, "B738", f.AircraftCode)
	assert.Equal(t, "AFL", f.AirlineICAO)
	assert.Equal(t, 10600, f.AltitudeFt)
	assert.Equal(t, 440, f.GroundSpeedKt)
	assert.Equal(t, 185, f.Heading)
	assert.Equal(t, -512, f.VerticalFpm)
	assert.Equal(t, "3421", f.Squawk)
	assert.Equal(t, "LED", f.OriginIATA)
	assert.Equal(t, "SVO", f.DestIATA)
	assert.False(t, f.OnGround)
	assert.InDelta(t, 59.88, f.Latitude, 1e-9)

	// The textual listing form follows the pinned grammar.
	assert.Equal(t, "(B738) RA-73806 - AFL123", f.String())
}

func TestGetFlightsBoundsParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "60.1500,59.7000,30.0000,30.6000", r.URL.Query().Get("bounds"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"full_count":0,"version":4}`))
	}))
	defer srv.Close()

	client := newTestClient(srv)
	bounds := entity.Bounds{North: 60.15, South: 59.70, West: 30.00, East: 30.60}

	flights, err := client.GetFlights(context.Background(), repository.FlightQuery{Bounds: &bounds})
	require.NoError(t, err)
	assert.Empty(t, flights)
}

func TestGetFlightsShortEntry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"full_count":1,"version":4,"aaaa":["780dc0",59.88,30.41]}`))
	}))
	defer srv.Close()

	flights, err := newTestClient(srv).GetFlights(context.Background(), repository.FlightQuery{})
	require.NoError(t, err)
	require.Len(t, flights, 1)

	// Missing slots fall back to zero values instead of failing the feed.
	assert.Equal(t, "780dc0", flights[0].ICAO24)
	assert.Empty(t, flights[0].Registration)
	assert.Zero(t, flights[0].AltitudeFt)
}

func TestGetFlightDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, clickhandlerPath, r.URL.Path)
		assert.Equal(t, "2f1c8e4a", r.URL.Query().Get("flight"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"identification":{"callsign":"AFL123"},"trail":[{"ts":100,"lat":59.8,"lng":30.2,"spd":250,"alt":8000}]}`))
	}))
	defer srv.Close()

	details, err := newTestClient(srv).GetFlightDetails(context.Background(), &entity.Flight{ID: "2f1c8e4a"})
	require.NoError(t, err)

	callsign, ok := details.String("identification.callsign")
	require.True(t, ok)
	assert.Equal(t, "AFL123", callsign)
	assert.Len(t, details.Trail(), 1)
}

func TestGetAirport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, airportStatsPath, r.URL.Path)
		assert.Equal(t, "ULLI", r.URL.Query().Get("airport"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"details":{"name":"St. Petersburg Pulkovo Airport","code":{"iata":"LED","icao":"ULLI"},"position":{"latitude":59.8003,"longitude":30.2625,"elevation":78,"country":{"name":"Russia"}}}}`))
	}))
	defer srv.Close()

	airport, err := newTestClient(srv).GetAirport(context.Background(), "ULLI")
	require.NoError(t, err)

	assert.Equal(t, "St. Petersburg Pulkovo Airport", airport.Name)
	assert.Equal(t, "ULLI", airport.ICAO)
	assert.Equal(t, "LED", airport.IATA)
	assert.InDelta(t, 59.8003, airport.Latitude, 1e-9)
	assert.InDelta(t, 30.2625, airport.Longitude, 1e-9)
	assert.Equal(t, 78, airport.AltitudeFt)
	assert.Equal(t, "Russia", airport.Country)
}

func TestGetAirportWithoutPosition(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"details":{"name":"Nowhere"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).GetAirport(context.Background(), "XXXX")
	assert.Error(t, err)
}

func TestNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream broken"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Search(context.Background(), "AFL123")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonOKResponse)
}

func TestEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Search(context.Background(), "AFL123")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyResponseBody)
}
