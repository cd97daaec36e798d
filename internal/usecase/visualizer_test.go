package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightcast-service/internal/domain/entity"
	"flightcast-service/pkg/logger"
)

func trailDetails() entity.FlightDetails {
	// Newest-first, as the provider returns it.
	return entity.FlightDetails{
		"trail": []any{
			map[string]any{"ts": float64(300), "lat": 59.95, "lng": 30.60, "spd": 450.0, "alt": 36000.0},
			map[string]any{"ts": float64(200), "lat": 59.90, "lng": 30.45, "spd": 430.0, "alt": 30000.0},
			map[string]any{"ts": float64(100), "lat": 59.80, "lng": 30.26, "spd": 250.0, "alt": 8000.0},
		},
	}
}

func TestBuildGraphReversesToChronological(t *testing.T) {
	visualizer := NewVisualizer(nil, logger.NewNop())

	spec, err := visualizer.BuildGraph(trailDetails())
	require.NoError(t, err)

	require.Len(t, spec.Labels, 3)
	require.Len(t, spec.Speeds, 3)
	require.Len(t, spec.Altitudes, 3)

	assert.Equal(t, []float64{250, 430, 450}, spec.Speeds)
	assert.Equal(t, []float64{8000, 30000, 36000}, spec.Altitudes)
	assert.Equal(t, "1970-01-01 00:01:40", spec.Labels[0])
	assert.Equal(t, "1970-01-01 00:05:00", spec.Labels[2])
}

func TestBuildGraphEmptyTrail(t *testing.T) {
	visualizer := NewVisualizer(nil, logger.NewNop())

	_, err := visualizer.BuildGraph(entity.FlightDetails{})
	assert.ErrorIs(t, err, ErrEmptyTrail)
}

func TestBuildMap(t *testing.T) {
	visualizer := NewVisualizer(nil, logger.NewNop())

	spec, err := visualizer.BuildMap(context.Background(), trailDetails(), &entity.Flight{})
	require.NoError(t, err)

	// Polyline keeps the as-received order.
	require.Len(t, spec.Path, 3)
	assert.InDelta(t, 59.95, spec.Path[0].Latitude, 1e-9)
	assert.InDelta(t, 59.80, spec.Path[2].Latitude, 1e-9)

	// Start, end and one waypoint, no destination.
	require.Len(t, spec.Markers, 3)
	assert.Equal(t, entity.MarkerStart, spec.Markers[0].Kind)
	assert.Equal(t, entity.MarkerWaypoint, spec.Markers[1].Kind)
	assert.Equal(t, entity.MarkerEnd, spec.Markers[2].Kind)

	assert.InDelta(t, 59.95, spec.Bounds.North, 1e-9)
	assert.InDelta(t, 59.80, spec.Bounds.South, 1e-9)
	assert.InDelta(t, 30.26, spec.Bounds.West, 1e-9)
	assert.InDelta(t, 30.60, spec.Bounds.East, 1e-9)
}

func TestBuildMapWithDestination(t *testing.T) {
	visualizer := NewVisualizer(nil, logger.NewNop())

	flight := &entity.Flight{}
	flight.SetDestinationPosition(entity.NewPoint(55.97, 37.41))

	spec, err := visualizer.BuildMap(context.Background(), trailDetails(), flight)
	require.NoError(t, err)

	require.Len(t, spec.Markers, 4)
	last := spec.Markers[len(spec.Markers)-1]
	assert.Equal(t, entity.MarkerDestination, last.Kind)
	assert.InDelta(t, 55.97, last.Position.Latitude, 1e-9)

	// The envelope stretches to keep the destination visible.
	assert.InDelta(t, 55.97, spec.Bounds.South, 1e-9)
	assert.InDelta(t, 37.41, spec.Bounds.East, 1e-9)
}

type fixedAirportRepo struct {
	airport *entity.Airport
	err     error
	calls   int
}

func (r *fixedAirportRepo) GetByCode(_ context.Context, code string) (*entity.Airport, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.airport, nil
}

func TestBuildMapDestinationFromAirportLookup(t *testing.T) {
	repo := &fixedAirportRepo{
		airport: &entity.Airport{ICAO: "UUEE", Latitude: 55.97, Longitude: 37.41},
	}
	visualizer := NewVisualizer(repo, logger.NewNop())

	details := trailDetails()
	details["airport"] = map[string]any{
		"destination": map[string]any{
			"code": map[string]any{"icao": "UUEE"},
		},
	}

	spec, err := visualizer.BuildMap(context.Background(), details, &entity.Flight{})
	require.NoError(t, err)

	require.Len(t, spec.Markers, 4)
	assert.Equal(t, entity.MarkerDestination, spec.Markers[3].Kind)
	assert.Equal(t, 1, repo.calls)
}

func TestBuildMapDestinationLookupFailureOmitsMarker(t *testing.T) {
	repo := &fixedAirportRepo{err: errors.New("no such airport")}
	visualizer := NewVisualizer(repo, logger.NewNop())

	details := trailDetails()
	details["airport"] = map[string]any{
		"destination": map[string]any{
			"code": map[string]any{"icao": "XXXX"},
		},
	}

	spec, err := visualizer.BuildMap(context.Background(), details, &entity.Flight{})
	require.NoError(t, err)
	assert.Len(t, spec.Markers, 3)
}

func TestBuildMapEmptyTrail(t *testing.T) {
	visualizer := NewVisualizer(nil, logger.NewNop())

	_, err := visualizer.BuildMap(context.Background(), entity.FlightDetails{}, nil)
	assert.ErrorIs(t, err, ErrEmptyTrail)
}
