package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightcast-service/internal/domain/entity"
	"flightcast-service/pkg/logger"
)

type countingAirportSource struct {
	calls    int
	failWith error
}

func (s *countingAirportSource) GetByCode(_ context.Context, code string) (*entity.Airport, error) {
	s.calls++
	if s.failWith != nil {
		return nil, s.failWith
	}
	return &entity.Airport{ICAO: code, Latitude: 59.8, Longitude: 30.26}, nil
}

func TestCachedAirportRepositoryCachesByCode(t *testing.T) {
	source := &countingAirportSource{}
	repo := NewCachedAirportRepository(source, 8, logger.NewNop())

	first, err := repo.GetByCode(context.Background(), "ULLI")
	require.NoError(t, err)
	second, err := repo.GetByCode(context.Background(), "ULLI")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, source.calls)

	_, err = repo.GetByCode(context.Background(), "UUEE")
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
}

func TestCachedAirportRepositoryDoesNotCacheFailures(t *testing.T) {
	source := &countingAirportSource{failWith: errors.New("unreachable")}
	repo := NewCachedAirportRepository(source, 8, logger.NewNop())

	_, err := repo.GetByCode(context.Background(), "ULLI")
	require.Error(t, err)

	source.failWith = nil
	airport, err := repo.GetByCode(context.Background(), "ULLI")
	require.NoError(t, err)
	assert.Equal(t, "ULLI", airport.ICAO)
	assert.Equal(t, 2, source.calls)
}

func TestCachedAirportRepositoryBounded(t *testing.T) {
	source := &countingAirportSource{}
	repo := NewCachedAirportRepository(source, 2, logger.NewNop())

	for i := 0; i < 5; i++ {
		_, err := repo.GetByCode(context.Background(), fmt.Sprintf("AP%02d", i))
		require.NoError(t, err)
	}

	repo.mu.RLock()
	size := len(repo.cache)
	repo.mu.RUnlock()
	assert.LessOrEqual(t, size, 2)
}

func TestFallbackAirportRepository(t *testing.T) {
	primary := &countingAirportSource{failWith: errors.New("no local row")}
	secondary := &countingAirportSource{}
	repo := NewFallbackAirportRepository(primary, secondary)

	airport, err := repo.GetByCode(context.Background(), "ULLI")
	require.NoError(t, err)
	assert.Equal(t, "ULLI", airport.ICAO)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)

	// Primary success never reaches the secondary.
	primary.failWith = nil
	_, err = repo.GetByCode(context.Background(), "UUEE")
	require.NoError(t, err)
	assert.Equal(t, 1, secondary.calls)
}
