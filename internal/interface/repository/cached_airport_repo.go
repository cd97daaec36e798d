package repository

import (
	"context"
	"sync"

	"flightcast-service/internal/domain/entity"
	"flightcast-service/internal/domain/repository"
	"flightcast-service/pkg/logger"
)

// CachedAirportRepository layers a bounded in-process cache over an airport
// source. Airport records are read-mostly and treated as immutable after
// first fetch, so concurrent readers only contend on the map lock. When the
// cache is full an arbitrary entry is evicted; reference traffic is small
// enough that eviction order does not matter.
type CachedAirportRepository struct {
	source  repository.AirportRepository
	logger  logger.Logger
	maxSize int

	mu    sync.RWMutex
	cache map[string]*entity.Airport
}

// NewCachedAirportRepository creates a bounded airport cache over source.
func NewCachedAirportRepository(source repository.AirportRepository, maxSize int, logger logger.Logger) *CachedAirportRepository {
	return &CachedAirportRepository{
		source:  source,
		logger:  logger,
		maxSize: maxSize,
		cache:   make(map[string]*entity.Airport, maxSize),
	}
}

// GetByCode returns the cached airport record, fetching it from the source
// on first use.
func (r *CachedAirportRepository) GetByCode(ctx context.Context, code string) (*entity.Airport, error) {
	r.mu.RLock()
	airport, ok := r.cache[code]
	r.mu.RUnlock()
	if ok {
		return airport, nil
	}

	airport, err := r.source.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if len(r.cache) >= r.maxSize {
		for key := range r.cache {
			delete(r.cache, key)
			break
		}
	}
	r.cache[code] = airport
	r.mu.Unlock()

	r.logger.Debug("Cached airport", "code", code)

	return airport, nil
}
