package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bluele/gcache"

	"railchat/internal/model"
)

// Catalog is the read contract of the catalog store
type Catalog interface {
	ListStations(ctx context.Context) ([]model.Station, error)
	ListTrains(ctx context.Context, filter model.TrainFilter) ([]model.Train, error)
	ListSchedules(ctx context.Context, filter model.ScheduleFilter) ([]model.Schedule, error)
	ListLines(ctx context.Context, filter model.TrainFilter) ([]model.Line, error)
	ListFares(ctx context.Context, filter model.TrainFilter) ([]model.Fare, error)
}

// CachedCatalog keeps recent route reads in an LRU cache with expiration.
// Station reads are passed through: the assistant memoizes them itself.
// Failed reads are never cached.
type CachedCatalog struct {
	next  Catalog
	cache gcache.Cache
}

// NewCachedCatalog wraps next with a cache of size entries living ttl
func NewCachedCatalog(next Catalog, size int, ttl time.Duration) *CachedCatalog {
	builder := gcache.New(size).LRU()
	if ttl > 0 {
		builder = builder.Expiration(ttl)
	}
	return &CachedCatalog{
		next:  next,
		cache: builder.Build(),
	}
}

// ListStations always reads through
func (c *CachedCatalog) ListStations(ctx context.Context) ([]model.Station, error) {
	return c.next.ListStations(ctx)
}

// ListTrains returns cached trains for the filter, reading through on a miss
func (c *CachedCatalog) ListTrains(ctx context.Context, filter model.TrainFilter) ([]model.Train, error) {
	return cached(c, "trains:"+filter.Key(), func() ([]model.Train, error) {
		return c.next.ListTrains(ctx, filter)
	})
}

// ListSchedules returns cached schedules for the train, reading through on a miss
func (c *CachedCatalog) ListSchedules(ctx context.Context, filter model.ScheduleFilter) ([]model.Schedule, error) {
	return cached(c, fmt.Sprintf("schedules:%d", filter.TrainID), func() ([]model.Schedule, error) {
		return c.next.ListSchedules(ctx, filter)
	})
}

// ListLines returns cached lines for the filter, reading through on a miss
func (c *CachedCatalog) ListLines(ctx context.Context, filter model.TrainFilter) ([]model.Line, error) {
	return cached(c, "lines:"+filter.Key(), func() ([]model.Line, error) {
		return c.next.ListLines(ctx, filter)
	})
}

// ListFares returns cached fares for the filter, reading through on a miss
func (c *CachedCatalog) ListFares(ctx context.Context, filter model.TrainFilter) ([]model.Fare, error) {
	return cached(c, "fares:"+filter.Key(), func() ([]model.Fare, error) {
		return c.next.ListFares(ctx, filter)
	})
}

func cached[T any](c *CachedCatalog, key string, load func() ([]T, error)) ([]T, error) {
	if v, err := c.cache.Get(key); err == nil {
		if items, ok := v.([]T); ok {
			return items, nil
		}
	}

	items, err := load()
	if err != nil {
		return nil, err
	}
	_ = c.cache.Set(key, items)
	return items, nil
}
