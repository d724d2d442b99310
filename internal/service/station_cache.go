package service

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"railchat/internal/model"
)

// StationLister is the part of the store the station catalog reads
type StationLister interface {
	ListStations(ctx context.Context) ([]model.Station, error)
}

// StationCatalog memoizes the lower-cased station names of the store.
// It moves from empty to populated exactly once per instance; concurrent
// first callers wait for the same fetch. A failed fetch populates it with
// the empty list.
type StationCatalog struct {
	store   StationLister
	timeout time.Duration
	log     logrus.FieldLogger

	once   sync.Once
	names  []string
	loaded atomic.Bool
}

// NewStationCatalog creates an unpopulated catalog. A zero timeout means no deadline.
func NewStationCatalog(store StationLister, timeout time.Duration, log logrus.FieldLogger) *StationCatalog {
	return &StationCatalog{
		store:   store,
		timeout: timeout,
		log:     log,
	}
}

// Stations returns the memoized station names, fetching them on first use.
// The returned slice is shared and must not be modified.
func (c *StationCatalog) Stations(ctx context.Context) []string {
	c.once.Do(func() {
		c.names = c.fetch(ctx)
		c.loaded.Store(true)
	})
	return c.names
}

// Loaded reports whether the catalog has been populated
func (c *StationCatalog) Loaded() bool {
	return c.loaded.Load()
}

func (c *StationCatalog) fetch(ctx context.Context) []string {
	// The memoized result outlives the request that triggered it
	ctx = context.WithoutCancel(ctx)
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	stations, err := c.store.ListStations(ctx)
	if err != nil {
		c.log.WithError(err).Warn("station catalog unavailable, no station will be recognized")
		return []string{}
	}

	seen := make(map[string]struct{}, len(stations))
	names := make([]string, 0, len(stations))
	for _, s := range stations {
		name := strings.ToLower(strings.TrimSpace(s.Name))
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	c.log.WithField("station_count", len(names)).Info("station catalog loaded")
	return names
}
