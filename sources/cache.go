package sources

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"hotelorders/pivot"
)

// Cache keeps the last loaded sheet for a fixed time. Callers pass their own
// clock so freshness is testable. Loads are serialized: concurrent callers
// on a stale cache wait for one load instead of each hitting the source,
// and give up when their own context ends first.
type Cache struct {
	src    Source
	ttl    time.Duration
	logger *zap.Logger

	// loading holds a token while a caller checks or reloads the table.
	loading chan struct{}

	mu        sync.Mutex
	table     pivot.RawTable
	fetchedAt time.Time
	valid     bool
	gen       uint64
}

// NewCache wraps src. A ttl of zero or less disables caching.
func NewCache(src Source, ttl time.Duration, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{src: src, ttl: ttl, logger: logger, loading: make(chan struct{}, 1)}
}

// Fetch returns the cached table while it is younger than the ttl at now,
// otherwise reloads it. Failed loads are not cached.
func (c *Cache) Fetch(ctx context.Context, now time.Time) (pivot.RawTable, time.Time, error) {
	select {
	case c.loading <- struct{}{}:
	case <-ctx.Done():
		return pivot.RawTable{}, time.Time{}, ctx.Err()
	}
	defer func() { <-c.loading }()

	if err := ctx.Err(); err != nil {
		return pivot.RawTable{}, time.Time{}, err
	}

	c.mu.Lock()
	if c.valid && c.ttl > 0 && now.Sub(c.fetchedAt) < c.ttl {
		table, at := c.table, c.fetchedAt
		c.mu.Unlock()
		return table, at, nil
	}
	gen := c.gen
	c.mu.Unlock()

	table, err := c.src.Load(ctx)
	if err != nil {
		c.logger.Warn("load order sheet", zap.Error(err))
		return pivot.RawTable{}, time.Time{}, err
	}

	c.mu.Lock()
	// An Invalidate during the load means the table may already be stale.
	if c.gen == gen {
		c.table, c.fetchedAt, c.valid = table, now, true
	}
	c.mu.Unlock()

	c.logger.Info("order sheet loaded",
		zap.Int("rows", table.Len()),
		zap.Time("fetched_at", now),
	)
	return table, now, nil
}

// Invalidate forces the next Fetch to reload.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.gen++
	c.mu.Unlock()
}
