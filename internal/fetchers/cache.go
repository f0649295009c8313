package fetchers

import (
	"context"
	"sync"
	"time"

	"resupplycharts/internal/models"
)

// CachedSource memoizes another source for a fixed TTL. It never refreshes in
// the background: the first call after expiry fetches again.
type CachedSource struct {
	source Source
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	snap    *models.Snapshot
	fetched time.Time
}

// NewCachedSource wraps source. A zero ttl disables caching.
func NewCachedSource(source Source, ttl time.Duration) *CachedSource {
	return &CachedSource{source: source, ttl: ttl, now: time.Now}
}

// Latest returns the cached snapshot while it is fresh. A failed refresh keeps
// the previous snapshot cached and returns the error.
func (c *CachedSource) Latest(ctx context.Context) (*models.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snap != nil && c.ttl > 0 && c.now().Sub(c.fetched) < c.ttl {
		return c.snap, nil
	}
	snap, err := c.source.Latest(ctx)
	if err != nil {
		return nil, err
	}
	c.snap, c.fetched = snap, c.now()
	return snap, nil
}

// Invalidate drops the cached snapshot
func (c *CachedSource) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = nil
}
