package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Memory is an in-process Store. Entries are evicted by ttlcache once their
// stale window has passed.
type Memory struct {
	items    *ttlcache.Cache[string, Entry]
	staleFor time.Duration
	now      func() time.Time
}

// NewMemory creates a Memory store. A capacity of zero means unbounded.
// Call Start to run background eviction and Stop to end it.
func NewMemory(staleFor time.Duration, capacity uint64) *Memory {
	if staleFor < 0 {
		staleFor = 0
	}

	opts := []ttlcache.Option[string, Entry]{
		ttlcache.WithDisableTouchOnHit[string, Entry](),
	}

	if capacity > 0 {
		opts = append(opts, ttlcache.WithCapacity[string, Entry](capacity))
	}

	return &Memory{
		items:    ttlcache.New(opts...),
		staleFor: staleFor,
		now:      time.Now,
	}
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, key string) (Entry, bool) {
	item := m.items.Get(key)
	if item == nil {
		return Entry{}, false
	}

	return item.Value(), true
}

// Put implements Store.
func (m *Memory) Put(_ context.Context, key string, value any, ttl time.Duration) error {
	m.items.Set(key, Entry{Value: value, ExpiresAt: m.now().Add(ttl)}, ttl+m.staleFor)

	return nil
}

// Has implements Store.
func (m *Memory) Has(ctx context.Context, key string) bool {
	entry, ok := m.Get(ctx, key)

	return ok && !entry.Expired(m.now())
}

// Len returns the number of entries still inside their stale window.
func (m *Memory) Len() int {
	return m.items.Len()
}

// Start runs the eviction loop until Stop is called. It blocks.
func (m *Memory) Start() {
	m.items.Start()
}

// Stop ends the eviction loop.
func (m *Memory) Stop() {
	m.items.Stop()
}
