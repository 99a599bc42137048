package cache

import (
	"context"
	"errors"
	"time"
)

// DefaultStaleFor is how long an entry remains readable after it expires.
const DefaultStaleFor = 7 * 24 * time.Hour

// ErrUnknownDriver is returned when the configured driver has no Store implementation.
var ErrUnknownDriver = errors.New("unknown cache driver")

// Entry is a cached document with its soft expiry.
type Entry struct {
	Value     any       `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the entry is past its TTL at now.
func (e Entry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// Store is a key-value cache with per-key TTL. Writes are last-write-wins.
type Store interface {
	// Get returns the entry for key, including entries past their TTL that
	// have not been evicted yet. Use Entry.Expired to tell them apart.
	Get(ctx context.Context, key string) (Entry, bool)
	// Put stores value under key, fresh for ttl.
	Put(ctx context.Context, key string, value any, ttl time.Duration) error
	// Has reports whether key holds a fresh entry.
	Has(ctx context.Context, key string) bool
}
