// Package cache provides the key-value stores that hold fetched upstream documents.
//
// Entries carry two lifetimes. The TTL passed to Put decides when an entry
// stops being fresh; after that it stays readable for a further stale window
// so callers can fall back to it when the upstream is unavailable. Eviction
// after the stale window is left to the store.
package cache
