// Package ratelimit implements fixed-window request counting keyed by client
// identity. The counter store is injectable: the in-memory store is correct
// for a single instance, the Redis store gives a shared view across
// instances.
package ratelimit

import (
	"context"
	"time"
)

// Result is the outcome of a single check-and-increment.
type Result struct {
	Allowed bool
	// Count after the check. On a denied request the counter is not advanced.
	Count   int
	ResetAt time.Time
}

// Store tracks per-identity counters within a rolling window. Incr must be
// atomic per key: two concurrent requests from the same identity must never
// both observe a stale count.
type Store interface {
	// Incr creates the record on first use (count=1), resets it when the
	// window has elapsed, and otherwise increments only while count is below
	// limit. A denied request does not mutate the record.
	Incr(ctx context.Context, key string, limit int, window time.Duration) (Result, error)
	// Get returns the current count and window expiry without mutating.
	Get(ctx context.Context, key string) (count int, resetAt time.Time, err error)
	// Reset clears the record for key.
	Reset(ctx context.Context, key string) error
}

// Limiter binds a Store to a fixed limit and window.
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
	prefix string
}

// NewLimiter creates a limiter. prefix namespaces keys so that multiple
// limiters can share one store.
func NewLimiter(store Store, limit int, window time.Duration, prefix string) *Limiter {
	return &Limiter{store: store, limit: limit, window: window, prefix: prefix}
}

// Allow runs one check-and-increment for the given client identity.
func (l *Limiter) Allow(ctx context.Context, identity string) (Result, error) {
	return l.store.Incr(ctx, l.prefix+identity, l.limit, l.window)
}

// Limit returns the configured threshold
func (l *Limiter) Limit() int {
	return l.limit
}
