// Package ratelimit implements fixed-window request rate limiting.
//
// Counters live in a shared store (Redis in production, in-memory for
// tests and single-node deployments) keyed by bucket, caller identity,
// and window start, so every replica of the service sees the same counts.
package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Bucket separates rate limit policies. Each bucket has its own limit,
// window, and failure behavior.
type Bucket string

const (
	// BucketAPI covers authenticated API traffic, keyed by account.
	BucketAPI Bucket = "api"

	// BucketTrack covers anonymous event ingestion, keyed by client IP.
	BucketTrack Bucket = "track"
)

// Decision is the outcome of a rate limit check.
type Decision struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   time.Time
}

// RetryAfter returns how long the caller should wait before retrying.
func (d Decision) RetryAfter(now time.Time) time.Duration {
	if d.ResetAt.Before(now) {
		return 0
	}
	return d.ResetAt.Sub(now)
}

// CounterStore increments a window counter and returns its new value.
// The implementation must expire the counter after the window passes.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Limiter applies fixed-window limits on top of a CounterStore.
type Limiter struct {
	store CounterStore
}

// NewLimiter creates a Limiter backed by the given store.
func NewLimiter(store CounterStore) *Limiter {
	return &Limiter{store: store}
}

// Check counts a request against the bucket's current window and decides
// whether it is allowed. The counter is incremented even for denied
// requests; windows are aligned to wall-clock boundaries so all replicas
// agree on window edges.
func (l *Limiter) Check(
	ctx context.Context,
	bucket Bucket,
	identity string,
	limit int64,
	window time.Duration,
) (Decision, error) {
	now := time.Now().UTC()
	windowStart := now.Truncate(window)
	resetAt := windowStart.Add(window)

	key := fmt.Sprintf("ratelimit:%s:%s:%d", bucket, identity, windowStart.Unix())

	count, err := l.store.Incr(ctx, key, window)
	if err != nil {
		return Decision{}, err
	}

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}
