package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/rmarques/marketgate/internal/errors"
)

// RedisStore implements CounterStore on Redis. INCR and the expiry are
// pipelined so a check costs a single round trip, and ExpireNX keeps the
// window TTL from being pushed forward by later increments.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a Redis-backed counter store.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

// Incr increments the counter and sets its expiry on first touch.
func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := s.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	// Expiry slightly beyond the window so a counter read at the window
	// edge still resolves.
	pipe.ExpireNX(ctx, key, window+time.Second)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, apperrors.Wrap(err, "failed to increment rate limit counter")
	}

	return incr.Val(), nil
}
