package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client), server
}

func TestRedisStore_Incr(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	count, err := store.Incr(ctx, "ratelimit:api:cred-1:100", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = store.Incr(ctx, "ratelimit:api:cred-1:100", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRedisStore_Incr_SetsExpiryOnce(t *testing.T) {
	store, server := setupRedisStore(t)
	ctx := context.Background()

	_, err := store.Incr(ctx, "ratelimit:api:cred-1:100", time.Minute)
	require.NoError(t, err)

	firstTTL := server.TTL("ratelimit:api:cred-1:100")
	assert.Equal(t, time.Minute+time.Second, firstTTL)

	// A later increment must not push the expiry forward.
	server.FastForward(30 * time.Second)
	_, err = store.Incr(ctx, "ratelimit:api:cred-1:100", time.Minute)
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, firstTTL-server.TTL("ratelimit:api:cred-1:100"))
}

func TestRedisStore_Incr_CounterExpires(t *testing.T) {
	store, server := setupRedisStore(t)
	ctx := context.Background()

	_, err := store.Incr(ctx, "ratelimit:api:cred-1:100", time.Minute)
	require.NoError(t, err)

	server.FastForward(2 * time.Minute)

	count, err := store.Incr(ctx, "ratelimit:api:cred-1:100", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRedisStore_Incr_Unreachable(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisStore(client)

	server.Close()

	_, err := store.Incr(context.Background(), "ratelimit:api:cred-1:100", time.Minute)
	assert.Error(t, err)
}
