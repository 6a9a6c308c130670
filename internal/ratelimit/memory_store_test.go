package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMemoryStore_Incr(t *testing.T) {
	t.Run("CountsWithinWindow", func(t *testing.T) {
		store := NewMemoryStore()
		defer store.Close()

		ctx := context.Background()
		for i := int64(1); i <= 3; i++ {
			count, err := store.Incr(ctx, "bucket:key", time.Minute)
			require.NoError(t, err)
			assert.Equal(t, i, count)
		}
	})

	t.Run("ResetsAfterWindow", func(t *testing.T) {
		store := NewMemoryStore()
		defer store.Close()

		ctx := context.Background()
		count, err := store.Incr(ctx, "bucket:key", -2*time.Second)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		count, err = store.Incr(ctx, "bucket:key", -2*time.Second)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("IndependentKeys", func(t *testing.T) {
		store := NewMemoryStore()
		defer store.Close()

		ctx := context.Background()
		_, err := store.Incr(ctx, "bucket:a", time.Minute)
		require.NoError(t, err)

		count, err := store.Incr(ctx, "bucket:b", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestMemoryStore_CloseStopsJanitor(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := NewMemoryStore()
	_, err := store.Incr(context.Background(), "bucket:key", time.Minute)
	require.NoError(t, err)

	store.Close()
	// Close is idempotent.
	store.Close()
}
