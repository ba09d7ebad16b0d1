package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/watchlist/backend/internal/infrastructure/config"
	"github.com/watchlist/backend/internal/testutil"
)

func TestInMemoryRateLimitStore(t *testing.T) {
	ctx := context.Background()

	t.Run("allows requests within limit", func(t *testing.T) {
		store := NewInMemoryRateLimitStore(3, time.Minute)
		defer store.Close()

		for i := 0; i < 3; i++ {
			d, err := store.Allow(ctx, "client1")
			require.NoError(t, err)
			assert.True(t, d.Allowed, "request %d should be allowed", i+1)
			assert.Equal(t, 2-i, d.Remaining)
		}

		d, err := store.Allow(ctx, "client1")
		require.NoError(t, err)
		assert.False(t, d.Allowed)
		assert.Equal(t, 0, d.Remaining)
		assert.Equal(t, 3, d.Limit)
	})

	t.Run("separate windows per key", func(t *testing.T) {
		store := NewInMemoryRateLimitStore(1, time.Minute)
		defer store.Close()

		a, _ := store.Allow(ctx, "a")
		b, _ := store.Allow(ctx, "b")
		assert.True(t, a.Allowed)
		assert.True(t, b.Allowed)

		a, _ = store.Allow(ctx, "a")
		assert.False(t, a.Allowed)
	})

	t.Run("resets after window", func(t *testing.T) {
		store := NewInMemoryRateLimitStore(1, 30*time.Millisecond)
		defer store.Close()

		d, _ := store.Allow(ctx, "c")
		assert.True(t, d.Allowed)
		d, _ = store.Allow(ctx, "c")
		assert.False(t, d.Allowed)

		time.Sleep(40 * time.Millisecond)

		d, _ = store.Allow(ctx, "c")
		assert.True(t, d.Allowed)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		store := NewInMemoryRateLimitStore(1, time.Minute)
		assert.NoError(t, store.Close())
		assert.NoError(t, store.Close())
	})
}

func TestRateLimitStoreFactory(t *testing.T) {
	httpCfg := config.HTTPConfig{RateLimitRequests: 5, RateLimitWindow: time.Minute, RateLimitStore: "memory"}

	t.Run("memory store", func(t *testing.T) {
		store, err := NewRateLimitStoreFactory(config.RedisConfig{}, httpCfg).CreateStore()
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemoryRateLimitStore{}, store)
	})

	unreachable := config.RedisConfig{Host: "127.0.0.1", Port: 1}
	redisCfg := httpCfg
	redisCfg.RateLimitStore = "redis"

	t.Run("falls back when redis is unreachable", func(t *testing.T) {
		store, err := NewRateLimitStoreFactory(unreachable, redisCfg).CreateStore()
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemoryRateLimitStore{}, store)
	})

	t.Run("fails without fallback", func(t *testing.T) {
		_, err := NewRateLimitStoreFactory(unreachable, redisCfg, WithInMemoryFallback(false)).CreateStore()
		assert.Error(t, err)
	})
}

func TestRedisRateLimitStore(t *testing.T) {
	ctx := context.Background()
	addr := testutil.StartRedis(t)

	store, err := NewRedisRateLimitStore(RedisConfig{Addr: addr}, 2, time.Minute)
	require.NoError(t, err)
	defer store.Close()

	d, err := store.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Remaining)
	assert.Greater(t, d.ResetIn, time.Duration(0))

	d, err = store.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	d, err = store.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)

	// A second store on the same server shares the counters
	shared := NewRedisRateLimitStoreWithClient(redis.NewClient(&redis.Options{Addr: addr}), "", 2, time.Minute)
	defer shared.Close()
	d, err = shared.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)

	d, err = shared.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}
