package planhat_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robocorp/robocorp-planhat/pkg/planhat"
)

func TestNewCacheFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("nil config defaults to memory", func(t *testing.T) {
		t.Parallel()

		cache, err := planhat.NewCacheFromConfig(nil)
		require.NoError(t, err)
		assert.IsType(t, &planhat.MemoryCache{}, cache)
	})

	t.Run("none gives a no-op cache", func(t *testing.T) {
		t.Parallel()

		cache, err := planhat.NewCacheFromConfig(&planhat.CacheConfig{Type: planhat.CacheTypeNone})
		require.NoError(t, err)
		assert.IsType(t, &planhat.NoOpCache{}, cache)
	})

	t.Run("nats without config fails", func(t *testing.T) {
		t.Parallel()

		_, err := planhat.NewCacheFromConfig(&planhat.CacheConfig{Type: planhat.CacheTypeNATS})
		require.ErrorIs(t, err, planhat.ErrNATSConfigRequired)
	})

	t.Run("unsupported type", func(t *testing.T) {
		t.Parallel()

		_, err := planhat.NewCacheFromConfig(&planhat.CacheConfig{Type: planhat.CacheType("redis")})
		require.ErrorIs(t, err, planhat.ErrUnsupportedCacheType)
	})
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := planhat.NewNoOpCache()

	require.NoError(t, cache.Set(ctx, "key", &planhat.CacheEntry{
		Data:      []byte("data"),
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	_, err := cache.Get(ctx, "key")
	require.ErrorIs(t, err, planhat.ErrCacheDisabled)
	assert.False(t, cache.Has(ctx, "key"))

	require.NoError(t, cache.Delete(ctx, "key"))
	require.NoError(t, cache.Clear(ctx))
}

func TestCacheBuilder(t *testing.T) {
	t.Parallel()

	cache, err := planhat.NewCacheBuilder().
		WithType(planhat.CacheTypeMemory).
		WithMemoryConfig(50).
		WithOptions(planhat.DefaultCacheOptions()).
		Build()
	require.NoError(t, err)
	assert.IsType(t, &planhat.MemoryCache{}, cache)
}

func TestCacheChain(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("get populates earlier caches", func(t *testing.T) {
		t.Parallel()

		l1 := planhat.NewMemoryCache(10)
		l2 := planhat.NewMemoryCache(10)
		chain := planhat.NewCacheChain(l1, l2)

		require.NoError(t, l2.Set(ctx, "key", &planhat.CacheEntry{
			Data:      []byte("data"),
			ExpiresAt: time.Now().Add(time.Hour),
		}))

		entry, err := chain.Get(ctx, "key")
		require.NoError(t, err)
		assert.Equal(t, []byte("data"), entry.Data)
		assert.True(t, l1.Has(ctx, "key"))
	})

	t.Run("miss in every cache", func(t *testing.T) {
		t.Parallel()

		chain := planhat.NewCacheChain(planhat.NewMemoryCache(10))

		_, err := chain.Get(ctx, "absent")
		require.ErrorIs(t, err, planhat.ErrKeyNotFoundInAnyCache)
	})

	t.Run("set and delete touch every cache", func(t *testing.T) {
		t.Parallel()

		l1 := planhat.NewMemoryCache(10)
		l2 := planhat.NewMemoryCache(10)
		chain := planhat.NewCacheChain(l1, l2)

		require.NoError(t, chain.Set(ctx, "key", &planhat.CacheEntry{
			ExpiresAt: time.Now().Add(time.Hour),
		}))
		assert.True(t, l1.Has(ctx, "key"))
		assert.True(t, l2.Has(ctx, "key"))

		require.NoError(t, chain.Delete(ctx, "key"))
		assert.False(t, chain.Has(ctx, "key"))
	})
}
