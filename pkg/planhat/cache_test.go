package planhat_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robocorp/robocorp-planhat/pkg/planhat"
)

func TestMemoryCache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()

		cache := planhat.NewMemoryCache(10)

		err := cache.Set(ctx, "key", &planhat.CacheEntry{
			Data:      []byte(`{"_id":"1"}`),
			ExpiresAt: time.Now().Add(time.Minute),
		})
		require.NoError(t, err)

		entry, err := cache.Get(ctx, "key")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"_id":"1"}`), entry.Data)
		assert.True(t, cache.Has(ctx, "key"))
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()

		cache := planhat.NewMemoryCache(10)

		_, err := cache.Get(ctx, "nope")
		require.ErrorIs(t, err, planhat.ErrCacheKeyNotFound)
		assert.False(t, cache.Has(ctx, "nope"))
	})

	t.Run("expired entry", func(t *testing.T) {
		t.Parallel()

		cache := planhat.NewMemoryCache(10)

		err := cache.Set(ctx, "key", &planhat.CacheEntry{
			Data:      []byte("stale"),
			ExpiresAt: time.Now().Add(-time.Second),
		})
		require.NoError(t, err)

		_, err = cache.Get(ctx, "key")
		require.ErrorIs(t, err, planhat.ErrCacheEntryExpired)
		assert.False(t, cache.Has(ctx, "key"))
	})

	t.Run("evicts the entry closest to expiry when full", func(t *testing.T) {
		t.Parallel()

		cache := planhat.NewMemoryCache(2)

		require.NoError(t, cache.Set(ctx, "soon", &planhat.CacheEntry{
			ExpiresAt: time.Now().Add(time.Minute),
		}))
		require.NoError(t, cache.Set(ctx, "later", &planhat.CacheEntry{
			ExpiresAt: time.Now().Add(time.Hour),
		}))
		require.NoError(t, cache.Set(ctx, "new", &planhat.CacheEntry{
			ExpiresAt: time.Now().Add(time.Hour),
		}))

		assert.False(t, cache.Has(ctx, "soon"))
		assert.True(t, cache.Has(ctx, "later"))
		assert.True(t, cache.Has(ctx, "new"))
	})

	t.Run("delete and clear", func(t *testing.T) {
		t.Parallel()

		cache := planhat.NewMemoryCache(10)

		require.NoError(t, cache.Set(ctx, "a", &planhat.CacheEntry{ExpiresAt: time.Now().Add(time.Minute)}))
		require.NoError(t, cache.Set(ctx, "b", &planhat.CacheEntry{ExpiresAt: time.Now().Add(time.Minute)}))

		require.NoError(t, cache.Delete(ctx, "a"))
		assert.False(t, cache.Has(ctx, "a"))
		assert.True(t, cache.Has(ctx, "b"))

		require.NoError(t, cache.Clear(ctx))
		assert.False(t, cache.Has(ctx, "b"))
	})

	t.Run("cleanup removes expired entries", func(t *testing.T) {
		t.Parallel()

		cache := planhat.NewMemoryCache(10)

		require.NoError(t, cache.Set(ctx, "stale", &planhat.CacheEntry{ExpiresAt: time.Now().Add(-time.Minute)}))
		require.NoError(t, cache.Set(ctx, "fresh", &planhat.CacheEntry{ExpiresAt: time.Now().Add(time.Minute)}))

		cache.Cleanup()

		assert.False(t, cache.Has(ctx, "stale"))
		assert.True(t, cache.Has(ctx, "fresh"))
	})
}

func TestCacheManager_GetCacheKey(t *testing.T) {
	t.Parallel()

	manager := planhat.NewCacheManager(planhat.NewMemoryCache(10), nil)

	t.Run("no params", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "GET:/companies", manager.GetCacheKey("GET", "/companies", nil))
	})

	t.Run("params are sorted", func(t *testing.T) {
		t.Parallel()

		key := manager.GetCacheKey("GET", "/companies", map[string]string{
			"offset": "0",
			"limit":  "5000",
		})
		assert.Equal(t, "GET:/companies:limit=5000&offset=0", key)

		reversed := manager.GetCacheKey("GET", "/companies", map[string]string{
			"limit":  "5000",
			"offset": "0",
		})
		assert.Equal(t, key, reversed)
	})
}

func TestCacheManager_Stats(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	manager := planhat.NewCacheManager(planhat.NewMemoryCache(10), nil)

	_, err := manager.Get(ctx, "absent")
	require.Error(t, err)

	require.NoError(t, manager.Set(ctx, "present", []byte("data"), time.Minute))

	data, err := manager.Get(ctx, "present")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), data)

	stats := manager.GetStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)
	assert.InDelta(t, 0.5, stats.GetHitRate(), 0.001)
}

func TestCacheStats_GetHitRate_NoLookups(t *testing.T) {
	t.Parallel()

	stats := planhat.CacheStats{}
	assert.InDelta(t, 0.0, stats.GetHitRate(), 0.001)
}

func TestCacheManager_DefaultTTL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := planhat.NewMemoryCache(10)
	manager := planhat.NewCacheManager(cache, &planhat.CacheOptions{
		DefaultTTL: time.Hour,
		Policy:     planhat.DefaultCachingPolicy(),
	})

	require.NoError(t, manager.Set(ctx, "key", []byte("data"), 0))

	entry, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	assert.Greater(t, time.Until(entry.ExpiresAt), 59*time.Minute)
}

func TestCachingPolicy_ShouldCache(t *testing.T) {
	t.Parallel()

	t.Run("default policy", func(t *testing.T) {
		t.Parallel()

		policy := planhat.DefaultCachingPolicy()

		assert.True(t, policy.ShouldCache("GET", "/companies", 200))
		assert.False(t, policy.ShouldCache("POST", "/companies", 200))
		assert.False(t, policy.ShouldCache("GET", "/companies", 500))
		assert.False(t, policy.ShouldCache("GET", "/leancompanies", 200))
	})

	t.Run("include paths restrict caching", func(t *testing.T) {
		t.Parallel()

		policy := &planhat.CachingPolicy{
			CacheGET:     true,
			IncludePaths: []string{"/companies"},
		}

		assert.True(t, policy.ShouldCache("GET", "/companies", 200))
		assert.False(t, policy.ShouldCache("GET", "/endusers", 200))
	})

	t.Run("exclude wins over include", func(t *testing.T) {
		t.Parallel()

		policy := &planhat.CachingPolicy{
			CacheGET:     true,
			IncludePaths: []string{"/companies"},
			ExcludePaths: []string{"/companies"},
		}

		assert.False(t, policy.ShouldCache("GET", "/companies", 200))
	})
}
