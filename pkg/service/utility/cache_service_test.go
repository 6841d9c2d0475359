package utility

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRedisCache 启动一个 miniredis，返回基于它的缓存和服务句柄
func newRedisCache(t *testing.T) (CacheService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCacheService(client), mr
}

func newMemoryCache(t *testing.T) CacheService {
	t.Helper()
	svc := NewMemoryCacheService()
	t.Cleanup(func() { StopCacheService(svc) })
	return svc
}

func TestCacheServiceContract(t *testing.T) {
	redisCache, _ := newRedisCache(t)
	impls := map[string]CacheService{
		"内存缓存":  newMemoryCache(t),
		"Redis缓存": redisCache,
	}

	for name, cache := range impls {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			got, err := cache.Get(ctx, "missing")
			require.NoError(t, err)
			assert.Equal(t, "", got)

			require.NoError(t, cache.Set(ctx, "public:about", "v1", time.Minute))
			got, err = cache.Get(ctx, "public:about")
			require.NoError(t, err)
			assert.Equal(t, "v1", got)

			n, err := cache.Increment(ctx, "counter")
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)
			n, err = cache.Increment(ctx, "counter")
			require.NoError(t, err)
			assert.Equal(t, int64(2), n)

			require.NoError(t, cache.Set(ctx, "public:blog", "v2", 0))
			keys, err := cache.Scan(ctx, "public:*")
			require.NoError(t, err)
			sort.Strings(keys)
			assert.Equal(t, []string{"public:about", "public:blog"}, keys)

			require.NoError(t, cache.Delete(ctx, "public:about", "public:blog"))
			require.NoError(t, cache.Delete(ctx))
			keys, err = cache.Scan(ctx, "public:*")
			require.NoError(t, err)
			assert.Empty(t, keys)
		})
	}
}

func TestMemoryCacheExpiration(t *testing.T) {
	ctx := context.Background()
	cache := newMemoryCache(t)

	require.NoError(t, cache.Set(ctx, "short", "x", 20*time.Millisecond))
	require.NoError(t, cache.Set(ctx, "forever", "y", 0))
	time.Sleep(40 * time.Millisecond)

	got, err := cache.Get(ctx, "short")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = cache.Get(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, "y", got)

	require.NoError(t, cache.Expire(ctx, "forever", 20*time.Millisecond))
	time.Sleep(40 * time.Millisecond)
	keys, err := cache.Scan(ctx, "*")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestMemoryCacheIncrementNonInteger(t *testing.T) {
	ctx := context.Background()
	cache := newMemoryCache(t)

	require.NoError(t, cache.Set(ctx, "k", "abc", 0))
	_, err := cache.Increment(ctx, "k")
	assert.Error(t, err)
}

func TestRedisCacheExpiration(t *testing.T) {
	ctx := context.Background()
	cache, mr := newRedisCache(t)

	require.NoError(t, cache.Set(ctx, "k", "v", time.Minute))
	mr.FastForward(2 * time.Minute)

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	cache := newMemoryCache(t)

	type payload struct {
		Title string `json:"title"`
		Count int    `json:"count"`
	}

	var dest payload
	hit, err := GetJSON(ctx, cache, "json", &dest)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, SetJSON(ctx, cache, "json", payload{Title: "关于我们", Count: 3}, time.Minute))
	hit, err = GetJSON(ctx, cache, "json", &dest)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, payload{Title: "关于我们", Count: 3}, dest)
}

func TestCacheFactory(t *testing.T) {
	t.Run("无Redis时使用内存缓存", func(t *testing.T) {
		svc := NewCacheServiceWithFallback(nil)
		defer StopCacheService(svc)
		assert.Equal(t, CacheTypeMemory, GetCacheServiceType(svc))
	})

	t.Run("Redis可用", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer client.Close()
		assert.Equal(t, CacheTypeRedis, GetCacheServiceType(NewCacheServiceWithFallback(client)))
	})

	t.Run("Redis不可用时降级", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer client.Close()
		mr.Close()
		svc := NewCacheServiceWithFallback(client)
		defer StopCacheService(svc)
		assert.Equal(t, CacheTypeMemory, GetCacheServiceType(svc))
	})
}
