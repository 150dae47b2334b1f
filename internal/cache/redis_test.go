package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/remindwell/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisCache instance
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cache := NewRedisCache(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return cache, mr, cleanup
}

func sampleItems() []domain.LineItem {
	c := domain.NewCart()
	c.Add(domain.Configuration{PillboxType: domain.Weekly, DoseSchedule: domain.Night, LightOption: domain.WithLight})
	c.Add(domain.Configuration{PillboxType: domain.Monthly, DoseSchedule: domain.ThreeTimes, LightOption: domain.WithoutLight})
	c.SetQuantity(1, 1)
	return c.Items()
}

func TestGet_Success(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	data, err := domain.EncodeSnapshot(sampleItems())
	require.NoError(t, err)
	require.NoError(t, mr.Set(cacheKey("session-1"), string(data)))

	items, err := cache.Get(context.Background(), "session-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, domain.Night, items[0].Configuration.DoseSchedule)
	assert.Equal(t, "32.99", items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, 2, items[1].Quantity)
}

func TestGet_CacheMiss(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	items, err := cache.Get(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, items)
}

func TestGet_InvalidPayload(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, mr.Set(cacheKey("session-1"), "{bad"))

	_, err := cache.Get(context.Background(), "session-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestGet_RedisDown(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()
	mr.Close()

	_, err := cache.Get(context.Background(), "session-1")
	require.ErrorContains(t, err, "redis get failed")
}

func TestSet_StoresJSONArrayWithTTL(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, cache.Set(context.Background(), "session-1", sampleItems()[:1]))

	raw, err := mr.Get(cacheKey("session-1"))
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"configuration":{"pillbox_type":"weekly","dose_schedule":"night","light_option":"with-light"},"quantity":1,"unit_price":"32.99"}]`,
		raw)

	ttl := mr.TTL(cacheKey("session-1"))
	assert.GreaterOrEqual(t, ttl, 15*time.Minute)
	assert.Less(t, ttl, 20*time.Minute)
}

func TestDelete(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "session-1", sampleItems()))
	require.NoError(t, cache.Delete(ctx, "session-1"))

	assert.False(t, mr.Exists(cacheKey("session-1")))
	_, err := cache.Get(ctx, "session-1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestNoopCache(t *testing.T) {
	var c CartCache = NoopCache{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "s", sampleItems()))
	_, err := c.Get(ctx, "s")
	assert.ErrorIs(t, err, ErrCacheMiss)
	require.NoError(t, c.Delete(ctx, "s"))
}
