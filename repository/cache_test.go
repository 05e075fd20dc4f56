package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockCache_GetSet(t *testing.T) {
	cache := NewMockCache()
	ctx := context.Background()

	_, ok := cache.Get(ctx, "k")
	assert.False(t, ok)

	value := []byte("v1")
	require.NoError(t, cache.Set(ctx, "k", value, 0))
	value[0] = 'x'

	got, ok := cache.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), got)
}

func TestMockCache_Expiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewMockCache()
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))

	now = now.Add(59 * time.Second)
	_, ok := cache.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok = cache.Get(ctx, "k")
	assert.False(t, ok)
	assert.Zero(t, cache.Len())
}

// TestRedisCache runs against a live server when SCHEMED_TEST_REDIS_ADDR is set.
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("SCHEMED_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SCHEMED_TEST_REDIS_ADDR not set")
	}

	cache := NewRedisCache(RedisOptions{Addr: addr})
	defer cache.Close()
	ctx := context.Background()
	require.NoError(t, cache.Ping(ctx))

	key := "test:" + time.Now().Format(time.RFC3339Nano)
	_, ok := cache.Get(ctx, key)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, key, []byte("payload"), time.Minute))
	got, ok := cache.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), got)
}
