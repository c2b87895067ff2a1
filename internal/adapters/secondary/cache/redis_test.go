package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hydroshare-viewer-service/internal/core/domain"
)

func newTestRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCacheFromClient(client), mr
}

func TestNewRedisCache_InvalidURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "memcached://localhost:11211")
	assert.Error(t, err)
}

func TestNewRedisCache_Connects(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := NewRedisCache(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	assert.NoError(t, c.Ping(context.Background()))
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisCache(context.Background(), "redis://"+addr)
	assert.Error(t, err)
}

func TestRedisCache_SetGet(t *testing.T) {
	c, mr := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "https://geoserver.example/wfs", []byte(`{"a":1}`), time.Minute))

	got, err := c.Get(ctx, "https://geoserver.example/wfs")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), got)

	assert.True(t, mr.Exists("hsviewer:upstream:https://geoserver.example/wfs"))
	assert.False(t, mr.Exists("https://geoserver.example/wfs"))
	assert.Equal(t, time.Minute, mr.TTL("hsviewer:upstream:https://geoserver.example/wfs"))
}

func TestRedisCache_Miss(t *testing.T) {
	c, mr := newTestRedisCache(t)
	require.NoError(t, mr.Set("unprefixed", "value"))

	_, err := c.Get(context.Background(), "unprefixed")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCache_Expiry(t *testing.T) {
	c, mr := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 30*time.Second))
	mr.FastForward(31 * time.Second)

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCache_ServerDown(t *testing.T) {
	c, mr := newTestRedisCache(t)
	mr.Close()

	_, err := c.Get(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCacheMiss)
	assert.Error(t, c.Ping(context.Background()))
}
