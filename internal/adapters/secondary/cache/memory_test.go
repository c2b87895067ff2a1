package cache

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hydroshare-viewer-service/internal/core/domain"
)

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(10, clockwork.NewFakeClock())

	_, err := c.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "a", []byte("alpha"), time.Minute))
	v, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("alpha"), v)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.April, 26, 15, 10, 0, 0, time.UTC))
	c := NewMemoryCache(10, clock)

	require.NoError(t, c.Set(ctx, "caps", []byte("<xml/>"), 5*time.Minute))

	clock.Advance(4 * time.Minute)
	_, err := c.Get(ctx, "caps")
	require.NoError(t, err)

	clock.Advance(time.Minute)
	_, err = c.Get(ctx, "caps")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2, clockwork.NewFakeClock())

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Hour))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Hour))

	// touch a so b becomes the eviction candidate
	_, err := c.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "c", []byte("3"), time.Hour))

	_, err = c.Get(ctx, "b")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
	_, err = c.Get(ctx, "a")
	assert.NoError(t, err)
	_, err = c.Get(ctx, "c")
	assert.NoError(t, err)
}

func TestMemoryCache_OverwriteRefreshesTTL(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	c := NewMemoryCache(2, clock)

	require.NoError(t, c.Set(ctx, "a", []byte("old"), time.Minute))
	clock.Advance(50 * time.Second)
	require.NoError(t, c.Set(ctx, "a", []byte("new"), time.Minute))
	clock.Advance(50 * time.Second)

	v, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), v)
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCache_Ping(t *testing.T) {
	assert.NoError(t, NewMemoryCache(1, nil).Ping(context.Background()))
}
