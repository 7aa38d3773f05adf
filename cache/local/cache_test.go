package local

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *LocalCache {
	c, err := NewCache(Config{GCInterval: time.Minute})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestGetSet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "sim:snapshot", `{"tick":1}`, 0))
	v, err := c.Get(ctx, "sim:snapshot")
	require.NoError(t, err)
	assert.Equal(t, `{"tick":1}`, v)

	require.NoError(t, c.Set(ctx, "sim:snapshot", `{"tick":2}`, 0))
	v, _ = c.Get(ctx, "sim:snapshot")
	assert.Equal(t, `{"tick":2}`, v)
}

func TestGetMissing(t *testing.T) {
	c := newTestCache(t)
	_, err := c.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTTLExpiry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "ttl_key", "val", 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)
	_, err := c.Get(ctx, "ttl_key")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGCRemovesExpired(t *testing.T) {
	c, err := NewCache(Config{GCInterval: 10 * time.Millisecond})
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Set(context.Background(), "k", "v", 5*time.Millisecond))
	time.Sleep(50 * time.Millisecond)
	c.mu.Lock()
	_, still := c.kv["k"]
	c.mu.Unlock()
	assert.False(t, still)
}

func TestDel(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	_ = c.Set(ctx, "k", "v", 0)
	_ = c.LPush(ctx, "l", "a")
	require.NoError(t, c.Del(ctx, "k", "l"))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
	items, _ := c.LRange(ctx, "l", 0, -1)
	assert.Empty(t, items)
}

func TestLPushOrder(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, c.LPush(ctx, "log", "a"))
	require.NoError(t, c.LPush(ctx, "log", "b", "c"))

	items, err := c.LRange(ctx, "log", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, items)
}

func TestLRangeIndexes(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, c.LPush(ctx, "l", "e", "d", "c", "b", "a"))

	got, _ := c.LRange(ctx, "l", 1, 2)
	assert.Equal(t, []string{"b", "c"}, got)
	got, _ = c.LRange(ctx, "l", -2, -1)
	assert.Equal(t, []string{"d", "e"}, got)
	got, _ = c.LRange(ctx, "l", 3, 100)
	assert.Equal(t, []string{"d", "e"}, got)
	got, _ = c.LRange(ctx, "l", 9, 10)
	assert.Empty(t, got)
}

func TestLTrimCaps(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	for _, v := range []string{"1", "2", "3", "4"} {
		require.NoError(t, c.LPush(ctx, "log", v))
		require.NoError(t, c.LTrim(ctx, "log", 0, 1))
	}
	got, _ := c.LRange(ctx, "log", 0, -1)
	assert.Equal(t, []string{"4", "3"}, got)

	require.NoError(t, c.LTrim(ctx, "log", 5, 9))
	got, _ = c.LRange(ctx, "log", 0, -1)
	assert.Empty(t, got)
}

func TestCloseTwice(t *testing.T) {
	c, err := NewCache(Config{})
	require.NoError(t, err)
	c.Close()
	c.Close()
}
