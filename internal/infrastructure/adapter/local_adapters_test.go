package adapter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLocalCacheAdapter_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	cache := NewLocalCacheAdapter(100, discardLogger())
	t.Cleanup(func() { _ = cache.Close() })

	_, err := cache.Get(ctx, "rooms:1:20")
	assert.True(t, errors.Is(err, ErrCacheMiss))

	require.NoError(t, cache.Set(ctx, "rooms:1:20", []byte(`[{"id":1}]`), time.Minute))

	got, err := cache.Get(ctx, "rooms:1:20")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(got))

	got[0] = 'X'
	again, err := cache.Get(ctx, "rooms:1:20")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(again), "cached bytes must not alias the caller's slice")

	require.NoError(t, cache.Delete(ctx, "rooms:1:20"))
	_, err = cache.Get(ctx, "rooms:1:20")
	assert.True(t, errors.Is(err, ErrCacheMiss))
}

func TestLocalCacheAdapter_ExpiredEntryIsAMiss(t *testing.T) {
	ctx := context.Background()
	cache := NewLocalCacheAdapter(100, discardLogger())
	t.Cleanup(func() { _ = cache.Close() })

	require.NoError(t, cache.Set(ctx, "rooms:1:20", []byte("x"), -time.Second))

	_, err := cache.Get(ctx, "rooms:1:20")
	assert.True(t, errors.Is(err, ErrCacheMiss))
}

func TestLocalCacheAdapter_DeletePattern(t *testing.T) {
	ctx := context.Background()
	cache := NewLocalCacheAdapter(100, discardLogger())
	t.Cleanup(func() { _ = cache.Close() })

	for _, key := range []string{"rooms:1:20", "rooms:2:20", "available_rooms_2_Suite____none_true", "facilities"} {
		require.NoError(t, cache.Set(ctx, key, []byte("x"), time.Minute))
	}

	require.NoError(t, cache.DeletePattern(ctx, "rooms*"))
	require.NoError(t, cache.DeletePattern(ctx, "available_rooms_*"))

	for _, key := range []string{"rooms:1:20", "rooms:2:20", "available_rooms_2_Suite____none_true"} {
		_, err := cache.Get(ctx, key)
		assert.True(t, errors.Is(err, ErrCacheMiss), "key %s should be gone", key)
	}

	_, err := cache.Get(ctx, "facilities")
	assert.NoError(t, err)
}

func TestLocalLockAdapter_AcquireIsExclusiveUntilReleaseOrExpiry(t *testing.T) {
	ctx := context.Background()
	lock := NewLocalLockAdapter()
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	lock.now = func() time.Time { return now }

	token, ok, err := lock.Acquire(ctx, "reservation:room:1", 10*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, token)

	_, ok, err = lock.Acquire(ctx, "reservation:room:1", 10*time.Second)
	require.NoError(t, err)
	assert.False(t, ok, "second holder must wait")

	_, ok, err = lock.Acquire(ctx, "reservation:room:2", 10*time.Second)
	require.NoError(t, err)
	assert.True(t, ok, "locks are per key")

	require.NoError(t, lock.Release(ctx, "reservation:room:1", token))
	_, ok, err = lock.Acquire(ctx, "reservation:room:1", 10*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(11 * time.Second)
	_, ok, err = lock.Acquire(ctx, "reservation:room:2", 10*time.Second)
	require.NoError(t, err)
	assert.True(t, ok, "an expired lock can be taken over")
}

func TestLocalLockAdapter_ExpiredHolderCannotReleaseNewLease(t *testing.T) {
	ctx := context.Background()
	lock := NewLocalLockAdapter()
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	lock.now = func() time.Time { return now }

	stale, ok, err := lock.Acquire(ctx, "reservation:room:1", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	now = now.Add(2 * time.Second)
	current, ok, err := lock.Acquire(ctx, "reservation:room:1", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEqual(t, stale, current)

	require.NoError(t, lock.Release(ctx, "reservation:room:1", stale))

	_, ok, err = lock.Acquire(ctx, "reservation:room:1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "the late release left the current lease in place")

	require.NoError(t, lock.Release(ctx, "reservation:room:1", current))
	_, ok, err = lock.Acquire(ctx, "reservation:room:1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
