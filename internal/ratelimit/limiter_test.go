package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testLimit  = 5
	testWindow = 15 * time.Minute
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter() (*Limiter, *MemoryStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryStore()
	return NewLimiter(store, WithClock(clock.Now)), store, clock
}

func TestLimiter_AllowsUpToLimit(t *testing.T) {
	l, _, _ := newTestLimiter()
	ctx := context.Background()

	for i := 1; i <= testLimit; i++ {
		res, err := l.Allow(ctx, "203.0.113.7", testLimit, testWindow)
		require.NoError(t, err)
		assert.True(t, res.Success, "request %d should pass", i)
		assert.Zero(t, res.RetryAfterSeconds)
	}

	res, err := l.Allow(ctx, "203.0.113.7", testLimit, testWindow)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, int(testWindow.Seconds()), res.RetryAfterSeconds)
}

func TestLimiter_RetryAfterRoundsUp(t *testing.T) {
	l, _, clock := newTestLimiter()
	ctx := context.Background()

	for range testLimit {
		_, err := l.Allow(ctx, "k", testLimit, testWindow)
		require.NoError(t, err)
	}

	clock.Advance(testWindow - 1500*time.Millisecond)
	res, err := l.Allow(ctx, "k", testLimit, testWindow)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, 2, res.RetryAfterSeconds)
}

func TestLimiter_ResetsAfterWindow(t *testing.T) {
	l, store, clock := newTestLimiter()
	ctx := context.Background()

	for range testLimit + 1 {
		_, err := l.Allow(ctx, "k", testLimit, testWindow)
		require.NoError(t, err)
	}

	// At exactly the reset time the window is still open
	clock.Advance(testWindow)
	res, err := l.Allow(ctx, "k", testLimit, testWindow)
	require.NoError(t, err)
	assert.False(t, res.Success)

	clock.Advance(time.Millisecond)
	res, err = l.Allow(ctx, "k", testLimit, testWindow)
	require.NoError(t, err)
	assert.True(t, res.Success)

	entry, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 1, entry.Count)
	assert.Equal(t, clock.Now().Add(testWindow), entry.ResetTime)
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l, _, _ := newTestLimiter()
	ctx := context.Background()

	for range testLimit {
		_, err := l.Allow(ctx, "a", testLimit, testWindow)
		require.NoError(t, err)
	}

	res, err := l.Allow(ctx, "b", testLimit, testWindow)
	require.NoError(t, err)
	assert.True(t, res.Success)

	res, err = l.Allow(ctx, "a", testLimit, testWindow)
	require.NoError(t, err)
	assert.False(t, res.Success)
}

func TestLimiter_PurgesExpiredEntries(t *testing.T) {
	l, store, clock := newTestLimiter()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		_, err := l.Allow(ctx, id, testLimit, time.Minute)
		require.NoError(t, err)
	}
	_, err := l.Allow(ctx, "long", testLimit, time.Hour)
	require.NoError(t, err)
	require.Equal(t, 4, store.Len())

	clock.Advance(2 * time.Minute)
	_, err = l.Allow(ctx, "d", testLimit, time.Minute)
	require.NoError(t, err)

	assert.Equal(t, 2, store.Len(), "only the hour-long window and the new key remain")
}

func TestLimiter_Reset(t *testing.T) {
	l, _, _ := newTestLimiter()
	ctx := context.Background()

	for range testLimit + 1 {
		_, err := l.Allow(ctx, "k", testLimit, testWindow)
		require.NoError(t, err)
	}
	require.NoError(t, l.Reset(ctx, "k"))

	res, err := l.Allow(ctx, "k", testLimit, testWindow)
	require.NoError(t, err)
	assert.True(t, res.Success)
}

type failingStore struct {
	*MemoryStore
	err error
}

func (f *failingStore) Get(context.Context, string) (Entry, bool, error) {
	return Entry{}, false, f.err
}

func TestLimiter_StoreErrorPropagates(t *testing.T) {
	boom := errors.New("connection refused")
	l := NewLimiter(&failingStore{MemoryStore: NewMemoryStore(), err: boom})

	_, err := l.Allow(context.Background(), "k", testLimit, testWindow)
	assert.ErrorIs(t, err, boom)
}
