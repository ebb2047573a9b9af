package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/homemesh/core"
	"github.com/hupe1980/homemesh/internal/testutil"
)

// fakeClock drives store expiry without sleeping.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestStore(clock *fakeClock) *InMemoryStore {
	return NewInMemoryStore(func(o *Options) {
		o.CleanupInterval = 0
		o.Now = clock.Now
	})
}

func TestInMemoryStore_GetMissing(t *testing.T) {
	s := NewInMemoryStore(func(o *Options) { o.CleanupInterval = 0 })

	_, err := s.Get(context.Background(), "nope")

	assert.ErrorIs(t, err, core.ErrSessionNotFound)
}

func TestInMemoryStore_PutGet(t *testing.T) {
	s := NewInMemoryStore(func(o *Options) { o.CleanupInterval = 0 })
	sess := testutil.NewSessionBuilder("sess-1").
		Turn(testutil.SuccessTurn("light-agent", "lights on", "done")).
		Build()

	require.NoError(t, s.Put(context.Background(), "sess-1", sess, time.Hour))

	got, err := s.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", got.ID)
	require.Len(t, got.History, 1)
	assert.Equal(t, "done", got.History[0].Result.Payload)
}

func TestInMemoryStore_ReturnsClones(t *testing.T) {
	s := NewInMemoryStore(func(o *Options) { o.CleanupInterval = 0 })
	sess := testutil.NewSessionBuilder("sess-1").
		Turn(testutil.SuccessTurn("light-agent", "lights on", "done")).
		Build()
	require.NoError(t, s.Put(context.Background(), "sess-1", sess, 0))

	// Mutating the original or a retrieved copy must not leak into the store.
	sess.History[0].Result.Payload = "mutated"
	first, err := s.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	first.History[0].Result.Payload = "also mutated"

	second, err := s.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "done", second.History[0].Result.Payload)
}

func TestInMemoryStore_ExpiryLaw(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	s := newTestStore(clock)
	require.NoError(t, s.Put(context.Background(), "sess-1", core.NewSession("sess-1"), 24*time.Hour))

	clock.Advance(24*time.Hour - time.Second)
	_, err := s.Get(context.Background(), "sess-1")
	assert.NoError(t, err)

	clock.Advance(2 * time.Second)
	_, err = s.Get(context.Background(), "sess-1")
	assert.ErrorIs(t, err, core.ErrSessionNotFound)
}

func TestInMemoryStore_PutResetsExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	s := newTestStore(clock)
	require.NoError(t, s.Put(context.Background(), "sess-1", core.NewSession("sess-1"), time.Hour))

	clock.Advance(50 * time.Minute)
	require.NoError(t, s.Put(context.Background(), "sess-1", core.NewSession("sess-1"), time.Hour))

	clock.Advance(50 * time.Minute)
	_, err := s.Get(context.Background(), "sess-1")
	assert.NoError(t, err)
}

func TestInMemoryStore_ZeroTTLNeverExpires(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	s := newTestStore(clock)
	require.NoError(t, s.Put(context.Background(), "sess-1", core.NewSession("sess-1"), 0))

	clock.Advance(1000 * time.Hour)
	_, err := s.Get(context.Background(), "sess-1")
	assert.NoError(t, err)
}

func TestInMemoryStore_PruneExpired(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	s := newTestStore(clock)
	require.NoError(t, s.Put(context.Background(), "a", core.NewSession("a"), time.Minute))
	require.NoError(t, s.Put(context.Background(), "b", core.NewSession("b"), time.Hour))

	clock.Advance(10 * time.Minute)
	s.pruneExpired()

	assert.Equal(t, 1, s.Len())
	_, err := s.Get(context.Background(), "a")
	assert.ErrorIs(t, err, core.ErrSessionNotFound)
	_, err = s.Get(context.Background(), "b")
	assert.NoError(t, err)
}

func TestInMemoryStore_CancelledContext(t *testing.T) {
	s := NewInMemoryStore(func(o *Options) { o.CleanupInterval = 0 })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, core.ErrStoreUnavailable)

	err = s.Put(ctx, "sess-1", core.NewSession("sess-1"), 0)
	assert.ErrorIs(t, err, core.ErrStoreUnavailable)
}

func TestInMemoryStore_CloseStopsJanitor(t *testing.T) {
	s := NewInMemoryStore(func(o *Options) { o.CleanupInterval = time.Millisecond })

	s.Close()
	s.Close() // idempotent
}
