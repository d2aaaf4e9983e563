package scanlimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitrate/fitrate/internal/store"
)

func newTestLimiter(t *testing.T) (*Limiter, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	return New(mem, "u-1", 3), mem
}

func TestRemaining_FreshUser(t *testing.T) {
	l, _ := newTestLimiter(t)
	remaining, err := l.Remaining(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 3, remaining)
}

func TestRemaining_Pro(t *testing.T) {
	l, _ := newTestLimiter(t)
	remaining, err := l.Remaining(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, Unlimited, remaining)
}

func TestConsume_CountsDown(t *testing.T) {
	l, _ := newTestLimiter(t)
	ctx := context.Background()

	for want := 2; want >= 0; want-- {
		remaining, err := l.Consume(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, want, remaining)
	}

	_, err := l.Consume(ctx, false)
	require.Error(t, err)
	var noScans *ErrNoScans
	assert.ErrorAs(t, err, &noScans)
}

func TestConsume_Pro_NeverDecrements(t *testing.T) {
	l, _ := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		remaining, err := l.Consume(ctx, true)
		require.NoError(t, err)
		assert.Equal(t, Unlimited, remaining)
	}

	// Free balance untouched.
	remaining, err := l.Remaining(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 3, remaining)
}

func TestConsume_FreeBeforeExtras(t *testing.T) {
	l, mem := newTestLimiter(t)
	ctx := context.Background()
	require.NoError(t, l.GrantExtra(ctx, 2))

	// 3 free + 2 extra.
	remaining, err := l.Remaining(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 5, remaining)

	for i := 0; i < 3; i++ {
		_, err := l.Consume(ctx, false)
		require.NoError(t, err)
	}

	// Free exhausted, extras untouched so far.
	raw, ok, err := mem.Get(ctx, store.Scoped("u-1", store.KeyExtraScans))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2", raw)

	remaining, err = l.Consume(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)
}

func TestConsume_DailyRollover(t *testing.T) {
	l, _ := newTestLimiter(t)
	ctx := context.Background()

	day := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return day }

	for i := 0; i < 3; i++ {
		_, err := l.Consume(ctx, false)
		require.NoError(t, err)
	}
	_, err := l.Consume(ctx, false)
	require.Error(t, err)

	// Next day, the free allowance resets lazily.
	day = day.Add(24 * time.Hour)
	remaining, err := l.Remaining(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 3, remaining)
}

func TestGrantExtra_Accumulates(t *testing.T) {
	l, _ := newTestLimiter(t)
	ctx := context.Background()
	require.NoError(t, l.GrantExtra(ctx, 5))
	require.NoError(t, l.GrantExtra(ctx, 10))

	remaining, err := l.Remaining(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 18, remaining)
}

func TestGrantExtra_RejectsNonPositive(t *testing.T) {
	l, _ := newTestLimiter(t)
	assert.Error(t, l.GrantExtra(context.Background(), 0))
	assert.Error(t, l.GrantExtra(context.Background(), -3))
}

func TestUsedToday_CorruptCounterResets(t *testing.T) {
	l, mem := newTestLimiter(t)
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, store.Scoped("u-1", store.KeyDailyScans), "not json"))

	remaining, err := l.Remaining(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 3, remaining)
}

func TestExtraScans_CorruptValueTreatedAsZero(t *testing.T) {
	l, mem := newTestLimiter(t)
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, store.Scoped("u-1", store.KeyExtraScans), "minus one"))

	remaining, err := l.Remaining(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 3, remaining)
}

func TestNew_ZeroFreePerDayUsesDefault(t *testing.T) {
	l := New(store.NewMemory(), "u-1", 0)
	remaining, err := l.Remaining(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, DefaultFreePerDay, remaining)
}

func TestLimiters_ScopedPerUser(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()
	a := New(mem, "alice", 3)
	b := New(mem, "bob", 3)

	_, err := a.Consume(ctx, false)
	require.NoError(t, err)

	remaining, err := b.Remaining(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 3, remaining)
}
