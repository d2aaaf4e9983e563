package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetMissing(t *testing.T) {
	m := NewMemory()
	v, ok, err := m.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestMemory_SetGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, KeyUserID, "u-1"))
	v, ok, err := m.Get(ctx, KeyUserID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "u-1", v)
}

func TestMemory_LastWriteWins(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", "first"))
	require.NoError(t, m.Set(ctx, "k", "second"))

	v, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", v)
}

func TestMemory_Delete(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", "v"))
	require.NoError(t, m.Delete(ctx, "k"))

	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting again is not an error.
	assert.NoError(t, m.Delete(ctx, "k"))
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Set(ctx, "shared", "v")
			_, _, _ = m.Get(ctx, "shared")
		}()
	}
	wg.Wait()

	v, ok, err := m.Get(ctx, "shared")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestScoped(t *testing.T) {
	assert.Equal(t, "fitrate_pro", Scoped("", KeyPro))
	assert.Equal(t, "u-1:fitrate_pro", Scoped("u-1", KeyPro))
}

func TestShowProfileKey(t *testing.T) {
	assert.Equal(t, "fitrate_show_abc123", ShowProfileKey("abc123"))
}
