package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(16)
	ctx := context.Background()

	_, hit, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, hit)

	require.NoError(t, store.Set(ctx, "a", []byte("alpha"), time.Minute))
	value, hit, err := store.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, []byte("alpha"), value)

	require.NoError(t, store.Delete(ctx, "a"))
	_, hit, err = store.Get(ctx, "a")
	require.NoError(t, err)
	require.False(t, hit)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(16)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "short", []byte("x"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, hit, err := store.Get(ctx, "short")
	require.NoError(t, err)
	require.False(t, hit)
}

func TestMemoryStoreZeroTTLNeverExpires(t *testing.T) {
	store := NewMemoryStore(16)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "forever", []byte("y"), 0))
	time.Sleep(20 * time.Millisecond)

	value, hit, err := store.Get(ctx, "forever")
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, []byte("y"), value)
}
