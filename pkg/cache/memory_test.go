package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	err := store.Set(ctx, "key", []byte("value"), time.Minute)
	require.NoError(t, err)

	value, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), value)
}

func TestMemoryStore_MissingKey(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "absent")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	current := time.Now()
	store.now = func() time.Time { return current }

	err := store.Set(ctx, "key", []byte("value"), 5*time.Minute)
	require.NoError(t, err)

	// Still live just before the deadline
	current = current.Add(5*time.Minute - time.Second)
	_, err = store.Get(ctx, "key")
	assert.NoError(t, err)

	// Expired entries read as misses
	current = current.Add(2 * time.Second)
	_, err = store.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryStore_NoExpiryWhenTTLZero(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	current := time.Now()
	store.now = func() time.Time { return current }

	err := store.Set(ctx, "key", []byte("value"), 0)
	require.NoError(t, err)

	current = current.Add(24 * time.Hour)
	_, err = store.Get(ctx, "key")
	assert.NoError(t, err)
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "key", []byte("value"), time.Minute))
	require.NoError(t, store.Delete(ctx, "key"))

	_, err := store.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrCacheMiss)

	// Deleting an absent key is not an error
	assert.NoError(t, store.Delete(ctx, "key"))
}

func TestMemoryStore_Overwrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "key", []byte("old"), time.Minute))
	require.NoError(t, store.Set(ctx, "key", []byte("new"), time.Minute))

	value, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), value)
}
