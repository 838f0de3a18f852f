package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CreateGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Create(ctx, &Session{ID: "a"}))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a", got.ID)
	assert.NotNil(t, got.Data)

	missing, err := store.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryStore_CreateRejectsLiveID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Create(ctx, &Session{ID: "a"}))
	assert.ErrorIs(t, store.Create(ctx, &Session{ID: "a"}), ErrIDTaken)
}

func TestMemoryStore_CreateReplacesExpiredID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.sessions["a"] = &Session{ID: "a", ExpiresAt: time.Now().Add(-time.Minute)}

	assert.NoError(t, store.Create(ctx, &Session{ID: "a"}))
}

func TestMemoryStore_GetHidesExpired(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.sessions["old"] = &Session{ID: "old", ExpiresAt: time.Now().Add(-time.Second)}

	got, err := store.Get(ctx, "old")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Create(ctx, &Session{ID: "a"}))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	got.Set(KeyLoggedIn, true)

	again, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, again.LoggedIn(), "mutation must not leak without Update")

	require.NoError(t, store.Update(ctx, got))
	again, err = store.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, again.LoggedIn())
}

func TestMemoryStore_UpdateDoesNotReviveDeleted(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Create(ctx, &Session{ID: "a"}))
	require.NoError(t, store.Delete(ctx, "a"))

	s := &Session{ID: "a"}
	s.Set(KeyLoggedIn, true)
	assert.ErrorIs(t, store.Update(ctx, s), ErrNotFound)

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)
	n, _ := store.Len(ctx)
	assert.Zero(t, n)
}

func TestMemoryStore_UpdateAfterExpiryIsNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.sessions["a"] = &Session{ID: "a", ExpiresAt: time.Now().Add(-time.Second)}

	assert.ErrorIs(t, store.Update(ctx, &Session{ID: "a", ExpiresAt: time.Now().Add(time.Hour)}), ErrNotFound)
	assert.NotContains(t, store.sessions, "a")
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Create(ctx, &Session{ID: "a"}))

	require.NoError(t, store.Delete(ctx, "a"))

	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s-%d", i)
			_ = store.Create(ctx, &Session{ID: id})
			s, _ := store.Get(ctx, id)
			if s != nil {
				s.Set(KeyName, id)
				_ = store.Update(ctx, s)
			}
		}(i)
	}
	wg.Wait()

	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, n)
}
