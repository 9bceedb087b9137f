package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/solivera/gatekeeper/internal/auth"
	"github.com/solivera/gatekeeper/internal/platform/httpx"
)

func newTestStore(t *testing.T) (*auth.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return auth.NewRedisStore(client), mr
}

func testUser(email string) *auth.User {
	return &auth.User{
		ID:        "3f0c9f4e-0000-0000-0000-000000000000",
		Email:     email,
		FullName:  "Ada Lovelace",
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		IsActive:  true,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	user := testUser("ada@example.com")
	require.NoError(t, store.Put(ctx, user.Email, user))

	// Records live under the canonical key format.
	require.True(t, mr.Exists("users.ada@example.com"))

	got, err := store.Get(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, user.FullName, got.FullName)
	require.Equal(t, user.Email, got.Email)
	require.True(t, got.CreatedAt.Equal(user.CreatedAt))
	require.Nil(t, got.LastLogin)
	require.True(t, got.IsActive)
}

func TestStoreGetAbsent(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "nobody@example.com")
	require.True(t, errors.Is(err, httpx.ErrNotFound))
}

func TestStorePutIfAbsent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first := testUser("ada@example.com")
	inserted, err := store.PutIfAbsent(ctx, first.Email, first)
	require.NoError(t, err)
	require.True(t, inserted)

	second := testUser("ada@example.com")
	second.FullName = "Impostor"
	inserted, err = store.PutIfAbsent(ctx, second.Email, second)
	require.NoError(t, err)
	require.False(t, inserted)

	got, err := store.Get(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", got.FullName)
}

func TestStoreCorruptRecord(t *testing.T) {
	store, mr := newTestStore(t)
	require.NoError(t, mr.Set("users.ada@example.com", "not-json"))

	_, err := store.Get(context.Background(), "ada@example.com")
	require.Error(t, err)
	require.False(t, errors.Is(err, httpx.ErrNotFound))
}
