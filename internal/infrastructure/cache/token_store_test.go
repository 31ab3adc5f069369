package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*TokenStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewTokenStore(client), mr
}

func TestTokenStoreStoreAndRevoke(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, store.StorePair(ctx, userID, "a1", time.Minute, "r1", time.Hour))

	ok, err := store.AccessExists(ctx, userID, "a1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, mr.Exists("refresh_token:"+userID.String()+":r1"))

	require.NoError(t, store.Revoke(ctx, userID, "a1", ""))
	ok, err = store.AccessExists(ctx, userID, "a1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, mr.Exists("refresh_token:"+userID.String()+":r1"))
}

func TestTokenStoreAccessExpires(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, store.StorePair(ctx, userID, "a1", time.Minute, "r1", time.Hour))
	mr.FastForward(2 * time.Minute)

	ok, err := store.AccessExists(ctx, userID, "a1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenStoreConsumeRefreshOnce(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, store.StorePair(ctx, userID, "a1", time.Minute, "r1", time.Hour))

	ok, err := store.ConsumeRefresh(ctx, userID, "r1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.ConsumeRefresh(ctx, userID, "r1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenStoreRevokeAll(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	userID, other := uuid.New(), uuid.New()

	require.NoError(t, store.StorePair(ctx, userID, "a1", time.Minute, "r1", time.Hour))
	require.NoError(t, store.StorePair(ctx, userID, "a2", time.Minute, "r2", time.Hour))
	require.NoError(t, store.StorePair(ctx, other, "a3", time.Minute, "r3", time.Hour))

	require.NoError(t, store.RevokeAll(ctx, userID))

	assert.Len(t, mr.Keys(), 2)
	ok, err := store.AccessExists(ctx, other, "a3")
	require.NoError(t, err)
	assert.True(t, ok)
}
