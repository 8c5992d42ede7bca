package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/integration/cache"
)

func newStore(t *testing.T) (adapter.IdempotencyStore, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewIdempotencyStore(client), server
}

func TestIdempotencyStore_ReserveOnce(t *testing.T) {
	store, server := newStore(t)
	ctx := context.Background()

	ok, err := store.Reserve(ctx, "k1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Reserve(ctx, "k1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.True(t, server.Exists("idempotency:k1"))

	pending, err := store.Load(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, pending)
}

func TestIdempotencyStore_SaveAndLoad(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	response := &adapter.StoredResponse{
		StatusCode:  201,
		ContentType: "application/json; charset=utf-8",
		Body:        []byte(`{"id":"abc"}`),
	}
	require.NoError(t, store.Save(ctx, "k2", response, time.Hour))

	loaded, err := store.Load(ctx, "k2")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, response.StatusCode, loaded.StatusCode)
	assert.Equal(t, response.ContentType, loaded.ContentType)
	assert.JSONEq(t, `{"id":"abc"}`, string(loaded.Body))
}

func TestIdempotencyStore_ReleaseAndExpiry(t *testing.T) {
	store, server := newStore(t)
	ctx := context.Background()

	ok, err := store.Reserve(ctx, "k3", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, store.Release(ctx, "k3"))
	ok, err = store.Reserve(ctx, "k3", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	server.FastForward(2 * time.Minute)
	ok, err = store.Reserve(ctx, "k3", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	missing, err := store.Load(ctx, "unknown")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIdempotencyStore_ServerDown(t *testing.T) {
	store, server := newStore(t)
	server.Close()

	_, err := store.Reserve(context.Background(), "k4", time.Minute)
	assert.Error(t, err)
}
