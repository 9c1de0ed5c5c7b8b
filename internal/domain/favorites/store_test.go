// internal/domain/favorites/store_test.go
package favorites_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront/internal/domain/favorites"
)

func TestStoreAddRemove(t *testing.T) {
	store := favorites.NewStore(favorites.NewMemoryPersistence())
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, 3))
	require.NoError(t, store.Add(ctx, 7))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 7}, ids)

	ok, err := store.Contains(ctx, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Remove(ctx, 3))

	ok, err = store.Contains(ctx, 3)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreAddIsIdempotent(t *testing.T) {
	store := favorites.NewStore(favorites.NewMemoryPersistence())
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, 3))
	require.NoError(t, store.Add(ctx, 3))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint{3}, ids)
}

func TestStoreRemoveMissingIsNoOp(t *testing.T) {
	store := favorites.NewStore(favorites.NewMemoryPersistence())

	assert.NoError(t, store.Remove(context.Background(), 99))
}

func TestRedisPersistenceRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	p := favorites.NewRedisPersistence(client, "favorites:test-session", time.Hour)
	store := favorites.NewStore(p)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, 11))
	require.NoError(t, store.Add(ctx, 12))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint{11, 12}, ids)
}
