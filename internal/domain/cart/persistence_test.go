// internal/domain/cart/persistence_test.go
package cart_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront/internal/domain/cart"
)

func newRedisPersistence(t *testing.T) *cart.RedisPersistence {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return cart.NewRedisPersistence(client, "cart:test-session", time.Hour)
}

func TestRedisPersistenceLoadEmpty(t *testing.T) {
	p := newRedisPersistence(t)

	c, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.NotNil(t, c.Items)
}

func TestRedisPersistenceRoundTrip(t *testing.T) {
	p := newRedisPersistence(t)
	ctx := context.Background()

	saved := &cart.Cart{
		Items: []cart.CartItem{
			{ProductID: 7, Name: "Shirt", Price: 1299, Quantity: 2, CountInStock: 4},
		},
		PaymentMethod: cart.PaymentMethodUPI,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	require.NoError(t, p.Save(ctx, saved))

	loaded, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved.Items, loaded.Items)
	assert.Equal(t, cart.PaymentMethodUPI, loaded.PaymentMethod)
}

func TestRedisPersistenceClear(t *testing.T) {
	p := newRedisPersistence(t)
	ctx := context.Background()

	require.NoError(t, p.Save(ctx, &cart.Cart{
		Items: []cart.CartItem{{ProductID: 1, Quantity: 1, CountInStock: 1}},
	}))
	require.NoError(t, p.Clear(ctx))

	c, err := p.Load(ctx)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}
