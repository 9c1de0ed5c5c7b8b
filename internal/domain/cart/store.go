// internal/domain/cart/store.go
package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/your-org/storefront/internal/domain/pricing"
)

// Store is the cart state container. Every mutation loads the persisted
// cart, applies the change, recomputes totals through the pricing engine and
// saves the result, so the persisted document is always internally
// consistent. The mutex serializes mutations on the same store; a cart has
// a single shopper, so contention is a double-click, not a workload.
type Store struct {
	mu          sync.Mutex
	persistence Persistence
	engine      *pricing.Engine
}

// NewStore creates a cart store backed by the given persistence port
func NewStore(persistence Persistence, engine *pricing.Engine) *Store {
	return &Store{
		persistence: persistence,
		engine:      engine,
	}
}

// Get retrieves the current cart
func (s *Store) Get(ctx context.Context) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistence.Load(ctx)
}

// AddItem adds an item to the cart, or replaces the quantity of an existing
// line with the requested one. A request for more than the available stock
// is rejected and the cart is left untouched.
func (s *Store) AddItem(ctx context.Context, item CartItem) (*Cart, error) {
	if item.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}
	if item.Quantity > item.CountInStock {
		return nil, &StockConflictError{
			ProductID: item.ProductID,
			Requested: item.Quantity,
			Available: item.CountInStock,
		}
	}

	return s.mutate(ctx, func(c *Cart) error {
		if i := c.findItem(item.ProductID); i >= 0 {
			added := c.Items[i].AddedAt
			c.Items[i] = item
			c.Items[i].AddedAt = added
		} else {
			item.AddedAt = time.Now().UTC()
			c.Items = append(c.Items, item)
		}
		return nil
	})
}

// UpdateQuantity changes the quantity of an existing line. Zero removes the
// line; more than the snapshot stock is rejected without touching the cart.
func (s *Store) UpdateQuantity(ctx context.Context, productID uint, quantity int) (*Cart, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}

	return s.mutate(ctx, func(c *Cart) error {
		i := c.findItem(productID)
		if i < 0 {
			return fmt.Errorf("item not found in cart")
		}
		if quantity == 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
		if quantity > c.Items[i].CountInStock {
			return &StockConflictError{
				ProductID: productID,
				Requested: quantity,
				Available: c.Items[i].CountInStock,
			}
		}
		c.Items[i].Quantity = quantity
		return nil
	})
}

// RemoveItem removes a line from the cart
func (s *Store) RemoveItem(ctx context.Context, productID uint) (*Cart, error) {
	return s.UpdateQuantity(ctx, productID, 0)
}

// SetShippingAddress stores the shipping destination
func (s *Store) SetShippingAddress(ctx context.Context, addr ShippingAddress) (*Cart, error) {
	return s.mutate(ctx, func(c *Cart) error {
		c.ShippingAddress = &addr
		return nil
	})
}

// SetPaymentMethod stores the chosen payment method
func (s *Store) SetPaymentMethod(ctx context.Context, method PaymentMethod) (*Cart, error) {
	if !method.Valid() {
		return nil, fmt.Errorf("unsupported payment method %q", method)
	}
	return s.mutate(ctx, func(c *Cart) error {
		c.PaymentMethod = method
		return nil
	})
}

// Clear drops the cart entirely
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistence.Clear(ctx)
}

// mutate runs a load-modify-recompute-save cycle under the store lock.
// The persisted cart is untouched when fn returns an error.
func (s *Store) mutate(ctx context.Context, fn func(c *Cart) error) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.persistence.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	if err := fn(c); err != nil {
		return nil, err
	}

	// Totals are always recomputed before the cart is stored
	c.Totals = s.engine.ComputeTotals(c.Lines())
	c.UpdatedAt = time.Now().UTC()

	if err := s.persistence.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return c, nil
}
