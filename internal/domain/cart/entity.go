// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/your-org/storefront/internal/domain/pricing"
)

// PaymentMethod identifies how the shopper intends to pay
type PaymentMethod string

const (
	PaymentMethodPayPal     PaymentMethod = "PayPal"
	PaymentMethodCreditCard PaymentMethod = "CreditCard"
	PaymentMethodUPI        PaymentMethod = "UPI"
)

// Valid reports whether the method is one the storefront accepts
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodPayPal, PaymentMethodCreditCard, PaymentMethodUPI:
		return true
	}
	return false
}

// CartItem represents one line in the cart. Price and CountInStock are
// snapshots of the catalog record taken when the item was added; stock is
// re-checked against the snapshot on every quantity change.
type CartItem struct {
	ProductID    uint      `json:"product_id"`
	Name         string    `json:"name"`
	Brand        string    `json:"brand"`
	Image        string    `json:"image"`
	Price        int64     `json:"price"` // Unit price in minor currency units
	Quantity     int       `json:"quantity"`
	CountInStock int       `json:"count_in_stock"`
	AddedAt      time.Time `json:"added_at"`
}

// ShippingAddress is the destination collected during checkout.
// All four fields must be non-empty before checkout may proceed.
type ShippingAddress struct {
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// Cart holds the line items plus everything collected on the way to an
// order. Totals are derived, never edited by hand; every mutation recomputes
// them from the items before the cart is persisted.
type Cart struct {
	Items           []CartItem       `json:"items"` // Insertion order is display order
	ShippingAddress *ShippingAddress `json:"shipping_address,omitempty"`
	PaymentMethod   PaymentMethod    `json:"payment_method,omitempty"`
	Totals          pricing.Totals   `json:"totals"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// IsEmpty reports whether the cart has no line items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Lines converts the cart items into pricing lines
func (c *Cart) Lines() []pricing.Line {
	lines := make([]pricing.Line, len(c.Items))
	for i, item := range c.Items {
		lines[i] = pricing.Line{UnitPrice: item.Price, Quantity: item.Quantity}
	}
	return lines
}

// findItem returns the index of the line for productID, or -1
func (c *Cart) findItem(productID uint) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
