// internal/domain/payment/adapter.go
package payment

import (
	"context"
	"fmt"

	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/order"
)

// ValidationError reports malformed payment-method input. It is local and
// recoverable: no PaymentResult is emitted and the caller may retry.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Collector turns method-specific input into the uniform PaymentResult
// contract consumed by order finalization. Each payment method is one
// Collector implementation; the order lifecycle never learns which.
type Collector interface {
	Collect(ctx context.Context, o *order.Order) (*order.PaymentResult, error)
}

// Request carries the method-specific input for a collection attempt.
// Exactly one variant field is consulted, selected by the order's payment
// method; PayPal needs no extra input beyond the payer.
type Request struct {
	PayerEmail string       `json:"payer_email"`
	Card       *CardDetails `json:"card,omitempty"`
	Upi        *UpiDetails  `json:"upi,omitempty"`
}

// Adapter dispatches a collection request to the collector matching the
// order's payment method
type Adapter struct {
	provider Provider
	rates    RateConfig
}

// NewAdapter creates a payment adapter. The provider backs the PayPal
// variant; card and UPI are self-contained mock settlement paths.
func NewAdapter(provider Provider, rates RateConfig) *Adapter {
	return &Adapter{
		provider: provider,
		rates:    rates,
	}
}

// Collect produces a PaymentResult for the order using the variant selected
// by its payment method
func (a *Adapter) Collect(ctx context.Context, o *order.Order, req Request) (*order.PaymentResult, error) {
	var collector Collector

	switch cart.PaymentMethod(o.PaymentMethod) {
	case cart.PaymentMethodPayPal:
		collector = NewPayPalCollector(a.provider, a.rates, req.PayerEmail)
	case cart.PaymentMethodCreditCard:
		if req.Card == nil {
			return nil, &ValidationError{Field: "card", Message: "card details are required"}
		}
		collector = NewCardCollector(*req.Card, req.PayerEmail)
	case cart.PaymentMethodUPI:
		if req.Upi == nil {
			return nil, &ValidationError{Field: "upi", Message: "UPI details are required"}
		}
		collector = NewUpiCollector(*req.Upi, req.PayerEmail)
	default:
		return nil, fmt.Errorf("unsupported payment method %q", o.PaymentMethod)
	}

	return collector.Collect(ctx, o)
}
