// internal/domain/checkout/errors.go
package checkout

import (
	"errors"
	"fmt"
)

// ErrInvalidPaymentMethod rejects a method outside the supported set.
var ErrInvalidPaymentMethod = errors.New("invalid payment method")

// ErrPlacementInFlight signals that an order placement is already running
// for this session. It is a guard outcome, not a user-facing failure: the
// caller drops the duplicate and waits for the first attempt.
var ErrPlacementInFlight = errors.New("order placement already in progress")

// ValidationError reports missing or malformed checkout input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// OrderCreationFailure wraps a collaborator error raised while placing the
// order. The cart is left intact so the attempt can be retried.
type OrderCreationFailure struct {
	Err error
}

func (e *OrderCreationFailure) Error() string {
	return fmt.Sprintf("order creation failed: %v", e.Err)
}

func (e *OrderCreationFailure) Unwrap() error {
	return e.Err
}
