// internal/domain/order/entity_test.go
package order_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/your-org/storefront/internal/domain/order"
)

func TestStatusDerivation(t *testing.T) {
	o := &order.Order{}
	assert.Equal(t, order.StatusCreated, o.Status())

	o.IsPaid = true
	assert.Equal(t, order.StatusPaid, o.Status())

	o.IsDelivered = true
	assert.Equal(t, order.StatusDelivered, o.Status())
}

func TestCanTransition(t *testing.T) {
	created := &order.Order{}
	assert.True(t, created.CanTransition(order.StatusPaid))
	assert.False(t, created.CanTransition(order.StatusDelivered))

	paid := &order.Order{IsPaid: true}
	assert.True(t, paid.CanTransition(order.StatusDelivered))
	assert.False(t, paid.CanTransition(order.StatusPaid))
}

func TestGenerateOrderNumber(t *testing.T) {
	at := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "ORD-20260829-00042", order.GenerateOrderNumber(42, at))
}

func TestPaymentResultCompleted(t *testing.T) {
	assert.True(t, order.PaymentResult{Status: order.ResultStatusCompleted}.Completed())
	assert.False(t, order.PaymentResult{Status: "PENDING"}.Completed())
	assert.False(t, order.PaymentResult{}.Completed())
}
