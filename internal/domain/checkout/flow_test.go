// internal/domain/checkout/flow_test.go
package checkout_test

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/pricing"
)

type mockPlacer struct {
	mock.Mock
}

func (m *mockPlacer) Create(payload *order.CreateOrderPayload) (*order.Order, error) {
	args := m.Called(payload)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func setupFlow(t *testing.T) (*checkout.Flow, *cart.Store, *mockPlacer) {
	t.Helper()

	engine := pricing.NewEngine(pricing.FlatRate(100), pricing.PercentTax(1000))
	store := cart.NewStore(cart.NewMemoryPersistence(), engine)
	placer := new(mockPlacer)
	return checkout.NewFlow(store, placer, engine, testLogger()), store, placer
}

func fillCart(t *testing.T, store *cart.Store) {
	t.Helper()

	_, err := store.AddItem(context.Background(), cart.CartItem{
		ProductID:    1,
		Name:         "Shirt",
		Price:        1000,
		Quantity:     2,
		CountInStock: 5,
	})
	require.NoError(t, err)
}

func testAddress() cart.ShippingAddress {
	return cart.ShippingAddress{
		Address:    "221B Baker Street",
		City:       "London",
		PostalCode: "NW1 6XE",
		Country:    "UK",
	}
}

func TestCurrentStateProgression(t *testing.T) {
	flow, store, _ := setupFlow(t)
	ctx := context.Background()

	state, err := flow.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, checkout.StateEmptyCart, state)

	fillCart(t, store)

	state, err = flow.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, checkout.StateShippingPending, state)

	require.NoError(t, flow.SetShippingAddress(ctx, testAddress()))

	state, err = flow.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, checkout.StateShippingSet, state)

	require.NoError(t, flow.SetPaymentMethod(ctx, cart.PaymentMethodPayPal))

	state, err = flow.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, checkout.StatePaymentMethodSet, state)
}

func TestSetShippingAddressValidation(t *testing.T) {
	flow, store, _ := setupFlow(t)
	fillCart(t, store)

	addr := testAddress()
	addr.City = ""

	err := flow.SetShippingAddress(context.Background(), addr)

	var validation *checkout.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestSetPaymentMethodRequiresAddress(t *testing.T) {
	flow, store, _ := setupFlow(t)
	fillCart(t, store)

	err := flow.SetPaymentMethod(context.Background(), cart.PaymentMethodUPI)

	var validation *checkout.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestSetPaymentMethodRejectsUnknown(t *testing.T) {
	flow, store, _ := setupFlow(t)
	fillCart(t, store)

	err := flow.SetPaymentMethod(context.Background(), cart.PaymentMethod("Barter"))
	assert.ErrorIs(t, err, checkout.ErrInvalidPaymentMethod)
}

func TestPlaceOrder(t *testing.T) {
	flow, store, placer := setupFlow(t)
	ctx := context.Background()

	fillCart(t, store)
	require.NoError(t, flow.SetShippingAddress(ctx, testAddress()))
	require.NoError(t, flow.SetPaymentMethod(ctx, cart.PaymentMethodPayPal))

	placer.On("Create", mock.MatchedBy(func(payload *order.CreateOrderPayload) bool {
		return payload.ItemsPrice == 2000 &&
			payload.ShippingPrice == 100 &&
			payload.TaxPrice == 200 &&
			payload.TotalPrice == 2300 &&
			payload.PaymentMethod == "PayPal"
	})).Return(&order.Order{ID: 42, OrderNumber: "ORD-20260829-00042", TotalPrice: 2300}, nil)

	placed, err := flow.PlaceOrder(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(42), placed.ID)

	// The cart is cleared on success
	c, err := store.Get(ctx)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	state, err := flow.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, checkout.StateOrderPlaced, state)

	placer.AssertExpectations(t)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	flow, _, placer := setupFlow(t)

	_, err := flow.PlaceOrder(context.Background(), 1)

	var validation *checkout.ValidationError
	require.ErrorAs(t, err, &validation)
	placer.AssertNotCalled(t, "Create", mock.Anything)
}

func TestPlaceOrderWithoutAddress(t *testing.T) {
	flow, store, placer := setupFlow(t)
	fillCart(t, store)

	_, err := flow.PlaceOrder(context.Background(), 1)

	var validation *checkout.ValidationError
	require.ErrorAs(t, err, &validation)
	placer.AssertNotCalled(t, "Create", mock.Anything)
}

func TestPlaceOrderWithoutPaymentMethod(t *testing.T) {
	flow, store, placer := setupFlow(t)
	ctx := context.Background()

	fillCart(t, store)
	require.NoError(t, flow.SetShippingAddress(ctx, testAddress()))

	_, err := flow.PlaceOrder(ctx, 1)

	assert.ErrorIs(t, err, checkout.ErrInvalidPaymentMethod)
	placer.AssertNotCalled(t, "Create", mock.Anything)
}

func TestPlaceOrderFailureKeepsCart(t *testing.T) {
	flow, store, placer := setupFlow(t)
	ctx := context.Background()

	fillCart(t, store)
	require.NoError(t, flow.SetShippingAddress(ctx, testAddress()))
	require.NoError(t, flow.SetPaymentMethod(ctx, cart.PaymentMethodUPI))

	placer.On("Create", mock.Anything).Return(nil, assert.AnError)

	_, err := flow.PlaceOrder(ctx, 1)

	var failure *checkout.OrderCreationFailure
	require.ErrorAs(t, err, &failure)

	// Cart and progression survive the failed attempt
	c, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)

	state, err := flow.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, checkout.StatePaymentMethodSet, state)
}

func TestPlaceOrderDuplicateSubmission(t *testing.T) {
	flow, store, placer := setupFlow(t)
	ctx := context.Background()

	fillCart(t, store)
	require.NoError(t, flow.SetShippingAddress(ctx, testAddress()))
	require.NoError(t, flow.SetPaymentMethod(ctx, cart.PaymentMethodPayPal))

	started := make(chan struct{})
	release := make(chan struct{})
	placer.On("Create", mock.Anything).Run(func(args mock.Arguments) {
		close(started)
		<-release
	}).Return(&order.Order{ID: 42}, nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := flow.PlaceOrder(ctx, 1)
		done <- err
	}()

	<-started

	// The duplicate is rejected without reaching the placer
	_, err := flow.PlaceOrder(ctx, 1)
	assert.ErrorIs(t, err, checkout.ErrPlacementInFlight)

	close(release)
	require.NoError(t, <-done)

	placer.AssertNumberOfCalls(t, "Create", 1)
}

func TestStateTransitions(t *testing.T) {
	assert.True(t, checkout.StatePaymentMethodSet.CanTransition(checkout.StateOrderPlacing))
	assert.True(t, checkout.StateOrderPlacing.CanTransition(checkout.StateOrderPlaced))
	assert.False(t, checkout.StateEmptyCart.CanTransition(checkout.StateOrderPlacing))
	assert.False(t, checkout.StateShippingPending.CanTransition(checkout.StateOrderPlaced))
}
