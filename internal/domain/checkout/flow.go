// internal/domain/checkout/flow.go
package checkout

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/pricing"
)

// OrderPlacer finalizes a checkout into a persisted order. order.Service
// is the production implementation.
type OrderPlacer interface {
	Create(payload *order.CreateOrderPayload) (*order.Order, error)
}

// Flow drives the checkout progression for one cart: shipping address,
// then payment method, then a single guarded order placement.
type Flow struct {
	mu       sync.Mutex
	carts    *cart.Store
	placer   OrderPlacer
	engine   *pricing.Engine
	validate *validator.Validate
	log      *logrus.Logger
	inFlight bool
	placedID uint
}

// NewFlow creates a checkout flow over the given cart store and placer.
func NewFlow(carts *cart.Store, placer OrderPlacer, engine *pricing.Engine, log *logrus.Logger) *Flow {
	return &Flow{
		carts:    carts,
		placer:   placer,
		engine:   engine,
		validate: validator.New(),
		log:      log,
	}
}

// Current derives the checkout state from the cart contents and the
// placement flags.
func (f *Flow) Current(ctx context.Context) (State, error) {
	f.mu.Lock()
	inFlight := f.inFlight
	placed := f.placedID != 0
	f.mu.Unlock()

	if inFlight {
		return StateOrderPlacing, nil
	}

	c, err := f.carts.Get(ctx)
	if err != nil {
		return "", err
	}
	return stateOf(c, placed), nil
}

func stateOf(c *cart.Cart, placed bool) State {
	switch {
	case placed && c.IsEmpty():
		return StateOrderPlaced
	case c.IsEmpty():
		return StateEmptyCart
	case c.ShippingAddress == nil:
		return StateShippingPending
	case c.PaymentMethod == "":
		return StateShippingSet
	default:
		return StatePaymentMethodSet
	}
}

// SetShippingAddress validates and records the shipping address. Setting
// the address again later replaces the previous one.
func (f *Flow) SetShippingAddress(ctx context.Context, addr cart.ShippingAddress) error {
	if err := f.validate.Struct(addr); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return &ValidationError{Field: errs[0].Field(), Message: "is required"}
		}
		return &ValidationError{Field: "shipping address", Message: err.Error()}
	}
	_, err := f.carts.SetShippingAddress(ctx, addr)
	return err
}

// SetPaymentMethod records the chosen payment method. The shipping address
// must already be set.
func (f *Flow) SetPaymentMethod(ctx context.Context, method cart.PaymentMethod) error {
	if !method.Valid() {
		return ErrInvalidPaymentMethod
	}

	c, err := f.carts.Get(ctx)
	if err != nil {
		return err
	}
	if c.ShippingAddress == nil {
		return &ValidationError{Field: "shipping address", Message: "must be set before choosing a payment method"}
	}
	_, err = f.carts.SetPaymentMethod(ctx, method)
	return err
}

// PlaceOrder finalizes the checkout. Exactly one placement may run at a
// time: a call arriving while another is in flight returns
// ErrPlacementInFlight without touching the cart or the placer. On success
// the cart is cleared; on failure it is left intact for a retry.
func (f *Flow) PlaceOrder(ctx context.Context, userID uint) (*order.Order, error) {
	f.mu.Lock()
	if f.inFlight {
		f.mu.Unlock()
		return nil, ErrPlacementInFlight
	}
	f.inFlight = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight = false
		f.mu.Unlock()
	}()

	c, err := f.carts.Get(ctx)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, &ValidationError{Field: "cart", Message: "is empty"}
	}
	if c.ShippingAddress == nil {
		return nil, &ValidationError{Field: "shipping address", Message: "is required"}
	}
	if !c.PaymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}

	// Totals are recomputed from the lines right here so the payload can
	// never carry a stale snapshot.
	totals := f.engine.ComputeTotals(c.Lines())

	items := make([]order.OrderItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, order.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Brand:     item.Brand,
			Image:     item.Image,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	payload := &order.CreateOrderPayload{
		UserID: userID,
		Items:  items,
		ShippingAddress: order.ShippingAddress{
			Address:    c.ShippingAddress.Address,
			City:       c.ShippingAddress.City,
			PostalCode: c.ShippingAddress.PostalCode,
			Country:    c.ShippingAddress.Country,
		},
		PaymentMethod: string(c.PaymentMethod),
		ItemsPrice:    totals.ItemsPrice,
		ShippingPrice: totals.ShippingPrice,
		TaxPrice:      totals.TaxPrice,
		TotalPrice:    totals.TotalPrice,
	}

	placed, err := f.placer.Create(payload)
	if err != nil {
		f.log.WithError(err).Error("Order placement failed")
		return nil, &OrderCreationFailure{Err: err}
	}

	if err := f.carts.Clear(ctx); err != nil {
		// The order exists; a stale cart is recoverable on the next load.
		f.log.WithError(err).Warn("Failed to clear cart after placement")
	}

	f.mu.Lock()
	f.placedID = placed.ID
	f.mu.Unlock()

	f.log.WithFields(logrus.Fields{
		"order_id":     placed.ID,
		"order_number": placed.OrderNumber,
		"total_price":  placed.TotalPrice,
	}).Info("Order placed")

	return placed, nil
}
