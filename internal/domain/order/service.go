// internal/domain/order/service.go
package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/storefront/internal/domain/product"
	"gorm.io/gorm"
)

// ErrNotPaid rejects a delivery transition on an order that has not been
// paid yet.
var ErrNotPaid = errors.New("cannot be delivered before it is paid")

// CreateOrderPayload is the immutable order-creation payload the checkout
// controller constructs from the cart. Totals arrive precomputed; the
// service cross-checks them before anything is written.
type CreateOrderPayload struct {
	UserID          uint            `json:"user_id"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
	ItemsPrice      int64           `json:"items_price"`
	ShippingPrice   int64           `json:"shipping_price"`
	TaxPrice        int64           `json:"tax_price"`
	TotalPrice      int64           `json:"total_price"`
}

// Service handles order business logic
type Service struct {
	db      *gorm.DB
	catalog product.Catalog
}

// NewService creates a new order service
func NewService(db *gorm.DB, catalog product.Catalog) *Service {
	return &Service{
		db:      db,
		catalog: catalog,
	}
}

// Create creates an order from the payload, snapshotting items and
// reserving catalog stock in one transaction
func (s *Service) Create(payload *CreateOrderPayload) (*Order, error) {
	if len(payload.Items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}

	// Cross-check the precomputed totals against the item snapshot
	var itemsPrice int64
	for _, item := range payload.Items {
		itemsPrice += item.Price * int64(item.Quantity)
	}
	if itemsPrice != payload.ItemsPrice {
		return nil, fmt.Errorf("items price mismatch: payload says %d, items sum to %d",
			payload.ItemsPrice, itemsPrice)
	}
	if payload.TotalPrice != payload.ItemsPrice+payload.ShippingPrice+payload.TaxPrice {
		return nil, fmt.Errorf("total price mismatch")
	}

	o := Order{
		UserID:          payload.UserID,
		PaymentMethod:   payload.PaymentMethod,
		ItemsPrice:      payload.ItemsPrice,
		ShippingPrice:   payload.ShippingPrice,
		TaxPrice:        payload.TaxPrice,
		TotalPrice:      payload.TotalPrice,
		ShippingAddress: payload.ShippingAddress,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&o).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		o.OrderNumber = GenerateOrderNumber(o.ID, time.Now().UTC())
		if err := tx.Model(&o).Update("order_number", o.OrderNumber).Error; err != nil {
			return fmt.Errorf("failed to update order number: %w", err)
		}

		for _, item := range payload.Items {
			orderItem := OrderItem{
				OrderID:    o.ID,
				ProductID:  item.ProductID,
				Name:       item.Name,
				Brand:      item.Brand,
				Image:      item.Image,
				Quantity:   item.Quantity,
				Price:      item.Price,
				TotalPrice: item.Price * int64(item.Quantity),
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}

			// Reserve stock for the snapshot
			if err := s.catalog.DecrementStock(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(o.ID)
}

// Get retrieves a single order by ID
func (s *Service) Get(id uint) (*Order, error) {
	var o Order
	result := s.db.Preload("Items").Where("id = ?", id).First(&o)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}
	return &o, nil
}

// ListUserOrders retrieves all orders placed by a user, newest first
func (s *Service) ListUserOrders(userID uint) ([]Order, error) {
	var orders []Order
	err := s.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return orders, nil
}

// Pay applies an accepted payment result to an order. A result without the
// completed-state token is rejected. Paying an already-paid order is a
// no-op: the order is returned unchanged with the first result retained.
func (s *Service) Pay(id uint, result PaymentResult) (*Order, error) {
	o, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if o.IsPaid {
		return o, nil
	}

	if !result.Completed() {
		return nil, fmt.Errorf("payment result status %q is not %s", result.Status, ResultStatusCompleted)
	}
	if !o.CanTransition(StatusPaid) {
		return nil, fmt.Errorf("order %s cannot move to %s from %s", o.OrderNumber, StatusPaid, o.Status())
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"is_paid":             true,
		"paid_at":             now,
		"payment_reference":   result.Reference,
		"payment_status":      result.Status,
		"payment_update_time": result.UpdateTime,
		"payment_source":      result.Source,
		"payment_payer_email": result.PayerEmail,
	}
	if err := s.db.Model(o).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to mark order as paid: %w", err)
	}

	return s.Get(id)
}

// Deliver marks a paid order as delivered. Delivery of an unpaid order is
// rejected; the caller is responsible for the administrative capability
// check. Delivering an already-delivered order is a no-op.
func (s *Service) Deliver(id uint) (*Order, error) {
	o, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if o.IsDelivered {
		return o, nil
	}

	if !o.CanTransition(StatusDelivered) {
		return nil, fmt.Errorf("order %s: %w", o.OrderNumber, ErrNotPaid)
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"is_delivered": true,
		"delivered_at": now,
	}
	if err := s.db.Model(o).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to mark order as delivered: %w", err)
	}

	return s.Get(id)
}
