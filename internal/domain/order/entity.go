// internal/domain/order/entity.go
package order

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Status represents where an order sits in its lifecycle
type Status string

const (
	StatusCreated   Status = "created"
	StatusPaid      Status = "paid"
	StatusDelivered Status = "delivered"
)

// ResultStatusCompleted is the only payment result status order finalization
// accepts. It matches the completed-state token payment providers report.
const ResultStatusCompleted = "COMPLETED"

// Order represents a placed order. Items, shipping address and price fields
// are immutable snapshots taken at placement time; only the payment and
// delivery fields mutate afterwards.
type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;size:50" json:"order_number"`
	UserID      uint   `gorm:"index" json:"user_id"`

	PaymentMethod string `gorm:"not null;size:50" json:"payment_method"`

	// Financial snapshot, minor currency units
	ItemsPrice    int64 `gorm:"not null" json:"items_price"`
	ShippingPrice int64 `gorm:"default:0" json:"shipping_price"`
	TaxPrice      int64 `gorm:"default:0" json:"tax_price"`
	TotalPrice    int64 `gorm:"not null" json:"total_price"`

	// Destination snapshot
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`

	// Payment state
	IsPaid        bool          `gorm:"default:false" json:"is_paid"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
	PaymentResult PaymentResult `gorm:"embedded;embeddedPrefix:payment_" json:"payment_result,omitempty"`

	// Delivery state
	IsDelivered bool       `gorm:"default:false" json:"is_delivered"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem is an immutable snapshot of one cart line at placement time
type OrderItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	ProductID  uint      `gorm:"not null;index" json:"product_id"`
	Name       string    `gorm:"not null;size:255" json:"name"`
	Brand      string    `gorm:"size:100" json:"brand"`
	Image      string    `gorm:"size:500" json:"image"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	Price      int64     `gorm:"not null" json:"price"`       // Price per unit
	TotalPrice int64     `gorm:"not null" json:"total_price"` // Quantity * Price
	CreatedAt  time.Time `json:"created_at"`
}

// ShippingAddress is the destination snapshot embedded in an order
type ShippingAddress struct {
	Address    string `gorm:"size:255" json:"address"`
	City       string `gorm:"size:100" json:"city"`
	PostalCode string `gorm:"size:20" json:"postal_code"`
	Country    string `gorm:"size:100" json:"country"`
}

// PaymentResult is the attestation produced by the payment adapter. The core
// treats it as opaque; verifying its authenticity is the backend's concern.
type PaymentResult struct {
	Reference  string     `gorm:"size:255" json:"reference,omitempty"`
	Status     string     `gorm:"size:50" json:"status,omitempty"`
	UpdateTime *time.Time `json:"update_time,omitempty"`
	Source     string     `gorm:"size:50" json:"source,omitempty"`
	PayerEmail string     `gorm:"size:255" json:"payer_email,omitempty"`
}

// Completed reports whether the result carries the completed-state token
func (r PaymentResult) Completed() bool {
	return r.Status == ResultStatusCompleted
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

// Status derives the lifecycle state from the payment and delivery flags
func (o *Order) Status() Status {
	switch {
	case o.IsDelivered:
		return StatusDelivered
	case o.IsPaid:
		return StatusPaid
	default:
		return StatusCreated
	}
}

// validTransitions is the lifecycle table: delivery is only reachable
// through payment.
var validTransitions = map[Status][]Status{
	StatusCreated: {StatusPaid},
	StatusPaid:    {StatusDelivered},
}

// CanTransition reports whether moving from the order's current state to the
// target state is allowed
func (o *Order) CanTransition(to Status) bool {
	for _, s := range validTransitions[o.Status()] {
		if s == to {
			return true
		}
	}
	return false
}

// GenerateOrderNumber formats the public order number for an order ID.
// Format: ORD-YYYYMMDD-XXXXX
func GenerateOrderNumber(orderID uint, at time.Time) string {
	return fmt.Sprintf("ORD-%s-%05d", at.Format("20060102"), orderID)
}
