// internal/domain/payment/upi.go
package payment

import (
	"context"
	"strings"
	"time"

	"github.com/your-org/storefront/internal/domain/order"
)

// UpiDetails is the UPI variant of a collection request. The transaction
// reference is the payer's proof of transfer and becomes the settlement
// reference as-is.
type UpiDetails struct {
	UpiID          string `json:"upi_id"`
	TransactionRef string `json:"transaction_ref"`
}

// UpiCollector validates UPI input and produces a mock settlement result.
type UpiCollector struct {
	details    UpiDetails
	payerEmail string
}

// NewUpiCollector creates the UPI collector for one collection attempt.
func NewUpiCollector(details UpiDetails, payerEmail string) *UpiCollector {
	return &UpiCollector{
		details:    details,
		payerEmail: payerEmail,
	}
}

// Collect validates the UPI details and settles immediately.
func (u *UpiCollector) Collect(ctx context.Context, o *order.Order) (*order.PaymentResult, error) {
	if err := u.validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	return &order.PaymentResult{
		Reference:  strings.TrimSpace(u.details.TransactionRef),
		Status:     order.ResultStatusCompleted,
		UpdateTime: &now,
		Source:     "UPI",
		PayerEmail: u.payerEmail,
	}, nil
}

func (u *UpiCollector) validate() error {
	id := strings.TrimSpace(u.details.UpiID)
	if id == "" {
		return &ValidationError{Field: "upi id", Message: "is required"}
	}
	if !strings.Contains(id, "@") {
		return &ValidationError{Field: "upi id", Message: "must contain the '@' separator"}
	}
	if strings.TrimSpace(u.details.TransactionRef) == "" {
		return &ValidationError{Field: "transaction reference", Message: "is required"}
	}
	return nil
}
