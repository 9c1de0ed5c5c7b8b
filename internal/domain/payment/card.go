// internal/domain/payment/card.go
package payment

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/your-org/storefront/internal/domain/order"
)

var expiryPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)

// BillingAddress is the card billing contact. It is only required when the
// payer does not bill to the shipping address.
type BillingAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// CardDetails is the credit card variant of a collection request.
type CardDetails struct {
	Number        string          `json:"number"`
	Expiry        string          `json:"expiry"`
	CVV           string          `json:"cvv"`
	HolderName    string          `json:"holder_name"`
	ShipToBilling bool            `json:"ship_to_billing"`
	Billing       *BillingAddress `json:"billing,omitempty"`
}

// CardCollector validates card input and produces a mock settlement result.
// No card network is contacted; the card number never leaves validation.
type CardCollector struct {
	details    CardDetails
	payerEmail string
}

// NewCardCollector creates the card collector for one collection attempt.
func NewCardCollector(details CardDetails, payerEmail string) *CardCollector {
	return &CardCollector{
		details:    details,
		payerEmail: payerEmail,
	}
}

// Collect validates the card details and settles immediately. Any
// validation failure aborts before a result exists.
func (c *CardCollector) Collect(ctx context.Context, o *order.Order) (*order.PaymentResult, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	payerEmail := c.payerEmail
	if c.details.Billing != nil && c.details.Billing.Email != "" {
		payerEmail = c.details.Billing.Email
	}

	return &order.PaymentResult{
		Reference:  fmt.Sprintf("CC_%d", now.UnixMilli()),
		Status:     order.ResultStatusCompleted,
		UpdateTime: &now,
		Source:     "CreditCard",
		PayerEmail: payerEmail,
	}, nil
}

func (c *CardCollector) validate() error {
	digits := stripSeparators(c.details.Number)
	if len(digits) < 16 {
		return &ValidationError{Field: "card number", Message: "must have at least 16 digits"}
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return &ValidationError{Field: "card number", Message: "must contain only digits"}
		}
	}
	if !expiryPattern.MatchString(c.details.Expiry) {
		return &ValidationError{Field: "expiry", Message: "must be in MM/YY format"}
	}
	if len(c.details.CVV) != 3 {
		return &ValidationError{Field: "cvv", Message: "must be 3 digits"}
	}
	for _, r := range c.details.CVV {
		if r < '0' || r > '9' {
			return &ValidationError{Field: "cvv", Message: "must be 3 digits"}
		}
	}
	if !c.details.ShipToBilling {
		if err := c.validateBilling(); err != nil {
			return err
		}
	}
	return nil
}

func (c *CardCollector) validateBilling() error {
	b := c.details.Billing
	if b == nil {
		return &ValidationError{Field: "billing address", Message: "required when not billing to the shipping address"}
	}
	required := map[string]string{
		"billing first name": b.FirstName,
		"billing last name":  b.LastName,
		"billing street":     b.Street,
		"billing city":       b.City,
		"billing state":      b.State,
		"billing zip":        b.Zip,
		"billing email":      b.Email,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return &ValidationError{Field: field, Message: "is required"}
		}
	}
	return nil
}

func stripSeparators(number string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, number)
}
