// internal/domain/payment/card_test.go
package payment_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/payment"
)

func validCard() payment.CardDetails {
	return payment.CardDetails{
		Number:        "4111 1111 1111 1111",
		Expiry:        "12/29",
		CVV:           "123",
		HolderName:    "Alice Example",
		ShipToBilling: true,
	}
}

func testOrder() *order.Order {
	return &order.Order{ID: 1, PaymentMethod: "CreditCard", TotalPrice: 2400}
}

func TestCardCollect(t *testing.T) {
	collector := payment.NewCardCollector(validCard(), "alice@example.com")

	result, err := collector.Collect(context.Background(), testOrder())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.Reference, "CC_"))
	assert.Equal(t, order.ResultStatusCompleted, result.Status)
	assert.Equal(t, "CreditCard", result.Source)
	assert.Equal(t, "alice@example.com", result.PayerEmail)
	assert.NotNil(t, result.UpdateTime)
}

func TestCardCollectStripsSeparators(t *testing.T) {
	card := validCard()
	card.Number = "4111-1111-1111-1111"

	_, err := payment.NewCardCollector(card, "").Collect(context.Background(), testOrder())
	assert.NoError(t, err)
}

func TestCardCollectRejectsShortNumber(t *testing.T) {
	card := validCard()
	card.Number = "4111 1111 1111"

	result, err := payment.NewCardCollector(card, "").Collect(context.Background(), testOrder())

	var validation *payment.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Nil(t, result)
}

func TestCardCollectRejectsBadExpiry(t *testing.T) {
	for _, expiry := range []string{"1229", "12/2029", "13", "", "ab/cd"} {
		card := validCard()
		card.Expiry = expiry

		result, err := payment.NewCardCollector(card, "").Collect(context.Background(), testOrder())

		var validation *payment.ValidationError
		require.ErrorAs(t, err, &validation, "expiry %q", expiry)
		assert.Nil(t, result)
	}
}

func TestCardCollectRejectsBadCVV(t *testing.T) {
	for _, cvv := range []string{"12", "1234", "", "ab1"} {
		card := validCard()
		card.CVV = cvv

		result, err := payment.NewCardCollector(card, "").Collect(context.Background(), testOrder())

		var validation *payment.ValidationError
		require.ErrorAs(t, err, &validation, "cvv %q", cvv)
		assert.Nil(t, result)
	}
}

func TestCardCollectBillingRequiredWhenNotShipToBilling(t *testing.T) {
	card := validCard()
	card.ShipToBilling = false
	card.Billing = nil

	_, err := payment.NewCardCollector(card, "").Collect(context.Background(), testOrder())

	var validation *payment.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestCardCollectWithBillingAddress(t *testing.T) {
	card := validCard()
	card.ShipToBilling = false
	card.Billing = &payment.BillingAddress{
		FirstName: "Alice",
		LastName:  "Example",
		Street:    "1 Main St",
		City:      "Springfield",
		State:     "IL",
		Zip:       "62704",
		Email:     "billing@example.com",
	}

	result, err := payment.NewCardCollector(card, "alice@example.com").Collect(context.Background(), testOrder())
	require.NoError(t, err)

	// The billing contact wins over the payer when present
	assert.Equal(t, "billing@example.com", result.PayerEmail)
}

func TestCardCollectRejectsIncompleteBilling(t *testing.T) {
	card := validCard()
	card.ShipToBilling = false
	card.Billing = &payment.BillingAddress{FirstName: "Alice"}

	result, err := payment.NewCardCollector(card, "").Collect(context.Background(), testOrder())

	var validation *payment.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Nil(t, result)
}
