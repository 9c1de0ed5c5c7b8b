// internal/domain/payment/upi_test.go
package payment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/payment"
)

func TestUpiCollect(t *testing.T) {
	details := payment.UpiDetails{UpiID: "alice@upi", TransactionRef: "TXN123"}
	collector := payment.NewUpiCollector(details, "alice@example.com")

	result, err := collector.Collect(context.Background(), testOrder())
	require.NoError(t, err)

	assert.Equal(t, "TXN123", result.Reference)
	assert.Equal(t, order.ResultStatusCompleted, result.Status)
	assert.Equal(t, "UPI", result.Source)
	assert.Equal(t, "alice@example.com", result.PayerEmail)
}

func TestUpiCollectRejectsIDWithoutSeparator(t *testing.T) {
	details := payment.UpiDetails{UpiID: "aliceupi", TransactionRef: "TXN123"}

	result, err := payment.NewUpiCollector(details, "").Collect(context.Background(), testOrder())

	var validation *payment.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Nil(t, result)
}

func TestUpiCollectRejectsEmptyTransactionRef(t *testing.T) {
	details := payment.UpiDetails{UpiID: "alice@upi", TransactionRef: "  "}

	result, err := payment.NewUpiCollector(details, "").Collect(context.Background(), testOrder())

	var validation *payment.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Nil(t, result)
}
