// internal/domain/pricing/engine_test.go
package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/your-org/storefront/internal/domain/pricing"
)

func TestComputeTotals(t *testing.T) {
	engine := pricing.NewEngine(pricing.FlatRate(100), func(itemsTotal int64) int64 {
		return 50
	})

	totals := engine.ComputeTotals([]pricing.Line{
		{UnitPrice: 1000, Quantity: 2},
	})

	assert.Equal(t, int64(2000), totals.ItemsPrice)
	assert.Equal(t, int64(100), totals.ShippingPrice)
	assert.Equal(t, int64(50), totals.TaxPrice)
	assert.Equal(t, int64(2150), totals.TotalPrice)
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	// Shipping and tax must not apply to an empty cart even when the
	// policies themselves would charge a flat amount.
	engine := pricing.NewEngine(pricing.FlatRate(100), pricing.PercentTax(1500))

	totals := engine.ComputeTotals(nil)

	assert.Equal(t, pricing.Totals{}, totals)
}

func TestComputeTotalsIsDeterministic(t *testing.T) {
	engine := pricing.NewEngine(pricing.FreeAboveThreshold(10000, 1000), pricing.PercentTax(1500))
	lines := []pricing.Line{
		{UnitPrice: 2599, Quantity: 3},
		{UnitPrice: 499, Quantity: 1},
	}

	first := engine.ComputeTotals(lines)
	second := engine.ComputeTotals(lines)

	assert.Equal(t, first, second)
	assert.Equal(t, first.ItemsPrice+first.ShippingPrice+first.TaxPrice, first.TotalPrice)
}

func TestFreeAboveThreshold(t *testing.T) {
	policy := pricing.FreeAboveThreshold(10000, 1000)

	assert.Equal(t, int64(1000), policy(9999))
	assert.Equal(t, int64(0), policy(10000))
	assert.Equal(t, int64(0), policy(25000))
}

func TestPercentTaxRoundsHalfUp(t *testing.T) {
	policy := pricing.PercentTax(1500) // 15%

	assert.Equal(t, int64(150), policy(1000))
	assert.Equal(t, int64(2), policy(10))   // 1.5 rounds up
	assert.Equal(t, int64(0), policy(3))    // 0.45 rounds down
	assert.Equal(t, int64(0), policy(0))
}

func TestConvertMinor(t *testing.T) {
	// 82.5 display units per settlement unit
	assert.Equal(t, int64(1), pricing.ConvertMinor(83, 82.5))
	assert.Equal(t, int64(100), pricing.ConvertMinor(8250, 82.5))
	assert.Equal(t, int64(0), pricing.ConvertMinor(0, 82.5))
}

func TestFixedRate(t *testing.T) {
	source := pricing.NewFixedRate("INR", "USD", 82.5)

	rate, err := source.Rate("INR", "USD")
	assert.NoError(t, err)
	assert.Equal(t, 82.5, rate)

	_, err = source.Rate("EUR", "USD")
	assert.Error(t, err)
}
