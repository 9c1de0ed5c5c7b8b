// internal/domain/pricing/policy.go
package pricing

// FlatRate charges the same shipping cost regardless of the items total
func FlatRate(rate int64) ShippingPolicy {
	return func(itemsTotal int64) int64 {
		return rate
	}
}

// FreeAboveThreshold charges a flat rate below the threshold and nothing at
// or above it
func FreeAboveThreshold(threshold, rate int64) ShippingPolicy {
	return func(itemsTotal int64) int64 {
		if itemsTotal >= threshold {
			return 0
		}
		return rate
	}
}

// PercentTax taxes the items total at a rate given in basis points,
// rounding half up
func PercentTax(bps int64) TaxPolicy {
	return func(itemsTotal int64) int64 {
		return (itemsTotal*bps + 5000) / 10000
	}
}

// NoTax charges no tax
func NoTax() TaxPolicy {
	return func(itemsTotal int64) int64 {
		return 0
	}
}
