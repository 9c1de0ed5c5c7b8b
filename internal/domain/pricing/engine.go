// internal/domain/pricing/engine.go
package pricing

// Line is one priced cart line: a unit price in minor currency units and a
// quantity. The engine is currency-agnostic; it never touches float math.
type Line struct {
	UnitPrice int64
	Quantity  int
}

// Totals represents the computed pricing breakdown for a cart
type Totals struct {
	ItemsPrice    int64 `json:"items_price"`
	ShippingPrice int64 `json:"shipping_price"`
	TaxPrice      int64 `json:"tax_price"`
	TotalPrice    int64 `json:"total_price"`
}

// ShippingPolicy derives the shipping cost from the items total
type ShippingPolicy func(itemsTotal int64) int64

// TaxPolicy derives the tax amount from the items total
type TaxPolicy func(itemsTotal int64) int64

// Engine computes cart totals from line items and injected policies.
// Recomputation is pure: identical inputs always yield identical totals.
type Engine struct {
	shipping ShippingPolicy
	tax      TaxPolicy
}

// NewEngine creates a pricing engine with the given shipping and tax policies
func NewEngine(shipping ShippingPolicy, tax TaxPolicy) *Engine {
	return &Engine{
		shipping: shipping,
		tax:      tax,
	}
}

// ComputeTotals calculates the full pricing breakdown for a set of lines.
// An empty set yields all-zero totals, including shipping and tax.
func (e *Engine) ComputeTotals(lines []Line) Totals {
	var totals Totals

	for _, line := range lines {
		totals.ItemsPrice += line.UnitPrice * int64(line.Quantity)
	}

	if len(lines) > 0 {
		totals.ShippingPrice = e.shipping(totals.ItemsPrice)
		totals.TaxPrice = e.tax(totals.ItemsPrice)
	}

	totals.TotalPrice = totals.ItemsPrice + totals.ShippingPrice + totals.TaxPrice
	return totals
}
