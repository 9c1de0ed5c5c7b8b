// internal/domain/cart/errors.go
package cart

import "fmt"

// StockConflictError is returned when a requested quantity exceeds the
// available stock. The offending mutation is rejected and the cart is left
// unchanged.
type StockConflictError struct {
	ProductID uint
	Requested int
	Available int
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}
