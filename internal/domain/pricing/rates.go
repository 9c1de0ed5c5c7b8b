// internal/domain/pricing/rates.go
package pricing

import (
	"fmt"
	"math"
)

// RateSource supplies conversion rates between a display currency and a
// settlement currency. The rest of the code never hard-codes a rate, so a
// live-rate source can be swapped in without touching the engine or the
// payment collectors.
type RateSource interface {
	// Rate returns how many units of the display currency one unit of the
	// settlement currency buys.
	Rate(display, settlement string) (float64, error)
}

// FixedRate is a RateSource backed by a single constant rate pair
type FixedRate struct {
	Display    string
	Settlement string
	Value      float64
}

// NewFixedRate creates a fixed-rate source
func NewFixedRate(display, settlement string, value float64) *FixedRate {
	return &FixedRate{
		Display:    display,
		Settlement: settlement,
		Value:      value,
	}
}

// Rate returns the fixed rate for the configured currency pair
func (f *FixedRate) Rate(display, settlement string) (float64, error) {
	if display != f.Display || settlement != f.Settlement {
		return 0, fmt.Errorf("no rate configured for %s/%s", display, settlement)
	}
	if f.Value <= 0 {
		return 0, fmt.Errorf("invalid rate %f for %s/%s", f.Value, display, settlement)
	}
	return f.Value, nil
}

// ConvertMinor converts an amount of display-currency minor units into
// settlement-currency minor units at the given rate, rounding half up.
func ConvertMinor(amount int64, rate float64) int64 {
	return int64(math.Round(float64(amount) / rate))
}
