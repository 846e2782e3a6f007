package money

import (
	"errors"
	"math"
	"strconv"
)

var ErrInvalidAmount = errors.New("invalid money amount")

// Check rejects NaN, infinite, negative and absurdly large rupee values.
func Check(rupees float64) error {
	if math.IsNaN(rupees) || math.IsInf(rupees, 0) {
		return ErrInvalidAmount
	}
	if rupees < 0 {
		return ErrInvalidAmount
	}
	if rupees > 9e15 {
		return ErrInvalidAmount
	}
	return nil
}

// Format renders a rupee amount with two decimals for export lines and
// reports, e.g. "1250.00".
func Format(rupees float64) string {
	return strconv.FormatFloat(rupees, 'f', 2, 64)
}
