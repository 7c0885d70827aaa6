package utils

import (
	"math"
	"strconv"
)

// FormatAmount formats a price or quantity the way the catalog prints numbers:
// shortest decimal form, no thousands separator, no trailing zeros.
// e.g., 7.41 -> "7.41", 2 -> "2", 1250.5 -> "1250.5"
func FormatAmount(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ""
	}
	if amount == 0 {
		// Avoid "-0"
		return "0"
	}
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
