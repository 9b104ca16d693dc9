package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency formats an amount as US dollars with thousands separators.
// Example: 1234.5 -> "$1,234.50"
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	formatted := amount.StringFixed(2)
	parts := strings.SplitN(formatted, ".", 2)
	integerPart, decimalPart := parts[0], parts[1]

	// Tambahkan pemisah ribuan
	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	return sign + "$" + strings.Join(groups, ",") + "." + decimalPart
}
