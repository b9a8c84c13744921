package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Monetary columns are DECIMAL(12,2); everything money-related stays in
// decimal.Decimal from scan to response so repeated additions never drift.

// ParseAmount parses user-supplied amount strings ("12,500.00", "12500")
// into a decimal with at most 2 fraction digits.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	if d.Exponent() < -2 {
		return decimal.Zero, fmt.Errorf("amount %q has more than 2 fraction digits", s)
	}
	return d, nil
}

// FormatMoney keeps consistent 2-digit formatting for currency fields.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// SumAmounts adds amounts exactly, skipping nil entries from empty
// payment slots.
func SumAmounts(amounts ...*decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		if a != nil {
			total = total.Add(*a)
		}
	}
	return total
}
