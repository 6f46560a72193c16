package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCOP renders a whole-peso amount with es-CO thousand grouping,
// e.g. 50000 -> "50.000". Fractional pesos are truncated; the platform
// deals in whole currency units.
func FormatCOP(amount decimal.Decimal) string {
	digits := amount.Truncate(0).Abs().String()

	var b strings.Builder
	if amount.IsNegative() {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte('.')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// ParseAmount extracts a whole-peso amount from user input, ignoring any
// grouping characters or currency decoration ("$ 50.000 COP" -> 50000).
// Returns false when the input carries no digits at all.
func ParseAmount(input string) (decimal.Decimal, bool) {
	var digits strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(digits.String())
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}
