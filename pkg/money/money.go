// Package money holds the display formatting helpers for catalog prices.
package money

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatPrice renders a decimal amount as a US-dollar display string,
// e.g. 1234.5 -> "$1,234.50".
func FormatPrice(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	fixed := amount.Abs().StringFixed(2)

	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if negative {
		b.WriteString("-")
	}
	b.WriteString("$")
	b.WriteString(groupThousands(whole))
	b.WriteString(".")
	b.WriteString(frac)
	return b.String()
}

// FormatRating renders an average rating with one decimal, e.g. 4.666 -> "4.7".
func FormatRating(rating float64) string {
	return strconv.FormatFloat(rating, 'f', 1, 64)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
