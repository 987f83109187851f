// Package format renders currency and ratio values for reasons and reports.
package format

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// NotAvailable is rendered in place of a NaN or infinite value.
const NotAvailable = "n/a"

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	if !finite(amount) {
		return NotAvailable
	}
	return signed(decimal.NewFromFloat(amount), 2)
}

// WholeCurrency returns a currency string rounded to whole dollars (e.g., "$50,000").
func WholeCurrency(amount float64) string {
	if !finite(amount) {
		return NotAvailable
	}
	return signed(decimal.NewFromFloat(amount), 0)
}

// Percent renders a ratio with one decimal place (e.g., "36.8%").
func Percent(ratio float64) string {
	if !finite(ratio) {
		return NotAvailable
	}
	return decimal.NewFromFloat(ratio).StringFixed(1) + "%"
}

// Threshold renders a policy threshold without trailing zeros (e.g., "36%", "12.5%").
func Threshold(pct float64) string {
	if !finite(pct) {
		return NotAvailable
	}
	return decimal.NewFromFloat(pct).String() + "%"
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func signed(d decimal.Decimal, places int32) string {
	if d.Round(places).IsNegative() {
		return "-$" + groupThousands(d.Abs().StringFixed(places))
	}
	return "$" + groupThousands(d.StringFixed(places))
}

func groupThousands(formatted string) string {
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	if len(parts) == 2 {
		return intPart + "." + parts[1]
	}
	return intPart
}
