// Package pricing formats and normalizes Colombian peso amounts.
package pricing

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("es-CO"))

// Format renders a numeric price as a Colombian peso string with zero
// decimal places, e.g. 450000000 -> "$ 450.000.000".
func Format(v float64) string {
	if math.IsNaN(v) {
		return "Precio a convenir"
	}
	return printer.Sprintf("$ %v", number.Decimal(v, number.MaxFractionDigits(0)))
}

// Parse normalizes a price that may arrive as a formatted string
// ("$ 450.000.000", "450000000", "COP 120.000"). It extracts the digit
// runs and parses them as a single integer. Unparseable input yields NaN,
// the "unknown price" marker; callers must treat NaN as "do not exclude".
func Parse(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return math.NaN()
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return math.NaN()
	}
	return float64(n)
}
