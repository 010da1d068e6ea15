// Package pricing is the pure pricing engine: it parses marketplace price
// strings, aggregates them into descriptive statistics with a tiered
// fallback, and turns the reconciled numbers into the two prices the store
// actually posts (walk-in store price and eBay sell-at price).
//
// Everything in this package is a pure function over its arguments: no I/O,
// no logging, no configuration reads. Marketplace clients and the database
// live elsewhere and hand this package plain values.
package pricing

import (
	"math"
	"strconv"
	"strings"
)

// Plausibility window for a parsed price. Anything outside is treated as
// absent, not as an error: values past the bounds are almost always a
// currency code, an item ID, or a cents value misread as dollars.
const (
	MinPlausiblePrice = 0.10
	MaxPlausiblePrice = 10000.00
)

// ParsePrice converts a raw marketplace price string ("1,234.50", "$12.00",
// "12,99", "12.00 USD") into a normalized two-digit amount. The second
// return is false when the input is empty, unparseable, or outside the
// plausibility window. Malformed input is never an error.
func ParsePrice(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return 0, false
	}

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		// "1,234.50" — comma is a thousands separator
		s = strings.ReplaceAll(s, ",", "")
	case hasComma:
		// Comma only: decimal separator iff exactly 1-2 digits follow the
		// last comma ("12,99"), thousands separator otherwise ("1,234").
		i := strings.LastIndex(s, ",")
		if tail := s[i+1:]; len(tail) >= 1 && len(tail) <= 2 {
			s = strings.ReplaceAll(s[:i], ",", "") + "." + tail
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if v < MinPlausiblePrice || v > MaxPlausiblePrice {
		return 0, false
	}
	return round2(v), true
}

// FormatPrice renders a price with exactly two fraction digits and no
// currency symbol. Presentation beyond that belongs to the UI layer.
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}

// round2 rounds half-up to two fraction digits.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
