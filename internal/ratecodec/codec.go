// Package ratecodec converts between decimal rupee amounts and their
// canonical two-decimal string form, and derives the dependent bag-size
// rates from a 100kg base rate.
package ratecodec

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Derived holds the two bag-size rates computed from a 100kg base rate.
type Derived struct {
	KG75 string
	KG40 string
}

// TruncateTwoDecimals truncates x toward zero at the hundredths place and
// formats it with exactly two fractional digits. NaN and non-finite input
// yield "0.00".
func TruncateTwoDecimals(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "0.00"
	}
	return decimal.NewFromFloat(x).Truncate(2).StringFixed(2)
}

// DeriveFromBase computes the 75kg and 40kg rates from a 100kg base rate.
// The proportional share is taken as the float product and then truncated,
// so a derived rate is always exactly TruncateTwoDecimals(base * share).
func DeriveFromBase(base float64) Derived {
	return Derived{
		KG75: TruncateTwoDecimals(base * 0.75),
		KG40: TruncateTwoDecimals(base * 0.40),
	}
}

// DeriveRates returns the stored numeric forms of the derived rates for a
// base rate, truncated the same way the display strings are.
func DeriveRates(base float64) (kg75, kg40 float64) {
	d := DeriveFromBase(base)
	kg75, _ = strconv.ParseFloat(d.KG75, 64)
	kg40, _ = strconv.ParseFloat(d.KG40, 64)
	return kg75, kg40
}

// ParseDecimalOrNull parses a user-entered amount. Empty input and
// non-finite parses yield nil; sign and magnitude are preserved, with no
// clamping at parse time.
func ParseDecimalOrNull(raw string) *float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
