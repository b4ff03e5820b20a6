package shared

import "github.com/shopspring/decimal"

// DecimalScale is the number of fractional digits stored for quantities and amounts
const DecimalScale = 4

// FitsScale reports whether d can be stored with DecimalScale fractional
// digits without rounding. Trailing zeros beyond the scale are accepted.
func FitsScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(DecimalScale))
}
