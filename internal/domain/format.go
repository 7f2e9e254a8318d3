package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyFormat is the process-wide display configuration for monetary and
// percentage values. It is built once from config at startup and passed
// explicitly into value-type construction; there is no ambient default.
type CurrencyFormat struct {
	Symbol         string
	ThousandsSep   string
	DecimalSep     string
	FractionDigits int
}

// DefaultCurrencyFormat returns USD formatting with en-US separators.
func DefaultCurrencyFormat() CurrencyFormat {
	return CurrencyFormat{
		Symbol:         "$",
		ThousandsSep:   ",",
		DecimalSep:     ".",
		FractionDigits: 2,
	}
}

func (f CurrencyFormat) fractionDigits() int {
	if f.FractionDigits <= 0 {
		return 2
	}
	return f.FractionDigits
}

// groupDigits inserts the thousands separator into a bare digit string.
func groupDigits(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// formatFixed renders the absolute value of d with grouping and exactly
// places fraction digits.
func (f CurrencyFormat) formatFixed(d decimal.Decimal, places int) string {
	fixed := d.Abs().StringFixed(int32(places))
	intPart := fixed
	fracPart := ""
	if idx := strings.IndexByte(fixed, '.'); idx >= 0 {
		intPart = fixed[:idx]
		fracPart = fixed[idx+1:]
	}
	grouped := groupDigits(intPart, f.ThousandsSep)
	if fracPart == "" {
		return grouped
	}
	sep := f.DecimalSep
	if sep == "" {
		sep = "."
	}
	return grouped + sep + fracPart
}

// extendedSubUnitDigits is the precision used for amounts below one whole
// unit, so small fractional prices do not collapse to "0.00".
const extendedSubUnitDigits = 8

// formatAmount renders the absolute value of d, widening the fraction for
// sub-unit magnitudes and trimming the widened tail back down to at least
// the configured fraction digits.
func (f CurrencyFormat) formatAmount(d decimal.Decimal) string {
	places := f.fractionDigits()
	abs := d.Abs()
	if abs.IsZero() || abs.GreaterThanOrEqual(decimal.New(1, 0)) {
		return f.formatFixed(abs, places)
	}

	wide := f.formatFixed(abs, extendedSubUnitDigits)
	sep := f.DecimalSep
	if sep == "" {
		sep = "."
	}
	idx := strings.LastIndex(wide, sep)
	if idx < 0 {
		return wide
	}
	frac := strings.TrimRight(wide[idx+len(sep):], "0")
	for len(frac) < places {
		frac += "0"
	}
	return wide[:idx] + sep + frac
}

// GroupedInteger renders d with grouping and no fraction digits. Used for
// large magnitudes such as volume and circulating supply.
func (f CurrencyFormat) GroupedInteger(d decimal.Decimal) string {
	out := f.formatFixed(d, 0)
	if d.Sign() < 0 {
		return "-" + out
	}
	return out
}
