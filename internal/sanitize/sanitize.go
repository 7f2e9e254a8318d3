// Package sanitize converts loosely-typed upstream strings into decimals
// with defined fallbacks. Bad input never produces an error here; it
// produces zero or nil depending on whether the caller needs to tell
// "missing" apart from "zero".
package sanitize

import (
	"strings"

	"github.com/shopspring/decimal"
)

func clean(s string) string {
	s = strings.TrimSpace(s)
	return strings.ReplaceAll(s, ",", "")
}

// DecimalOrZero parses s after trimming whitespace and stripping thousands
// separators. Empty or unparseable input yields zero.
func DecimalOrZero(s string) decimal.Decimal {
	cleaned := clean(s)
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// PtrDecimalOrZero is DecimalOrZero over an optional string.
func PtrDecimalOrZero(s *string) decimal.Decimal {
	if s == nil {
		return decimal.Zero
	}
	return DecimalOrZero(*s)
}

// DecimalOrNil parses like DecimalOrZero but reports failure as nil, for
// call sites where zero is a legitimate value distinct from "absent".
func DecimalOrNil(s *string) *decimal.Decimal {
	if s == nil {
		return nil
	}
	cleaned := clean(*s)
	if cleaned == "" {
		return nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil
	}
	return &d
}

// MinOrZero returns the smallest element, or zero for an empty slice.
func MinOrZero(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	min := values[0]
	for _, v := range values[1:] {
		if v.LessThan(min) {
			min = v
		}
	}
	return min
}

// MaxOrZero returns the largest element, or zero for an empty slice.
func MaxOrZero(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	max := values[0]
	for _, v := range values[1:] {
		if v.GreaterThan(max) {
			max = v
		}
	}
	return max
}
