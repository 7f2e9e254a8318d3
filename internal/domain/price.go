package domain

import (
	"github.com/shopspring/decimal"

	"cointracker/internal/sanitize"
)

// unavailableMarker is rendered after the currency symbol when a call site
// opts into the explicit "no price" display instead of a zero amount.
const unavailableMarker = " --"

// Price wraps a sanitized decimal amount together with its display string.
// The display string is computed eagerly at construction and is a pure
// function of the amount and the CurrencyFormat.
type Price struct {
	Amount  decimal.Decimal
	Display string
}

// NewPrice builds a Price from an optional raw amount string. Missing or
// unparseable input degrades to a zero amount with a normally formatted
// display ("$0.00").
func NewPrice(raw *string, f CurrencyFormat) Price {
	return NewPriceFromDecimal(sanitize.PtrDecimalOrZero(raw), f)
}

// NewPriceOrUnavailable builds a Price whose display marks missing or
// unparseable input as unavailable ("$ --") while still carrying a zero
// amount. Some screens distinguish "no price" from "price of zero"; which
// constructor applies is fixed per call site.
func NewPriceOrUnavailable(raw *string, f CurrencyFormat) Price {
	parsed := sanitize.DecimalOrNil(raw)
	if parsed == nil {
		return Price{Amount: decimal.Zero, Display: f.Symbol + unavailableMarker}
	}
	return NewPriceFromDecimal(*parsed, f)
}

// NewPriceFromDecimal builds a Price from an already-parsed amount.
func NewPriceFromDecimal(amount decimal.Decimal, f CurrencyFormat) Price {
	display := f.Symbol + f.formatAmount(amount)
	if amount.Sign() < 0 {
		display = "-" + display
	}
	return Price{Amount: amount, Display: display}
}

// IsZero reports whether the wrapped amount is exactly zero.
func (p Price) IsZero() bool {
	return p.Amount.IsZero()
}
