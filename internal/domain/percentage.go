package domain

import (
	"github.com/shopspring/decimal"

	"cointracker/internal/sanitize"
)

// Percentage wraps a percentage-point amount with its display string.
// Non-negative amounts render with a leading "+".
type Percentage struct {
	Amount  decimal.Decimal
	Display string
}

// NewPercentage builds a Percentage from an optional raw amount string.
// Missing or unparseable input degrades to zero ("+0.00%").
func NewPercentage(raw *string, f CurrencyFormat) Percentage {
	return NewPercentageFromDecimal(sanitize.PtrDecimalOrZero(raw), f)
}

// NewPercentageFromDecimal builds a Percentage from an already-parsed amount.
func NewPercentageFromDecimal(amount decimal.Decimal, f CurrencyFormat) Percentage {
	sign := "+"
	if amount.Sign() < 0 {
		sign = "-"
	}
	return Percentage{
		Amount:  amount,
		Display: sign + f.formatFixed(amount, f.fractionDigits()) + "%",
	}
}

// IsPositive reports amount strictly greater than zero.
func (p Percentage) IsPositive() bool {
	return p.Amount.Sign() > 0
}

// IsNegative reports amount strictly less than zero.
func (p Percentage) IsNegative() bool {
	return p.Amount.Sign() < 0
}
