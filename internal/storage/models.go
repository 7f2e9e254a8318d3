package storage

import (
	"time"

	"github.com/shopspring/decimal"
)

// CoinRow is a persisted coin snapshot. Rows are written as a full
// replacement set on each successful refresh; there is no partial patching.
// Position preserves the upstream ordering across the round trip.
type CoinRow struct {
	Position  int
	ID        string
	Symbol    string
	Name      string
	IconURL   string
	Price     decimal.Decimal
	Change    decimal.Decimal
	Sparkline []decimal.Decimal
	UpdatedAt time.Time
}
