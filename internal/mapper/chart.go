package mapper

import (
	"github.com/shopspring/decimal"

	"cointracker/internal/domain"
	"cointracker/internal/fetcher"
	"cointracker/internal/sanitize"
)

// Chart maps a price-history response. The API returns the series
// newest-first; the domain model wants oldest-first for left-to-right
// rendering, so the cleaned series is reversed. Absent, unparseable, and
// negative prices are dropped before reversal. Min and Max stay nil for an
// empty cleaned series so the caller can suppress range rendering.
func Chart(res *fetcher.HistoryResponse, f domain.CurrencyFormat) domain.CoinChart {
	var change *string
	var entries []*fetcher.HistoryEntryDTO
	if res != nil && res.Data != nil {
		change = res.Data.Change
		entries = res.Data.History
	}

	cleaned := make([]decimal.Decimal, 0, len(entries))
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		d := sanitize.DecimalOrNil(entry.Price)
		if d == nil || d.Sign() < 0 {
			continue
		}
		cleaned = append(cleaned, *d)
	}

	for i, j := 0, len(cleaned)-1; i < j; i, j = i+1, j-1 {
		cleaned[i], cleaned[j] = cleaned[j], cleaned[i]
	}

	prices := make([]domain.Price, len(cleaned))
	for i, d := range cleaned {
		prices[i] = domain.NewPriceFromDecimal(d, f)
	}

	var min, max *decimal.Decimal
	if len(cleaned) > 0 {
		lo := sanitize.MinOrZero(cleaned)
		hi := sanitize.MaxOrZero(cleaned)
		min, max = &lo, &hi
	}

	return domain.CoinChart{
		Prices: prices,
		Min:    min,
		Max:    max,
		Change: domain.NewPercentage(change, f),
	}
}
