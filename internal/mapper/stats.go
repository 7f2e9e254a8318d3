package mapper

import (
	"cointracker/internal/domain"
	"cointracker/internal/fetcher"
)

// Stats maps the global-stats response. The single field of interest sits
// behind an optional envelope; absence degrades to a zero percentage.
func Stats(res *fetcher.StatsResponse, f domain.CurrencyFormat) domain.MarketStats {
	var change *string
	if res != nil && res.Data != nil {
		change = res.Data.MarketCapChange
	}
	return domain.MarketStats{
		MarketCapChange24h: domain.NewPercentage(change, f),
	}
}
