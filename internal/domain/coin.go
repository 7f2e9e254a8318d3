package domain

import (
	"github.com/shopspring/decimal"
)

// Coin is a single listed asset as rendered in the coins list. Every field
// is non-nil after mapping; missing upstream data has already degraded to
// zero amounts or empty strings.
type Coin struct {
	ID           string
	Symbol       string
	Name         string
	IconURL      string
	CurrentPrice Price
	Change24h    Percentage
	Sparkline    []decimal.Decimal
}

// CoinDetails extends Coin with market figures. The string fields are
// pre-formatted for display; unparseable or absent source data renders as
// an empty string.
type CoinDetails struct {
	Coin
	MarketCap         string
	MarketCapRank     string
	Volume24h         string
	CirculatingSupply string
	AllTimeHigh       Price
	AllTimeHighDate   string
	ListedDate        string
}

// CoinChart is a historical price series in chronological order
// (oldest first). Min and Max are nil when the cleaned series is empty so
// range rendering can be suppressed rather than showing a zero range.
type CoinChart struct {
	Prices []Price
	Min    *decimal.Decimal
	Max    *decimal.Decimal
	Change Percentage
}

// SearchCoin is the minimal projection used for search-result rows.
type SearchCoin struct {
	ID      string
	Symbol  string
	Name    string
	IconURL string
}

// MarketStats aggregates global market figures.
type MarketStats struct {
	MarketCapChange24h Percentage
}

// ChartPeriod enumerates the selectable history windows.
type ChartPeriod string

const (
	Period1H  ChartPeriod = "1h"
	Period24H ChartPeriod = "24h"
	Period7D  ChartPeriod = "7d"
	Period30D ChartPeriod = "30d"
	Period3M  ChartPeriod = "3m"
	Period1Y  ChartPeriod = "1y"
	Period5Y  ChartPeriod = "5y"
)
