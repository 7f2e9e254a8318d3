package fetcher

// Wire DTOs for the pricing API. Every level of nesting is optional on the
// wire, so every field is a pointer (or nilable slice); nothing here is
// trusted until it has been through a mapper.

// CoinsResponse is the envelope for list-shaped coin resources.
type CoinsResponse struct {
	Status *string    `json:"status"`
	Data   *CoinsData `json:"data"`
}

// CoinsData carries the coins list plus optional aggregate stats.
type CoinsData struct {
	Stats *ListStats `json:"stats"`
	Coins []*CoinDTO `json:"coins"`
}

// ListStats carries list-level aggregates.
type ListStats struct {
	Total *int64 `json:"total"`
}

// CoinDTO is a single coin row as returned by the list endpoints.
type CoinDTO struct {
	UUID      *string   `json:"uuid"`
	Symbol    *string   `json:"symbol"`
	Name      *string   `json:"name"`
	IconURL   *string   `json:"iconUrl"`
	Price     *string   `json:"price"`
	Change    *string   `json:"change"`
	Sparkline []*string `json:"sparkline"`
}

// DetailsResponse is the envelope for the single-coin endpoint.
type DetailsResponse struct {
	Status *string      `json:"status"`
	Data   *DetailsData `json:"data"`
}

// DetailsData wraps the coin detail payload.
type DetailsData struct {
	Coin *CoinDetailsDTO `json:"coin"`
}

// CoinDetailsDTO is the detail superset of CoinDTO.
type CoinDetailsDTO struct {
	UUID        *string         `json:"uuid"`
	Symbol      *string         `json:"symbol"`
	Name        *string         `json:"name"`
	IconURL     *string         `json:"iconUrl"`
	Price       *string         `json:"price"`
	Change      *string         `json:"change"`
	MarketCap   *string         `json:"marketCap"`
	Rank        *int64          `json:"rank"`
	Volume24h   *string         `json:"24hVolume"`
	Supply      *SupplyDTO      `json:"supply"`
	AllTimeHigh *AllTimeHighDTO `json:"allTimeHigh"`
	ListedAt    *int64          `json:"listedAt"`
	Sparkline   []*string       `json:"sparkline"`
}

// SupplyDTO holds supply figures.
type SupplyDTO struct {
	Circulating *string `json:"circulating"`
	Total       *string `json:"total"`
}

// AllTimeHighDTO holds the all-time-high price and its epoch timestamp.
type AllTimeHighDTO struct {
	Price     *string `json:"price"`
	Timestamp *int64  `json:"timestamp"`
}

// HistoryResponse is the envelope for the price-history endpoint.
type HistoryResponse struct {
	Status *string      `json:"status"`
	Data   *HistoryData `json:"data"`
}

// HistoryData carries the period change and the price series. The API
// returns the series newest-first.
type HistoryData struct {
	Change  *string            `json:"change"`
	History []*HistoryEntryDTO `json:"history"`
}

// HistoryEntryDTO is a single historical observation.
type HistoryEntryDTO struct {
	Price     *string `json:"price"`
	Timestamp *int64  `json:"timestamp"`
}

// StatsResponse is the envelope for the global-stats endpoint.
type StatsResponse struct {
	Status *string         `json:"status"`
	Data   *GlobalStatsDTO `json:"data"`
}

// GlobalStatsDTO carries global market aggregates.
type GlobalStatsDTO struct {
	TotalCoins      *int64  `json:"totalCoins"`
	TotalMarketCap  *string `json:"totalMarketCap"`
	MarketCapChange *string `json:"marketCapChange"`
}

// SearchResponse is the envelope for search suggestions.
type SearchResponse struct {
	Status *string     `json:"status"`
	Data   *SearchData `json:"data"`
}

// SearchData carries search-result coin rows.
type SearchData struct {
	Coins []*SearchCoinDTO `json:"coins"`
}

// SearchCoinDTO is the minimal coin projection returned by search.
type SearchCoinDTO struct {
	UUID    *string `json:"uuid"`
	Symbol  *string `json:"symbol"`
	Name    *string `json:"name"`
	IconURL *string `json:"iconUrl"`
}
