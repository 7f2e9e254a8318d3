package fetcher

import (
	"context"
)

// PricingAPI retrieves coin listings, details, history, and search results
// from the upstream pricing service.
type PricingAPI interface {
	ListCoins(ctx context.Context, limit int) (*CoinsResponse, error)
	ListCoinsByIDs(ctx context.Context, ids []string) (*CoinsResponse, error)
	GetCoinDetails(ctx context.Context, id string) (*DetailsResponse, error)
	GetCoinHistory(ctx context.Context, id, period string) (*HistoryResponse, error)
	GetGlobalStats(ctx context.Context) (*StatsResponse, error)
	SearchCoins(ctx context.Context, query string) (*SearchResponse, error)
}
