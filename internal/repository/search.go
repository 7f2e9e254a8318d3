package repository

import (
	"context"

	"github.com/rs/zerolog"

	"cointracker/internal/domain"
	"cointracker/internal/fetcher"
	"cointracker/internal/mapper"
	"cointracker/internal/result"
)

// SearchRepository serves free-text search suggestions.
type SearchRepository struct {
	api    fetcher.PricingAPI
	logger zerolog.Logger
}

// NewSearchRepository constructs the search repository.
func NewSearchRepository(api fetcher.PricingAPI, logger zerolog.Logger) *SearchRepository {
	return &SearchRepository{
		api:    api,
		logger: logger.With().Str("component", "search_repository").Logger(),
	}
}

// Fetch retrieves and maps search suggestions for a query.
func (r *SearchRepository) Fetch(ctx context.Context, query string) result.Result[[]domain.SearchCoin] {
	res, err := r.api.SearchCoins(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Str("query", query).Msg("search failed")
		return result.Fail[[]domain.SearchCoin](MsgSearchUnavailable)
	}
	if res == nil || res.Data == nil {
		r.logger.Error().Str("query", query).Msg("search response missing data envelope")
		return result.Fail[[]domain.SearchCoin](MsgSearchUnavailable)
	}
	return result.Ok(mapper.Search(res))
}

// Stream emits Loading followed by the terminal Fetch outcome.
func (r *SearchRepository) Stream(ctx context.Context, query string) <-chan result.Result[[]domain.SearchCoin] {
	ch := make(chan result.Result[[]domain.SearchCoin], 2)
	go func() {
		defer close(ch)
		ch <- result.Pending[[]domain.SearchCoin]()
		ch <- r.Fetch(ctx, query)
	}()
	return ch
}
