package repository

import (
	"context"

	"github.com/rs/zerolog"

	"cointracker/internal/domain"
	"cointracker/internal/fetcher"
	"cointracker/internal/mapper"
	"cointracker/internal/result"
)

// DetailsRepository serves single-coin detail lookups. Details are not
// cached; every call is a fresh fetch.
type DetailsRepository struct {
	api    fetcher.PricingAPI
	format domain.CurrencyFormat
	logger zerolog.Logger
}

// NewDetailsRepository constructs the details repository.
func NewDetailsRepository(api fetcher.PricingAPI, format domain.CurrencyFormat, logger zerolog.Logger) *DetailsRepository {
	return &DetailsRepository{
		api:    api,
		format: format,
		logger: logger.With().Str("component", "details_repository").Logger(),
	}
}

// Fetch retrieves and maps the detail payload for one coin.
func (r *DetailsRepository) Fetch(ctx context.Context, id string) result.Result[domain.CoinDetails] {
	res, err := r.api.GetCoinDetails(ctx, id)
	if err != nil {
		r.logger.Error().Err(err).Str("coin_id", id).Msg("details fetch failed")
		return result.Fail[domain.CoinDetails](MsgDetailsUnavailable)
	}
	if res == nil || res.Data == nil || res.Data.Coin == nil {
		r.logger.Error().Str("coin_id", id).Msg("details response missing coin envelope")
		return result.Fail[domain.CoinDetails](MsgDetailsUnavailable)
	}
	return result.Ok(mapper.Details(res, r.format))
}

// Stream emits Loading followed by the terminal Fetch outcome.
func (r *DetailsRepository) Stream(ctx context.Context, id string) <-chan result.Result[domain.CoinDetails] {
	ch := make(chan result.Result[domain.CoinDetails], 2)
	go func() {
		defer close(ch)
		ch <- result.Pending[domain.CoinDetails]()
		ch <- r.Fetch(ctx, id)
	}()
	return ch
}
