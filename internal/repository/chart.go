package repository

import (
	"context"

	"github.com/rs/zerolog"

	"cointracker/internal/domain"
	"cointracker/internal/fetcher"
	"cointracker/internal/mapper"
	"cointracker/internal/result"
)

// ChartRepository serves historical price charts per coin and period.
type ChartRepository struct {
	api    fetcher.PricingAPI
	format domain.CurrencyFormat
	logger zerolog.Logger
}

// NewChartRepository constructs the chart repository.
func NewChartRepository(api fetcher.PricingAPI, format domain.CurrencyFormat, logger zerolog.Logger) *ChartRepository {
	return &ChartRepository{
		api:    api,
		format: format,
		logger: logger.With().Str("component", "chart_repository").Logger(),
	}
}

// Fetch retrieves and maps the price history for one coin over a period.
func (r *ChartRepository) Fetch(ctx context.Context, id string, period domain.ChartPeriod) result.Result[domain.CoinChart] {
	res, err := r.api.GetCoinHistory(ctx, id, string(period))
	if err != nil {
		r.logger.Error().Err(err).Str("coin_id", id).Str("period", string(period)).Msg("chart fetch failed")
		return result.Fail[domain.CoinChart](MsgChartUnavailable)
	}
	if res == nil || res.Data == nil {
		r.logger.Error().Str("coin_id", id).Msg("chart response missing data envelope")
		return result.Fail[domain.CoinChart](MsgChartUnavailable)
	}
	return result.Ok(mapper.Chart(res, r.format))
}

// Stream emits Loading followed by the terminal Fetch outcome.
func (r *ChartRepository) Stream(ctx context.Context, id string, period domain.ChartPeriod) <-chan result.Result[domain.CoinChart] {
	ch := make(chan result.Result[domain.CoinChart], 2)
	go func() {
		defer close(ch)
		ch <- result.Pending[domain.CoinChart]()
		ch <- r.Fetch(ctx, id, period)
	}()
	return ch
}
