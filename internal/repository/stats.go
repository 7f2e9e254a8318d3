package repository

import (
	"context"

	"github.com/rs/zerolog"

	"cointracker/internal/domain"
	"cointracker/internal/fetcher"
	"cointracker/internal/mapper"
	"cointracker/internal/result"
)

// StatsRepository serves global market statistics.
type StatsRepository struct {
	api    fetcher.PricingAPI
	format domain.CurrencyFormat
	logger zerolog.Logger
}

// NewStatsRepository constructs the stats repository.
func NewStatsRepository(api fetcher.PricingAPI, format domain.CurrencyFormat, logger zerolog.Logger) *StatsRepository {
	return &StatsRepository{
		api:    api,
		format: format,
		logger: logger.With().Str("component", "stats_repository").Logger(),
	}
}

// Fetch retrieves and maps global market stats.
func (r *StatsRepository) Fetch(ctx context.Context) result.Result[domain.MarketStats] {
	res, err := r.api.GetGlobalStats(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("stats fetch failed")
		return result.Fail[domain.MarketStats](MsgStatsUnavailable)
	}
	if res == nil || res.Data == nil {
		r.logger.Error().Msg("stats response missing data envelope")
		return result.Fail[domain.MarketStats](MsgStatsUnavailable)
	}
	return result.Ok(mapper.Stats(res, r.format))
}

// Stream emits Loading followed by the terminal Fetch outcome.
func (r *StatsRepository) Stream(ctx context.Context) <-chan result.Result[domain.MarketStats] {
	ch := make(chan result.Result[domain.MarketStats], 2)
	go func() {
		defer close(ch)
		ch <- result.Pending[domain.MarketStats]()
		ch <- r.Fetch(ctx)
	}()
	return ch
}
