package repository

import (
	"context"

	"github.com/rs/zerolog"

	"cointracker/internal/domain"
	"cointracker/internal/fetcher"
	"cointracker/internal/mapper"
	"cointracker/internal/result"
	"cointracker/internal/storage"
)

// CoinsRepository serves the coins list. The local cache is the single
// source of truth: reads observe the cache, and Refresh is the only path
// that talks to the network and writes back.
type CoinsRepository struct {
	api    fetcher.PricingAPI
	cache  storage.CoinCache
	format domain.CurrencyFormat
	logger zerolog.Logger
	limit  int
	watch  *watcher[[]domain.Coin]
}

// NewCoinsRepository constructs the coins repository.
func NewCoinsRepository(api fetcher.PricingAPI, cache storage.CoinCache, format domain.CurrencyFormat, limit int, logger zerolog.Logger) *CoinsRepository {
	return &CoinsRepository{
		api:    api,
		cache:  cache,
		format: format,
		logger: logger.With().Str("component", "coins_repository").Logger(),
		limit:  limit,
		watch:  newWatcher[[]domain.Coin](),
	}
}

// Coins returns the current cached snapshot.
func (r *CoinsRepository) Coins(ctx context.Context) result.Result[[]domain.Coin] {
	rows, err := r.cache.ListCoins(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("cache read failed")
		return result.Fail[[]domain.Coin](MsgCoinsUnavailable)
	}
	return result.Ok(coinsFromRows(rows, r.format))
}

// Observe emits the current cached snapshot immediately, then re-emits on
// every successful refresh until ctx is cancelled. Cache changes surface as
// Success emissions; there is no interleaved Loading after the first value.
func (r *CoinsRepository) Observe(ctx context.Context) <-chan result.Result[[]domain.Coin] {
	ch := r.watch.subscribe(ctx)
	r.watch.send(ch, r.Coins(ctx))
	return ch
}

// Refresh fetches the coins list from the network, maps it, and replaces
// the cache snapshot. On any failure the existing cache is left untouched
// and an Error result is returned.
func (r *CoinsRepository) Refresh(ctx context.Context) result.Result[[]domain.Coin] {
	res, err := r.api.ListCoins(ctx, r.limit)
	if err != nil {
		r.logger.Error().Err(err).Msg("coins fetch failed")
		return result.Fail[[]domain.Coin](MsgCoinsUnavailable)
	}
	if res == nil || res.Data == nil {
		r.logger.Error().Msg("coins response missing data envelope")
		return result.Fail[[]domain.Coin](MsgCoinsUnavailable)
	}

	coins := mapper.Coins(res, r.format)
	if err := r.cache.ReplaceCoins(ctx, rowsFromCoins(coins)); err != nil {
		r.logger.Error().Err(err).Msg("cache write failed")
		return result.Fail[[]domain.Coin](MsgCoinsUnavailable)
	}

	r.logger.Debug().Int("count", len(coins)).Msg("coins cache refreshed")
	out := result.Ok(coins)
	r.watch.publish(out)
	return out
}
