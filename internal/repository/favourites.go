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

// FavouritesRepository serves the user's favourite coins. Membership is a
// locally persisted id set; the displayable snapshot is refreshed from the
// network by id and cached like the coins list. The observed view is the
// cached snapshot filtered down to current membership, so a removal is
// visible before the next network refresh.
type FavouritesRepository struct {
	api    fetcher.PricingAPI
	cache  storage.FavouriteCache
	format domain.CurrencyFormat
	logger zerolog.Logger
	watch  *watcher[[]domain.Coin]
}

// NewFavouritesRepository constructs the favourites repository.
func NewFavouritesRepository(api fetcher.PricingAPI, cache storage.FavouriteCache, format domain.CurrencyFormat, logger zerolog.Logger) *FavouritesRepository {
	return &FavouritesRepository{
		api:    api,
		cache:  cache,
		format: format,
		logger: logger.With().Str("component", "favourites_repository").Logger(),
		watch:  newWatcher[[]domain.Coin](),
	}
}

// Favourites returns the cached favourite snapshot restricted to current
// membership.
func (r *FavouritesRepository) Favourites(ctx context.Context) result.Result[[]domain.Coin] {
	coins, err := r.memberCoins(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("cache read failed")
		return result.Fail[[]domain.Coin](MsgFavouritesUnavailable)
	}
	return result.Ok(coins)
}

// Observe emits the current favourite snapshot immediately, then re-emits
// after every successful refresh or membership change.
func (r *FavouritesRepository) Observe(ctx context.Context) <-chan result.Result[[]domain.Coin] {
	ch := r.watch.subscribe(ctx)
	r.watch.send(ch, r.Favourites(ctx))
	return ch
}

// Refresh fetches fresh rows for every favourite id and replaces the
// cached snapshot. A failed fetch leaves the previous snapshot visible.
func (r *FavouritesRepository) Refresh(ctx context.Context) result.Result[[]domain.Coin] {
	ids, err := r.cache.ListFavouriteIDs(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("membership read failed")
		return result.Fail[[]domain.Coin](MsgFavouritesUnavailable)
	}

	res, err := r.api.ListCoinsByIDs(ctx, ids)
	if err != nil {
		r.logger.Error().Err(err).Msg("favourites fetch failed")
		return result.Fail[[]domain.Coin](MsgFavouritesUnavailable)
	}
	if res == nil || res.Data == nil {
		r.logger.Error().Msg("favourites response missing data envelope")
		return result.Fail[[]domain.Coin](MsgFavouritesUnavailable)
	}

	coins := mapper.Coins(res, r.format)
	if err := r.cache.ReplaceFavouriteCoins(ctx, rowsFromCoins(coins)); err != nil {
		r.logger.Error().Err(err).Msg("cache write failed")
		return result.Fail[[]domain.Coin](MsgFavouritesUnavailable)
	}

	out := result.Ok(coins)
	r.watch.publish(out)
	return out
}

// Toggle flips membership for id: insert when absent, delete when present.
// The returned bool is the membership state after the flip. Concurrent
// toggles of the same id are last-write-wins; the store serializes the
// individual writes.
func (r *FavouritesRepository) Toggle(ctx context.Context, id string) (bool, error) {
	member, err := r.cache.IsFavourite(ctx, id)
	if err != nil {
		return false, err
	}

	if member {
		err = r.cache.RemoveFavourite(ctx, id)
	} else {
		err = r.cache.AddFavourite(ctx, id)
	}
	if err != nil {
		return member, err
	}

	r.broadcastSnapshot(ctx)
	return !member, nil
}

// IsFavourite reports membership for id.
func (r *FavouritesRepository) IsFavourite(ctx context.Context, id string) (bool, error) {
	return r.cache.IsFavourite(ctx, id)
}

func (r *FavouritesRepository) memberCoins(ctx context.Context) ([]domain.Coin, error) {
	rows, err := r.cache.ListFavouriteCoins(ctx)
	if err != nil {
		return nil, err
	}
	ids, err := r.cache.ListFavouriteIDs(ctx)
	if err != nil {
		return nil, err
	}

	members := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		members[id] = struct{}{}
	}

	kept := make([]storage.CoinRow, 0, len(rows))
	for _, row := range rows {
		if _, ok := members[row.ID]; ok {
			kept = append(kept, row)
		}
	}
	return coinsFromRows(kept, r.format), nil
}

func (r *FavouritesRepository) broadcastSnapshot(ctx context.Context) {
	coins, err := r.memberCoins(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("snapshot broadcast failed")
		return
	}
	r.watch.publish(result.Ok(coins))
}
