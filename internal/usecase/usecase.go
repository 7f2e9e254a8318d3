// Package usecase wraps each repository operation in a single-method type.
// The wrappers add no behaviour; they exist so call sites depend on exactly
// one operation and tests can swap it out.
package usecase

import (
	"context"

	"cointracker/internal/domain"
	"cointracker/internal/repository"
	"cointracker/internal/result"
)

// GetCoins observes the cached coins list.
type GetCoins struct {
	Repo *repository.CoinsRepository
}

func (u GetCoins) Execute(ctx context.Context) <-chan result.Result[[]domain.Coin] {
	return u.Repo.Observe(ctx)
}

// RefreshCoins refreshes the coins cache from the network.
type RefreshCoins struct {
	Repo *repository.CoinsRepository
}

func (u RefreshCoins) Execute(ctx context.Context) result.Result[[]domain.Coin] {
	return u.Repo.Refresh(ctx)
}

// GetCoinDetails fetches detail data for one coin.
type GetCoinDetails struct {
	Repo *repository.DetailsRepository
}

func (u GetCoinDetails) Execute(ctx context.Context, id string) result.Result[domain.CoinDetails] {
	return u.Repo.Fetch(ctx, id)
}

// GetCoinChart fetches the price history for one coin and period.
type GetCoinChart struct {
	Repo *repository.ChartRepository
}

func (u GetCoinChart) Execute(ctx context.Context, id string, period domain.ChartPeriod) result.Result[domain.CoinChart] {
	return u.Repo.Fetch(ctx, id, period)
}

// GetMarketStats fetches global market statistics.
type GetMarketStats struct {
	Repo *repository.StatsRepository
}

func (u GetMarketStats) Execute(ctx context.Context) result.Result[domain.MarketStats] {
	return u.Repo.Fetch(ctx)
}

// SearchCoins fetches search suggestions for a query.
type SearchCoins struct {
	Repo *repository.SearchRepository
}

func (u SearchCoins) Execute(ctx context.Context, query string) result.Result[[]domain.SearchCoin] {
	return u.Repo.Fetch(ctx, query)
}

// GetFavouriteCoins observes the cached favourite coins.
type GetFavouriteCoins struct {
	Repo *repository.FavouritesRepository
}

func (u GetFavouriteCoins) Execute(ctx context.Context) <-chan result.Result[[]domain.Coin] {
	return u.Repo.Observe(ctx)
}

// RefreshFavouriteCoins refreshes the favourite snapshot from the network.
type RefreshFavouriteCoins struct {
	Repo *repository.FavouritesRepository
}

func (u RefreshFavouriteCoins) Execute(ctx context.Context) result.Result[[]domain.Coin] {
	return u.Repo.Refresh(ctx)
}

// ToggleFavouriteCoin flips favourite membership for one coin id.
type ToggleFavouriteCoin struct {
	Repo *repository.FavouritesRepository
}

func (u ToggleFavouriteCoin) Execute(ctx context.Context, id string) (bool, error) {
	return u.Repo.Toggle(ctx, id)
}

// IsFavouriteCoin reports favourite membership for one coin id.
type IsFavouriteCoin struct {
	Repo *repository.FavouritesRepository
}

func (u IsFavouriteCoin) Execute(ctx context.Context, id string) (bool, error) {
	return u.Repo.IsFavourite(ctx, id)
}
