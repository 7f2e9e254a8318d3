package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cointracker/internal/usecase"
)

// FavouriteToggle flips membership for a coin id and refreshes the cached
// favourite snapshot so the change is immediately visible.
func (a *App) FavouriteToggle(ctx context.Context, id string) error {
	coinCache, favCache, closeStore, err := a.stores(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	deps := a.newRepos(coinCache, favCache)

	member, err := (usecase.ToggleFavouriteCoin{Repo: deps.favourites}).Execute(ctx, id)
	if err != nil {
		return fmt.Errorf("toggle favourite: %w", err)
	}

	if member {
		// Snapshot refresh is best effort; membership is already recorded.
		if res := (usecase.RefreshFavouriteCoins{Repo: deps.favourites}).Execute(ctx); res.IsError() {
			msg, _ := res.Message()
			a.Logger.Warn().Str("reason", msg).Msg("favourite snapshot refresh failed")
		}
		fmt.Fprintf(os.Stdout, "%s added to favourites\n", id)
	} else {
		fmt.Fprintf(os.Stdout, "%s removed from favourites\n", id)
	}
	return nil
}

// FavouriteSet forces membership to want, regardless of current state.
// Already-satisfied requests are no-ops.
func (a *App) FavouriteSet(ctx context.Context, id string, want bool) error {
	coinCache, favCache, closeStore, err := a.stores(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	deps := a.newRepos(coinCache, favCache)

	member, err := (usecase.IsFavouriteCoin{Repo: deps.favourites}).Execute(ctx, id)
	if err != nil {
		return fmt.Errorf("favourite lookup: %w", err)
	}
	if member == want {
		fmt.Fprintf(os.Stdout, "%s unchanged\n", id)
		return nil
	}

	if _, err := (usecase.ToggleFavouriteCoin{Repo: deps.favourites}).Execute(ctx, id); err != nil {
		return fmt.Errorf("toggle favourite: %w", err)
	}

	if want {
		if res := (usecase.RefreshFavouriteCoins{Repo: deps.favourites}).Execute(ctx); res.IsError() {
			msg, _ := res.Message()
			a.Logger.Warn().Str("reason", msg).Msg("favourite snapshot refresh failed")
		}
		fmt.Fprintf(os.Stdout, "%s added to favourites\n", id)
	} else {
		fmt.Fprintf(os.Stdout, "%s removed from favourites\n", id)
	}
	return nil
}

// FavouriteList prints the cached favourite coins.
func (a *App) FavouriteList(ctx context.Context) error {
	coinCache, favCache, closeStore, err := a.stores(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	deps := a.newRepos(coinCache, favCache)

	res := deps.favourites.Favourites(ctx)
	if res.IsError() {
		msg, _ := res.Message()
		return errors.New(msg)
	}

	coins := res.MustValue()
	if len(coins) == 0 {
		fmt.Fprintln(os.Stdout, "no favourites")
		return nil
	}

	printCoins(coins)
	return nil
}
