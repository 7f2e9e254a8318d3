package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"cointracker/internal/domain"
	"cointracker/internal/usecase"
)

// Show prints the cached coins list, optionally refreshing it first.
func (a *App) Show(ctx context.Context, opts ShowOptions) error {
	coinCache, favCache, closeStore, err := a.stores(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	deps := a.newRepos(coinCache, favCache)

	if opts.Refresh {
		if res := (usecase.RefreshCoins{Repo: deps.coins}).Execute(ctx); res.IsError() {
			msg, _ := res.Message()
			return errors.New(msg)
		}
	}

	res := deps.coins.Coins(ctx)
	if res.IsError() {
		msg, _ := res.Message()
		return errors.New(msg)
	}

	coins := res.MustValue()
	if len(coins) == 0 {
		fmt.Fprintln(os.Stdout, "no coins cached; run refresh first")
		return nil
	}
	if opts.Limit > 0 && len(coins) > opts.Limit {
		coins = coins[:opts.Limit]
	}

	printCoins(coins)
	return nil
}

// Refresh performs a one-shot refresh of both cached resources.
func (a *App) Refresh(ctx context.Context) error {
	coinCache, favCache, closeStore, err := a.stores(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	deps := a.newRepos(coinCache, favCache)

	coinsRes := (usecase.RefreshCoins{Repo: deps.coins}).Execute(ctx)
	if coinsRes.IsError() {
		msg, _ := coinsRes.Message()
		return errors.New(msg)
	}
	favRes := (usecase.RefreshFavouriteCoins{Repo: deps.favourites}).Execute(ctx)
	if favRes.IsError() {
		msg, _ := favRes.Message()
		return errors.New(msg)
	}

	fmt.Fprintf(os.Stdout, "refreshed %d coins, %d favourites\n",
		len(coinsRes.MustValue()), len(favRes.MustValue()))
	return nil
}

// Details fetches and prints the detail view for one coin.
func (a *App) Details(ctx context.Context, id string) error {
	coinCache, favCache, closeStore, err := a.stores(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	deps := a.newRepos(coinCache, favCache)

	res := (usecase.GetCoinDetails{Repo: deps.details}).Execute(ctx, id)
	if res.IsError() {
		msg, _ := res.Message()
		return errors.New(msg)
	}

	details := res.MustValue()
	favourite, err := (usecase.IsFavouriteCoin{Repo: deps.favourites}).Execute(ctx, id)
	if err != nil {
		a.Logger.Warn().Err(err).Msg("favourite lookup failed")
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(writer, "Name\t%s (%s)\n", details.Name, details.Symbol)
	fmt.Fprintf(writer, "Price\t%s\n", details.CurrentPrice.Display)
	fmt.Fprintf(writer, "Change (24h)\t%s\n", details.Change24h.Display)
	fmt.Fprintf(writer, "Market cap\t%s\n", details.MarketCap)
	fmt.Fprintf(writer, "Rank\t%s\n", details.MarketCapRank)
	fmt.Fprintf(writer, "Volume (24h)\t%s\n", details.Volume24h)
	fmt.Fprintf(writer, "Circulating supply\t%s\n", details.CirculatingSupply)
	fmt.Fprintf(writer, "All-time high\t%s\n", details.AllTimeHigh.Display)
	fmt.Fprintf(writer, "All-time high date\t%s\n", details.AllTimeHighDate)
	fmt.Fprintf(writer, "Listed\t%s\n", details.ListedDate)
	fmt.Fprintf(writer, "Favourite\t%t\n", favourite)
	return writer.Flush()
}

// Search prints search suggestions for a query.
func (a *App) Search(ctx context.Context, query string) error {
	coinCache, favCache, closeStore, err := a.stores(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	deps := a.newRepos(coinCache, favCache)

	res := (usecase.SearchCoins{Repo: deps.search}).Execute(ctx, query)
	if res.IsError() {
		msg, _ := res.Message()
		return errors.New(msg)
	}

	coins := res.MustValue()
	if len(coins) == 0 {
		fmt.Fprintln(os.Stdout, "no matches")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tSymbol\tName")
	for _, coin := range coins {
		fmt.Fprintf(writer, "%s\t%s\t%s\n", coin.ID, coin.Symbol, coin.Name)
	}
	return writer.Flush()
}

// Stats prints global market statistics.
func (a *App) Stats(ctx context.Context) error {
	coinCache, favCache, closeStore, err := a.stores(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	deps := a.newRepos(coinCache, favCache)

	res := (usecase.GetMarketStats{Repo: deps.stats}).Execute(ctx)
	if res.IsError() {
		msg, _ := res.Message()
		return errors.New(msg)
	}

	stats := res.MustValue()
	fmt.Fprintf(os.Stdout, "market cap change (24h): %s\n", stats.MarketCapChange24h.Display)
	return nil
}

func printCoins(coins []domain.Coin) {
	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tSymbol\tName\tPrice\tChange (24h)")
	for _, coin := range coins {
		fmt.Fprintf(
			writer,
			"%s\t%s\t%s\t%s\t%s\n",
			coin.ID,
			coin.Symbol,
			sanitizeInline(coin.Name),
			coin.CurrentPrice.Display,
			coin.Change24h.Display,
		)
	}
	writer.Flush()
}

func sanitizeInline(v string) string {
	cleaned := strings.ReplaceAll(v, "\n", " ")
	cleaned = strings.ReplaceAll(cleaned, "\r", " ")
	return cleaned
}
