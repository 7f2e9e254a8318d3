// Package repository sits between the pricing API client, the mappers, and
// the local cache. Every asynchronous operation reports through
// result.Result; transport failures, empty bodies, and absent envelopes all
// collapse to an Error carrying a fixed, resource-specific message. Raw
// errors are logged here and never escape to consumers.
package repository

import (
	"cointracker/internal/domain"
	"cointracker/internal/storage"
)

// User-facing failure messages, one per resource.
const (
	MsgCoinsUnavailable      = "Unable to fetch coins list"
	MsgFavouritesUnavailable = "Unable to fetch favourite coins"
	MsgDetailsUnavailable    = "Unable to fetch coin details"
	MsgChartUnavailable      = "Unable to fetch coin chart"
	MsgStatsUnavailable      = "Unable to fetch market stats"
	MsgSearchUnavailable     = "Unable to search coins"
)

// rowsFromCoins converts mapped domain coins into cache rows. Display
// strings are not persisted; they are pure functions of the amounts and are
// rebuilt on read.
func rowsFromCoins(coins []domain.Coin) []storage.CoinRow {
	rows := make([]storage.CoinRow, len(coins))
	for i, coin := range coins {
		rows[i] = storage.CoinRow{
			Position:  i,
			ID:        coin.ID,
			Symbol:    coin.Symbol,
			Name:      coin.Name,
			IconURL:   coin.IconURL,
			Price:     coin.CurrentPrice.Amount,
			Change:    coin.Change24h.Amount,
			Sparkline: coin.Sparkline,
		}
	}
	return rows
}

// coinsFromRows rebuilds domain coins from cache rows.
func coinsFromRows(rows []storage.CoinRow, f domain.CurrencyFormat) []domain.Coin {
	coins := make([]domain.Coin, len(rows))
	for i, row := range rows {
		coins[i] = domain.Coin{
			ID:           row.ID,
			Symbol:       row.Symbol,
			Name:         row.Name,
			IconURL:      row.IconURL,
			CurrentPrice: domain.NewPriceFromDecimal(row.Price, f),
			Change24h:    domain.NewPercentageFromDecimal(row.Change, f),
			Sparkline:    row.Sparkline,
		}
	}
	return coins
}
