// Package mapper converts nullable wire DTOs into fully populated domain
// models. Entries without a stable id are dropped; every other missing or
// unparseable field degrades to a zero amount or an empty string. Mappers
// never return nil and never return collections containing nil elements.
package mapper

import (
	"strings"

	"github.com/shopspring/decimal"

	"cointracker/internal/domain"
	"cointracker/internal/fetcher"
	"cointracker/internal/sanitize"
)

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func hasID(id *string) bool {
	return id != nil && strings.TrimSpace(*id) != ""
}

// Coins maps a coins-list response. Entries with a missing id are filtered
// out entirely; a coin that cannot be identified cannot be rendered or
// favourited.
func Coins(res *fetcher.CoinsResponse, f domain.CurrencyFormat) []domain.Coin {
	if res == nil || res.Data == nil {
		return []domain.Coin{}
	}

	coins := make([]domain.Coin, 0, len(res.Data.Coins))
	for _, dto := range res.Data.Coins {
		if dto == nil || !hasID(dto.UUID) {
			continue
		}
		coins = append(coins, coinFromDTO(dto, f))
	}
	return coins
}

func coinFromDTO(dto *fetcher.CoinDTO, f domain.CurrencyFormat) domain.Coin {
	return domain.Coin{
		ID:           *dto.UUID,
		Symbol:       strOrEmpty(dto.Symbol),
		Name:         strOrEmpty(dto.Name),
		IconURL:      strOrEmpty(dto.IconURL),
		CurrentPrice: domain.NewPrice(dto.Price, f),
		Change24h:    domain.NewPercentage(dto.Change, f),
		Sparkline:    sparkline(dto.Sparkline),
	}
}

// sparkline sanitizes the recent-price series, dropping entries that are
// absent or unparseable.
func sparkline(raw []*string) []decimal.Decimal {
	points := make([]decimal.Decimal, 0, len(raw))
	for _, entry := range raw {
		if d := sanitize.DecimalOrNil(entry); d != nil {
			points = append(points, *d)
		}
	}
	return points
}
