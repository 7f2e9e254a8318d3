package mapper

import (
	"cointracker/internal/domain"
	"cointracker/internal/fetcher"
)

// Search maps a search-suggestions response, applying the same id-drop
// filter as the coins list.
func Search(res *fetcher.SearchResponse) []domain.SearchCoin {
	if res == nil || res.Data == nil {
		return []domain.SearchCoin{}
	}

	coins := make([]domain.SearchCoin, 0, len(res.Data.Coins))
	for _, dto := range res.Data.Coins {
		if dto == nil || !hasID(dto.UUID) {
			continue
		}
		coins = append(coins, domain.SearchCoin{
			ID:      *dto.UUID,
			Symbol:  strOrEmpty(dto.Symbol),
			Name:    strOrEmpty(dto.Name),
			IconURL: strOrEmpty(dto.IconURL),
		})
	}
	return coins
}
