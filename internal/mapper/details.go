package mapper

import (
	"strconv"
	"time"

	"cointracker/internal/domain"
	"cointracker/internal/fetcher"
	"cointracker/internal/sanitize"
)

// listedDateLayout renders epoch timestamps as "2 Jan 2006" in the system
// default time zone.
const listedDateLayout = "2 Jan 2006"

// Details maps a coin-detail response. Large numeric fields are formatted
// with grouping and no fraction digits; anything missing or unparseable
// renders as an empty string. The all-time-high price uses the explicit
// unavailable display when absent, unlike the current price.
func Details(res *fetcher.DetailsResponse, f domain.CurrencyFormat) domain.CoinDetails {
	var dto *fetcher.CoinDetailsDTO
	if res != nil && res.Data != nil {
		dto = res.Data.Coin
	}
	if dto == nil {
		return domain.CoinDetails{
			Coin: domain.Coin{
				CurrentPrice: domain.NewPrice(nil, f),
				Change24h:    domain.NewPercentage(nil, f),
				Sparkline:    sparkline(nil),
			},
			AllTimeHigh: domain.NewPriceOrUnavailable(nil, f),
		}
	}

	var athPrice *string
	var athTimestamp *int64
	if dto.AllTimeHigh != nil {
		athPrice = dto.AllTimeHigh.Price
		athTimestamp = dto.AllTimeHigh.Timestamp
	}

	var circulating *string
	if dto.Supply != nil {
		circulating = dto.Supply.Circulating
	}

	return domain.CoinDetails{
		Coin: domain.Coin{
			ID:           strOrEmpty(dto.UUID),
			Symbol:       strOrEmpty(dto.Symbol),
			Name:         strOrEmpty(dto.Name),
			IconURL:      strOrEmpty(dto.IconURL),
			CurrentPrice: domain.NewPrice(dto.Price, f),
			Change24h:    domain.NewPercentage(dto.Change, f),
			Sparkline:    sparkline(dto.Sparkline),
		},
		MarketCap:         groupedOrEmpty(dto.MarketCap, f),
		MarketCapRank:     rankOrEmpty(dto.Rank),
		Volume24h:         groupedOrEmpty(dto.Volume24h, f),
		CirculatingSupply: groupedOrEmpty(circulating, f),
		AllTimeHigh:       domain.NewPriceOrUnavailable(athPrice, f),
		AllTimeHighDate:   epochToDate(athTimestamp),
		ListedDate:        epochToDate(dto.ListedAt),
	}
}

func groupedOrEmpty(raw *string, f domain.CurrencyFormat) string {
	d := sanitize.DecimalOrNil(raw)
	if d == nil {
		return ""
	}
	return f.GroupedInteger(*d)
}

func rankOrEmpty(rank *int64) string {
	if rank == nil || *rank <= 0 {
		return ""
	}
	return strconv.FormatInt(*rank, 10)
}

// epochToDate converts epoch seconds to a display date. Absent, zero, and
// negative epochs render as an empty string rather than a bogus date.
func epochToDate(epoch *int64) string {
	if epoch == nil || *epoch <= 0 {
		return ""
	}
	return time.Unix(*epoch, 0).Format(listedDateLayout)
}
