package mapper

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cointracker/internal/domain"
	"cointracker/internal/fetcher"
)

func strPtr(s string) *string {
	return &s
}

func int64Ptr(v int64) *int64 {
	return &v
}

func format() domain.CurrencyFormat {
	return domain.DefaultCurrencyFormat()
}

func TestCoinsDropsEntriesWithoutID(t *testing.T) {
	res := &fetcher.CoinsResponse{
		Data: &fetcher.CoinsData{
			Coins: []*fetcher.CoinDTO{
				{UUID: strPtr("btc"), Name: strPtr("Bitcoin"), Price: strPtr("100.5")},
				{UUID: nil, Name: strPtr("Mystery")},
				{UUID: strPtr("   "), Name: strPtr("Blank")},
				nil,
				{UUID: strPtr("eth"), Name: strPtr("Ethereum"), Price: strPtr("2000")},
			},
		},
	}

	coins := Coins(res, format())
	require.Len(t, coins, 2)
	assert.Equal(t, "btc", coins[0].ID)
	assert.Equal(t, "eth", coins[1].ID)
}

func TestCoinsDefaultsMissingFields(t *testing.T) {
	res := &fetcher.CoinsResponse{
		Data: &fetcher.CoinsData{
			Coins: []*fetcher.CoinDTO{
				{UUID: strPtr("btc")},
			},
		},
	}

	coins := Coins(res, format())
	require.Len(t, coins, 1)

	coin := coins[0]
	assert.Equal(t, "", coin.Symbol)
	assert.Equal(t, "", coin.Name)
	assert.Equal(t, "", coin.IconURL)
	assert.True(t, coin.CurrentPrice.IsZero())
	assert.Equal(t, "$0.00", coin.CurrentPrice.Display)
	assert.Equal(t, "+0.00%", coin.Change24h.Display)
	assert.Empty(t, coin.Sparkline)
}

func TestCoinsSparklineDropsBadPoints(t *testing.T) {
	res := &fetcher.CoinsResponse{
		Data: &fetcher.CoinsData{
			Coins: []*fetcher.CoinDTO{
				{
					UUID:      strPtr("btc"),
					Sparkline: []*string{strPtr("1.5"), nil, strPtr("bad"), strPtr("2.5")},
				},
			},
		},
	}

	coins := Coins(res, format())
	require.Len(t, coins, 1)
	require.Len(t, coins[0].Sparkline, 2)
	assert.True(t, coins[0].Sparkline[0].Equal(decimal.RequireFromString("1.5")))
	assert.True(t, coins[0].Sparkline[1].Equal(decimal.RequireFromString("2.5")))
}

func TestCoinsNilEnvelope(t *testing.T) {
	assert.Empty(t, Coins(nil, format()))
	assert.Empty(t, Coins(&fetcher.CoinsResponse{}, format()))
}

func TestChartReversesToChronologicalOrder(t *testing.T) {
	// Newest-first input with one absent entry, per the upstream wire shape.
	res := &fetcher.HistoryResponse{
		Data: &fetcher.HistoryData{
			Change: strPtr("4.2"),
			History: []*fetcher.HistoryEntryDTO{
				{Price: strPtr("20000.20")},
				{Price: strPtr("30000.47")},
				{Price: nil},
				{Price: strPtr("25000.89")},
				{Price: strPtr("27000.44")},
			},
		},
	}

	chart := Chart(res, format())

	want := []string{"27000.44", "25000.89", "30000.47", "20000.20"}
	require.Len(t, chart.Prices, len(want))
	for i, w := range want {
		assert.True(t, chart.Prices[i].Amount.Equal(decimal.RequireFromString(w)), "price %d", i)
	}

	require.NotNil(t, chart.Min)
	require.NotNil(t, chart.Max)
	assert.True(t, chart.Min.Equal(decimal.RequireFromString("20000.20")))
	assert.True(t, chart.Max.Equal(decimal.RequireFromString("30000.47")))
	assert.Equal(t, "+4.20%", chart.Change.Display)
}

func TestChartFiltersNegativePrices(t *testing.T) {
	res := &fetcher.HistoryResponse{
		Data: &fetcher.HistoryData{
			History: []*fetcher.HistoryEntryDTO{
				{Price: strPtr("-1")},
				{Price: strPtr("10")},
				{Price: strPtr("-0.5")},
			},
		},
	}

	chart := Chart(res, format())
	require.Len(t, chart.Prices, 1)
	assert.True(t, chart.Prices[0].Amount.Equal(decimal.RequireFromString("10")))
}

func TestChartEmptySeriesHasNilRange(t *testing.T) {
	res := &fetcher.HistoryResponse{
		Data: &fetcher.HistoryData{
			History: []*fetcher.HistoryEntryDTO{
				nil,
				{Price: strPtr("junk")},
				{Price: strPtr("-3")},
			},
		},
	}

	chart := Chart(res, format())
	assert.Empty(t, chart.Prices)
	assert.Nil(t, chart.Min)
	assert.Nil(t, chart.Max)
}

func TestDetailsFormatting(t *testing.T) {
	athEpoch := int64(1386230400)
	listedEpoch := int64(1330473600)

	res := &fetcher.DetailsResponse{
		Data: &fetcher.DetailsData{
			Coin: &fetcher.CoinDetailsDTO{
				UUID:      strPtr("btc"),
				Symbol:    strPtr("BTC"),
				Name:      strPtr("Bitcoin"),
				Price:     strPtr("30000"),
				Change:    strPtr("-1.25"),
				MarketCap: strPtr("580000000000.75"),
				Rank:      int64Ptr(1),
				Volume24h: strPtr("24000000000"),
				Supply: &fetcher.SupplyDTO{
					Circulating: strPtr("19500000"),
				},
				AllTimeHigh: &fetcher.AllTimeHighDTO{
					Price:     strPtr("69045.12"),
					Timestamp: &athEpoch,
				},
				ListedAt: &listedEpoch,
			},
		},
	}

	details := Details(res, format())

	assert.Equal(t, "btc", details.ID)
	assert.Equal(t, "$30,000.00", details.CurrentPrice.Display)
	assert.Equal(t, "-1.25%", details.Change24h.Display)
	assert.Equal(t, "580,000,000,001", details.MarketCap)
	assert.Equal(t, "1", details.MarketCapRank)
	assert.Equal(t, "24,000,000,000", details.Volume24h)
	assert.Equal(t, "19,500,000", details.CirculatingSupply)
	assert.Equal(t, "$69,045.12", details.AllTimeHigh.Display)
	assert.Equal(t, time.Unix(athEpoch, 0).Format("2 Jan 2006"), details.AllTimeHighDate)
	assert.Equal(t, time.Unix(listedEpoch, 0).Format("2 Jan 2006"), details.ListedDate)
}

func TestDetailsMissingFieldsDegrade(t *testing.T) {
	badEpoch := int64(-5)

	res := &fetcher.DetailsResponse{
		Data: &fetcher.DetailsData{
			Coin: &fetcher.CoinDetailsDTO{
				UUID:      strPtr("btc"),
				MarketCap: strPtr("unknown"),
				ListedAt:  &badEpoch,
			},
		},
	}

	details := Details(res, format())

	assert.Equal(t, "", details.MarketCap)
	assert.Equal(t, "", details.MarketCapRank)
	assert.Equal(t, "", details.Volume24h)
	assert.Equal(t, "", details.CirculatingSupply)
	assert.Equal(t, "", details.AllTimeHighDate)
	assert.Equal(t, "", details.ListedDate)
	assert.Equal(t, "$ --", details.AllTimeHigh.Display)
	assert.Equal(t, "$0.00", details.CurrentPrice.Display)
}

func TestSearchDropsEntriesWithoutID(t *testing.T) {
	res := &fetcher.SearchResponse{
		Data: &fetcher.SearchData{
			Coins: []*fetcher.SearchCoinDTO{
				{UUID: strPtr("btc"), Symbol: strPtr("BTC"), Name: strPtr("Bitcoin")},
				{UUID: nil, Name: strPtr("Mystery")},
				nil,
			},
		},
	}

	coins := Search(res)
	require.Len(t, coins, 1)
	assert.Equal(t, "btc", coins[0].ID)
	assert.Equal(t, "BTC", coins[0].Symbol)
	assert.Equal(t, "", coins[0].IconURL)
}

func TestStats(t *testing.T) {
	res := &fetcher.StatsResponse{
		Data: &fetcher.GlobalStatsDTO{
			MarketCapChange: strPtr("-2.31"),
		},
	}
	stats := Stats(res, format())
	assert.Equal(t, "-2.31%", stats.MarketCapChange24h.Display)
	assert.True(t, stats.MarketCapChange24h.IsNegative())

	empty := Stats(&fetcher.StatsResponse{}, format())
	assert.Equal(t, "+0.00%", empty.MarketCapChange24h.Display)

	missing := Stats(nil, format())
	assert.False(t, missing.MarketCapChange24h.IsPositive())
	assert.False(t, missing.MarketCapChange24h.IsNegative())
}
