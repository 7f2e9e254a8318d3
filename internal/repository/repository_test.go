package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"cointracker/internal/domain"
	"cointracker/internal/fetcher"
	"cointracker/internal/result"
	"cointracker/internal/storage"
)

func noopLogger() zerolog.Logger {
	return zerolog.Nop()
}

func format() domain.CurrencyFormat {
	return domain.DefaultCurrencyFormat()
}

func newAPI(t *testing.T, handler http.HandlerFunc) fetcher.PricingAPI {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return fetcher.NewClient(fetcher.Options{
		BaseURL: srv.URL,
		Timeout: time.Second,
	}, noopLogger())
}

func receive[T any](t *testing.T, ch <-chan result.Result[T]) result.Result[T] {
	t.Helper()
	select {
	case r, ok := <-ch:
		if !ok {
			t.Fatal("stream closed unexpectedly")
		}
		return r
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for emission")
	}
	panic("unreachable")
}

func TestCoinsRefreshSuccess(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"coins": []map[string]any{
					{"uuid": "btc", "name": "Bitcoin", "price": "100.5"},
				},
			},
		})
	})

	repo := NewCoinsRepository(api, storage.NewMemoryStore(0), format(), 100, noopLogger())

	res := repo.Refresh(context.Background())
	if !res.IsSuccess() {
		t.Fatal("expected success")
	}

	coins := res.MustValue()
	if len(coins) != 1 {
		t.Fatalf("expected one coin, got %d", len(coins))
	}
	coin := coins[0]
	if coin.ID != "btc" || coin.Name != "Bitcoin" {
		t.Fatalf("unexpected coin: %+v", coin)
	}
	if !coin.CurrentPrice.Amount.Equal(decimal.RequireFromString("100.5")) {
		t.Fatalf("unexpected amount: %s", coin.CurrentPrice.Amount)
	}
	if coin.CurrentPrice.Display != "$100.50" {
		t.Fatalf("unexpected display: %s", coin.CurrentPrice.Display)
	}

	// The cache is now the source of truth for reads.
	cached := repo.Coins(context.Background())
	if !cached.IsSuccess() {
		t.Fatal("expected cached success")
	}
	if got := cached.MustValue(); len(got) != 1 || got[0].ID != "btc" {
		t.Fatalf("unexpected cached coins: %+v", got)
	}
}

func TestCoinsRefreshErrorKeepsCache(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	store := storage.NewMemoryStore(0)
	seeded := storage.CoinRow{
		ID:    "btc",
		Name:  "Bitcoin",
		Price: decimal.RequireFromString("90"),
	}
	if err := store.ReplaceCoins(context.Background(), []storage.CoinRow{seeded}); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	repo := NewCoinsRepository(api, store, format(), 100, noopLogger())

	res := repo.Refresh(context.Background())
	if !res.IsError() {
		t.Fatal("expected error result")
	}
	msg, _ := res.Message()
	if msg != MsgCoinsUnavailable {
		t.Fatalf("unexpected message: %q", msg)
	}

	// Failed refresh must leave the previous snapshot untouched.
	cached := repo.Coins(context.Background())
	coins := cached.MustValue()
	if len(coins) != 1 || coins[0].ID != "btc" {
		t.Fatalf("cache was corrupted: %+v", coins)
	}
	if !coins[0].CurrentPrice.Amount.Equal(decimal.RequireFromString("90")) {
		t.Fatal("cached amount changed after failed refresh")
	}
}

func TestCoinsObserveEmitsSnapshotThenUpdates(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"coins": []map[string]any{
					{"uuid": "eth", "name": "Ethereum", "price": "2000"},
				},
			},
		})
	})

	repo := NewCoinsRepository(api, storage.NewMemoryStore(0), format(), 100, noopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := repo.Observe(ctx)

	initial := receive(t, ch)
	if !initial.IsSuccess() {
		t.Fatal("initial emission should be the current (empty) snapshot")
	}
	if got := initial.MustValue(); len(got) != 0 {
		t.Fatalf("expected empty snapshot, got %d coins", len(got))
	}

	if res := repo.Refresh(context.Background()); !res.IsSuccess() {
		t.Fatal("refresh failed")
	}

	updated := receive(t, ch)
	if !updated.IsSuccess() {
		t.Fatal("expected success emission after refresh")
	}
	if got := updated.MustValue(); len(got) != 1 || got[0].ID != "eth" {
		t.Fatalf("unexpected updated snapshot: %+v", got)
	}
}

func TestDetailsFetchMissingEnvelope(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{}})
	})

	repo := NewDetailsRepository(api, format(), noopLogger())

	res := repo.Fetch(context.Background(), "btc")
	if !res.IsError() {
		t.Fatal("missing coin envelope must produce an error result")
	}
	msg, _ := res.Message()
	if msg != MsgDetailsUnavailable {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestDetailsFetchSuccess(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"coin": map[string]any{
					"uuid":   "btc",
					"symbol": "BTC",
					"name":   "Bitcoin",
					"price":  "30000",
					"rank":   1,
				},
			},
		})
	})

	repo := NewDetailsRepository(api, format(), noopLogger())

	res := repo.Fetch(context.Background(), "btc")
	if !res.IsSuccess() {
		t.Fatal("expected success")
	}
	details := res.MustValue()
	if details.ID != "btc" || details.Name != "Bitcoin" {
		t.Fatalf("unexpected details: %+v", details)
	}
	if details.CurrentPrice.Display != "$30,000.00" {
		t.Fatalf("unexpected price display: %s", details.CurrentPrice.Display)
	}
	if details.MarketCapRank != "1" {
		t.Fatalf("unexpected rank: %q", details.MarketCapRank)
	}
	if details.AllTimeHigh.Display != "$ --" {
		t.Fatalf("absent all-time high should be unavailable, got %q", details.AllTimeHigh.Display)
	}
}

func TestDetailsStreamEmitsLoadingFirst(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	repo := NewDetailsRepository(api, format(), noopLogger())

	ch := repo.Stream(context.Background(), "btc")

	first := receive(t, ch)
	if !first.IsLoading() {
		t.Fatal("first emission must be Loading")
	}
	second := receive(t, ch)
	if !second.IsError() {
		t.Fatal("terminal emission must be Error for a failing upstream")
	}
	if _, ok := <-ch; ok {
		t.Fatal("stream must close after the terminal emission")
	}
}

func TestChartFetchEndToEnd(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"change": "2.5",
				"history": []any{
					map[string]any{"price": "20000.20"},
					map[string]any{"price": "30000.47"},
					map[string]any{"price": nil},
					map[string]any{"price": "25000.89"},
					map[string]any{"price": "27000.44"},
				},
			},
		})
	})

	repo := NewChartRepository(api, format(), noopLogger())

	res := repo.Fetch(context.Background(), "btc", domain.Period24H)
	if !res.IsSuccess() {
		t.Fatal("expected success")
	}

	chart := res.MustValue()
	want := []string{"27000.44", "25000.89", "30000.47", "20000.20"}
	if len(chart.Prices) != len(want) {
		t.Fatalf("expected %d prices, got %d", len(want), len(chart.Prices))
	}
	for i, w := range want {
		if !chart.Prices[i].Amount.Equal(decimal.RequireFromString(w)) {
			t.Fatalf("price %d: want %s, got %s", i, w, chart.Prices[i].Amount)
		}
	}
	if chart.Min == nil || !chart.Min.Equal(decimal.RequireFromString("20000.20")) {
		t.Fatalf("unexpected min: %v", chart.Min)
	}
	if chart.Max == nil || !chart.Max.Equal(decimal.RequireFromString("30000.47")) {
		t.Fatalf("unexpected max: %v", chart.Max)
	}
}

func TestFavouritesToggleAndRefresh(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		ids := r.URL.Query()["uuids[]"]
		coins := make([]map[string]any, 0, len(ids))
		for _, id := range ids {
			coins = append(coins, map[string]any{"uuid": id, "name": "Bitcoin", "price": "100.5"})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"coins": coins},
		})
	})

	repo := NewFavouritesRepository(api, storage.NewMemoryStore(0), format(), noopLogger())
	ctx := context.Background()

	member, err := repo.Toggle(ctx, "btc")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !member {
		t.Fatal("first toggle must add membership")
	}
	if got, _ := repo.IsFavourite(ctx, "btc"); !got {
		t.Fatal("membership not recorded")
	}

	res := repo.Refresh(ctx)
	if !res.IsSuccess() {
		t.Fatal("refresh failed")
	}
	if coins := res.MustValue(); len(coins) != 1 || coins[0].ID != "btc" {
		t.Fatalf("unexpected favourites: %+v", coins)
	}

	member, err = repo.Toggle(ctx, "btc")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if member {
		t.Fatal("second toggle must remove membership")
	}
	if got, _ := repo.IsFavourite(ctx, "btc"); got {
		t.Fatal("membership not removed")
	}

	// Removal is visible without a network refresh.
	snapshot := repo.Favourites(ctx)
	if coins := snapshot.MustValue(); len(coins) != 0 {
		t.Fatalf("removed favourite still visible: %+v", coins)
	}
}

func TestSearchFetch(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") != "bit" {
			t.Errorf("unexpected query %q", r.URL.Query().Get("query"))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"coins": []map[string]any{
					{"uuid": "btc", "symbol": "BTC", "name": "Bitcoin"},
				},
			},
		})
	})

	repo := NewSearchRepository(api, noopLogger())

	res := repo.Fetch(context.Background(), "bit")
	if !res.IsSuccess() {
		t.Fatal("expected success")
	}
	if coins := res.MustValue(); len(coins) != 1 || coins[0].ID != "btc" {
		t.Fatalf("unexpected results: %+v", coins)
	}
}

func TestStatsFetchError(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	repo := NewStatsRepository(api, format(), noopLogger())

	res := repo.Fetch(context.Background())
	if !res.IsError() {
		t.Fatal("expected error")
	}
	msg, _ := res.Message()
	if msg != MsgStatsUnavailable {
		t.Fatalf("unexpected message: %q", msg)
	}
}
