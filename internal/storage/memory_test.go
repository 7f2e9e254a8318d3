package storage

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(id string, price string) CoinRow {
	return CoinRow{
		ID:        id,
		Symbol:    "SYM",
		Name:      id,
		Price:     decimal.RequireFromString(price),
		UpdatedAt: time.Now(),
	}
}

func TestMemoryStoreReplaceCoins(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	rows, err := store.ListCoins(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	require.NoError(t, store.ReplaceCoins(ctx, []CoinRow{row("btc", "100.5"), row("eth", "2000")}))

	rows, err = store.ListCoins(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "btc", rows[0].ID)
	assert.Equal(t, "eth", rows[1].ID)

	// Replace is a full swap, not a merge.
	require.NoError(t, store.ReplaceCoins(ctx, []CoinRow{row("sol", "150")}))

	rows, err = store.ListCoins(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "sol", rows[0].ID)
}

func TestMemoryStoreSnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	require.NoError(t, store.ReplaceCoins(ctx, []CoinRow{row("btc", "100.5")}))

	first, err := store.ListCoins(ctx)
	require.NoError(t, err)
	first[0].ID = "mutated"

	second, err := store.ListCoins(ctx)
	require.NoError(t, err)
	assert.Equal(t, "btc", second[0].ID)
}

func TestMemoryStoreFavouriteCoins(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	require.NoError(t, store.ReplaceFavouriteCoins(ctx, []CoinRow{row("btc", "100.5")}))

	rows, err := store.ListFavouriteCoins(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "btc", rows[0].ID)

	// Favourite and coins snapshots are independent.
	coins, err := store.ListCoins(ctx)
	require.NoError(t, err)
	assert.Empty(t, coins)
}

func TestMemoryStoreFavouriteIDs(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	member, err := store.IsFavourite(ctx, "btc")
	require.NoError(t, err)
	assert.False(t, member)

	require.NoError(t, store.AddFavourite(ctx, "btc"))
	require.NoError(t, store.AddFavourite(ctx, "eth"))
	require.NoError(t, store.AddFavourite(ctx, "btc")) // idempotent

	ids, err := store.ListFavouriteIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"btc", "eth"}, ids)

	member, err = store.IsFavourite(ctx, "btc")
	require.NoError(t, err)
	assert.True(t, member)

	require.NoError(t, store.RemoveFavourite(ctx, "btc"))
	require.NoError(t, store.RemoveFavourite(ctx, "btc")) // idempotent

	ids, err = store.ListFavouriteIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"eth"}, ids)
}
