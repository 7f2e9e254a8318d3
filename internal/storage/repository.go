package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotConfigured indicates the storage pool was not initialised.
	ErrNotConfigured = errors.New("storage: pool not configured")
)

const (
	deleteCoinsSQL = `DELETE FROM coins;`

	insertCoinSQL = `INSERT INTO coins (
        position,
        id,
        symbol,
        name,
        icon_url,
        price,
        change,
        sparkline,
        updated_at
    ) VALUES (
        $1,$2,$3,$4,$5,$6,$7,$8,$9
    );`

	listCoinsSQL = `SELECT
        position,
        id,
        symbol,
        name,
        icon_url,
        price,
        change,
        sparkline,
        updated_at
    FROM coins
    ORDER BY position;`

	deleteFavouriteCoinsSQL = `DELETE FROM favourite_coins;`

	insertFavouriteCoinSQL = `INSERT INTO favourite_coins (
        position,
        id,
        symbol,
        name,
        icon_url,
        price,
        change,
        sparkline,
        updated_at
    ) VALUES (
        $1,$2,$3,$4,$5,$6,$7,$8,$9
    );`

	listFavouriteCoinsSQL = `SELECT
        position,
        id,
        symbol,
        name,
        icon_url,
        price,
        change,
        sparkline,
        updated_at
    FROM favourite_coins
    ORDER BY position;`

	addFavouriteSQL = `INSERT INTO favourite_ids (id, added_at)
    VALUES ($1, $2)
    ON CONFLICT (id) DO NOTHING;`

	removeFavouriteSQL = `DELETE FROM favourite_ids WHERE id = $1;`

	isFavouriteSQL = `SELECT EXISTS (SELECT 1 FROM favourite_ids WHERE id = $1);`

	listFavouriteIDsSQL = `SELECT id FROM favourite_ids ORDER BY added_at;`
)

// CoinCache defines operations on the cached coins snapshot.
type CoinCache interface {
	ReplaceCoins(ctx context.Context, rows []CoinRow) error
	ListCoins(ctx context.Context) ([]CoinRow, error)
}

// FavouriteCache defines favourite membership and snapshot operations.
// Membership is keyed by coin id; the snapshot rows exist only for display
// and are refreshed from the network like any other cached resource.
type FavouriteCache interface {
	ReplaceFavouriteCoins(ctx context.Context, rows []CoinRow) error
	ListFavouriteCoins(ctx context.Context) ([]CoinRow, error)
	AddFavourite(ctx context.Context, id string) error
	RemoveFavourite(ctx context.Context, id string) error
	IsFavourite(ctx context.Context, id string) (bool, error)
	ListFavouriteIDs(ctx context.Context) ([]string, error)
}

// Store implements the cache interfaces on a PostgreSQL pool.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wires a pgx pool into a Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close releases the underlying pool resources.
func (s *Store) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

func (s *Store) getPool() (*pgxpool.Pool, error) {
	if s == nil || s.pool == nil {
		return nil, ErrNotConfigured
	}
	return s.pool, nil
}

// ReplaceCoins swaps the cached coins snapshot atomically.
func (s *Store) ReplaceCoins(ctx context.Context, rows []CoinRow) error {
	return s.replaceSnapshot(ctx, deleteCoinsSQL, insertCoinSQL, rows)
}

// ListCoins returns the cached coins snapshot in upstream order.
func (s *Store) ListCoins(ctx context.Context) ([]CoinRow, error) {
	return s.listSnapshot(ctx, listCoinsSQL)
}

// ReplaceFavouriteCoins swaps the cached favourite snapshot atomically.
func (s *Store) ReplaceFavouriteCoins(ctx context.Context, rows []CoinRow) error {
	return s.replaceSnapshot(ctx, deleteFavouriteCoinsSQL, insertFavouriteCoinSQL, rows)
}

// ListFavouriteCoins returns the cached favourite snapshot.
func (s *Store) ListFavouriteCoins(ctx context.Context) ([]CoinRow, error) {
	return s.listSnapshot(ctx, listFavouriteCoinsSQL)
}

func (s *Store) replaceSnapshot(ctx context.Context, deleteSQL, insertSQL string, rows []CoinRow) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin snapshot replace: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, deleteSQL); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}

	for _, row := range rows {
		sparkline, err := encodeSparkline(row.Sparkline)
		if err != nil {
			return err
		}
		updatedAt := row.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = time.Now().UTC()
		}
		if _, err := tx.Exec(ctx, insertSQL,
			row.Position,
			row.ID,
			row.Symbol,
			row.Name,
			row.IconURL,
			row.Price.String(),
			row.Change.String(),
			sparkline,
			updatedAt,
		); err != nil {
			return fmt.Errorf("insert snapshot row: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit snapshot replace: %w", err)
	}
	return nil
}

func (s *Store) listSnapshot(ctx context.Context, listSQL string) ([]CoinRow, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listSQL)
	if queryErr != nil {
		return nil, fmt.Errorf("list snapshot: %w", queryErr)
	}
	defer rows.Close()

	out := make([]CoinRow, 0)
	for rows.Next() {
		row, scanErr := scanCoinRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, row)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

// AddFavourite records membership for id. Adding an existing favourite is a
// no-op.
func (s *Store) AddFavourite(ctx context.Context, id string) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}
	if _, execErr := pool.Exec(ctx, addFavouriteSQL, id, time.Now().UTC()); execErr != nil {
		return fmt.Errorf("add favourite: %w", execErr)
	}
	return nil
}

// RemoveFavourite deletes membership for id.
func (s *Store) RemoveFavourite(ctx context.Context, id string) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}
	if _, execErr := pool.Exec(ctx, removeFavouriteSQL, id); execErr != nil {
		return fmt.Errorf("remove favourite: %w", execErr)
	}
	return nil
}

// IsFavourite reports membership for id.
func (s *Store) IsFavourite(ctx context.Context, id string) (bool, error) {
	pool, err := s.getPool()
	if err != nil {
		return false, err
	}
	var member bool
	if scanErr := pool.QueryRow(ctx, isFavouriteSQL, id).Scan(&member); scanErr != nil {
		return false, fmt.Errorf("check favourite: %w", scanErr)
	}
	return member, nil
}

// ListFavouriteIDs returns all favourite ids in insertion order.
func (s *Store) ListFavouriteIDs(ctx context.Context) ([]string, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listFavouriteIDsSQL)
	if queryErr != nil {
		return nil, fmt.Errorf("list favourite ids: %w", queryErr)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return ids, nil
}

func encodeSparkline(points []decimal.Decimal) ([]byte, error) {
	values := make([]string, len(points))
	for i, p := range points {
		values[i] = p.String()
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("encode sparkline: %w", err)
	}
	return encoded, nil
}

func decodeSparkline(raw []byte) ([]decimal.Decimal, error) {
	if len(raw) == 0 {
		return []decimal.Decimal{}, nil
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("decode sparkline: %w", err)
	}
	points := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("parse sparkline point: %w", err)
		}
		points = append(points, d)
	}
	return points, nil
}

func scanCoinRow(rows pgx.Rows) (CoinRow, error) {
	var (
		position  int
		id        string
		symbol    string
		name      string
		iconURL   string
		priceStr  string
		changeStr string
		sparkline []byte
		updatedAt time.Time
	)

	if err := rows.Scan(
		&position,
		&id,
		&symbol,
		&name,
		&iconURL,
		&priceStr,
		&changeStr,
		&sparkline,
		&updatedAt,
	); err != nil {
		return CoinRow{}, err
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return CoinRow{}, fmt.Errorf("parse price: %w", err)
	}
	change, err := decimal.NewFromString(changeStr)
	if err != nil {
		return CoinRow{}, fmt.Errorf("parse change: %w", err)
	}
	points, err := decodeSparkline(sparkline)
	if err != nil {
		return CoinRow{}, err
	}

	return CoinRow{
		Position:  position,
		ID:        id,
		Symbol:    symbol,
		Name:      name,
		IconURL:   iconURL,
		Price:     price,
		Change:    change,
		Sparkline: points,
		UpdatedAt: updatedAt,
	}, nil
}
