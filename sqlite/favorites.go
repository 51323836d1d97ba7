package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/quoteme/go-quoteme/core/listview"
)

const favoritesSchema = `
CREATE TABLE IF NOT EXISTS favorites (
	id              INTEGER PRIMARY KEY,
	quote           TEXT NOT NULL,
	author          TEXT NOT NULL DEFAULT '',
	tag             TEXT NOT NULL DEFAULT '',
	favorites_count INTEGER NOT NULL DEFAULT 0,
	created_at      TEXT NOT NULL DEFAULT ''
)`

// FavoritesStore is the local mirror of the caller's favorite quotes. It
// lets the favorites screen render and filter offline; the backend copy is
// authoritative and the mirror is rewritten on every successful refresh.
type FavoritesStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewFavoritesStore creates the store and its table if missing.
func NewFavoritesStore(db *sql.DB, logger *zap.Logger) (*FavoritesStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, err := db.Exec(favoritesSchema); err != nil {
		return nil, fmt.Errorf("failed to create favorites table: %w", err)
	}
	return &FavoritesStore{db: db, logger: logger}, nil
}

// Add inserts or replaces a favorite quote record.
func (s *FavoritesStore) Add(ctx context.Context, rec listview.Record) error {
	id, ok := recordID(rec)
	if !ok {
		return fmt.Errorf("favorite record has no id: %+v", rec)
	}

	s.logger.Debug("Storing favorite", zap.Int64("id", id))
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO favorites (id, quote, author, tag, favorites_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, textField(rec, "quote"), textField(rec, "author"), textField(rec, "tag"),
		intField(rec, "favorites_count"), textField(rec, "created_at"))
	if err != nil {
		return fmt.Errorf("failed to store favorite %d: %w", id, err)
	}
	return nil
}

// Remove deletes a favorite by quote id. Removing an absent id is not an
// error.
func (s *FavoritesStore) Remove(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM favorites WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to remove favorite %d: %w", id, err)
	}
	return nil
}

// Contains reports whether a quote id is stored as a favorite.
func (s *FavoritesStore) Contains(ctx context.Context, id int64) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM favorites WHERE id = ?`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to look up favorite %d: %w", id, err)
	}
	return n > 0, nil
}

// List returns every stored favorite as a quote record, in insertion id
// order.
func (s *FavoritesStore) List(ctx context.Context) ([]listview.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, quote, author, tag, favorites_count, created_at FROM favorites ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	var records []listview.Record
	for rows.Next() {
		var (
			id, count                     int64
			quote, author, tag, createdAt string
		)
		if err := rows.Scan(&id, &quote, &author, &tag, &count, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite row: %w", err)
		}
		records = append(records, listview.Record{
			"id":              id,
			"quote":           quote,
			"author":          author,
			"tag":             tag,
			"favorites_count": count,
			"created_at":      createdAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after scanning favorites: %w", err)
	}
	return records, nil
}

// ReplaceAll atomically rewrites the mirror with the given records.
func (s *FavoritesStore) ReplaceAll(ctx context.Context, records []listview.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM favorites`); err != nil {
		return fmt.Errorf("failed to clear favorites: %w", err)
	}
	for _, rec := range records {
		id, ok := recordID(rec)
		if !ok {
			return fmt.Errorf("favorite record has no id: %+v", rec)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO favorites (id, quote, author, tag, favorites_count, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, textField(rec, "quote"), textField(rec, "author"), textField(rec, "tag"),
			intField(rec, "favorites_count"), textField(rec, "created_at"))
		if err != nil {
			return fmt.Errorf("failed to store favorite %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit favorites rewrite: %w", err)
	}
	s.logger.Debug("Rewrote favorites mirror", zap.Int("count", len(records)))
	return nil
}

func recordID(rec listview.Record) (int64, bool) {
	switch v := rec["id"].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

func textField(rec listview.Record, name string) string {
	s, _ := rec[name].(string)
	return s
}

func intField(rec listview.Record, name string) int64 {
	switch v := rec[name].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}
