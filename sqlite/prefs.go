package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrPrefNotFound is returned when a preference key has never been set.
var ErrPrefNotFound = errors.New("preference not found")

const prefsSchema = `
CREATE TABLE IF NOT EXISTS prefs (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// PrefsStore is a small key/value store for persisted client preferences
// (nuggets settings, session refresh token). Values are opaque bytes;
// callers own the encoding.
type PrefsStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPrefsStore creates the store and its table if missing.
func NewPrefsStore(db *sql.DB, logger *zap.Logger) (*PrefsStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, err := db.Exec(prefsSchema); err != nil {
		return nil, fmt.Errorf("failed to create prefs table: %w", err)
	}
	return &PrefsStore{db: db, logger: logger}, nil
}

// Get returns the stored value for key, or ErrPrefNotFound.
func (s *PrefsStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM prefs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPrefNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pref %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (s *PrefsStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO prefs (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write pref %q: %w", key, err)
	}
	s.logger.Debug("Stored preference", zap.String("key", key))
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *PrefsStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM prefs WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete pref %q: %w", key, err)
	}
	return nil
}
