// Package sqlite provides the local SQLite-backed stores for the client:
// the favorites mirror and the key/value preference store. Both stores keep
// display data only; the backend remains the source of truth.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Open opens (creating if necessary) the client database at path. Use
// ":memory:" for an ephemeral database in tests.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	return db, nil
}
