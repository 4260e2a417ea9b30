// ABOUTME: SQLite-backed credential store using modernc.org/sqlite
// ABOUTME: Supports multiple named profiles sharing one database file

package credstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists credential pairs in a SQLite database, one row per
// profile. The pair is written in a single upsert so it can never be split.
type SQLiteStore struct {
	db      *sql.DB
	profile string
}

// NewSQLiteStore opens (or creates) the database at path and binds the store
// to the given profile. Parent directories are created if needed.
func NewSQLiteStore(path, profile string) (*SQLiteStore, error) {
	if profile == "" {
		profile = "default"
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS credentials (
			profile TEXT PRIMARY KEY,
			access_token TEXT NOT NULL,
			refresh_token TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db, profile: profile}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save upserts the pair for this profile in one statement.
func (s *SQLiteStore) Save(pair Pair) error {
	_, err := s.db.Exec(`
		INSERT INTO credentials (profile, access_token, refresh_token, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(profile) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			updated_at = excluded.updated_at
	`, s.profile, pair.AccessToken, pair.RefreshToken)
	if err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}
	return nil
}

// Load returns the pair for this profile, absent when missing or incomplete.
func (s *SQLiteStore) Load() (Pair, bool) {
	var pair Pair
	err := s.db.QueryRow(
		"SELECT access_token, refresh_token FROM credentials WHERE profile = ?",
		s.profile,
	).Scan(&pair.AccessToken, &pair.RefreshToken)
	if err != nil || !pair.complete() {
		return Pair{}, false
	}
	return pair, true
}

// Clear deletes this profile's row.
func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec("DELETE FROM credentials WHERE profile = ?", s.profile); err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}
	return nil
}
