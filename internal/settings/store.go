// Package settings persists builder metadata in its own small database
// file next to the generated dictionaries. Values are JSON-encoded so a
// key can hold anything from a version string to a structure.
package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/lexibase/lexibase/internal/adapter/sqlite"
	"github.com/lexibase/lexibase/internal/domain"
)

// Key identifies a settings entry.
type Key string

const (
	// KeyDataVersion marks the data format version of an output directory.
	KeyDataVersion Key = "data_version"
)

// FileName is the settings database file name inside an output directory.
const FileName = "settings.db"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`

const (
	getSQL = `SELECT value FROM settings WHERE key = ?`
	setSQL = `INSERT INTO settings (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value`
)

// Store reads and writes settings entries.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the settings database inside dir.
func Open(dir string) (*Store, error) {
	db, err := sqlite.Open(filepath.Join(dir, FileName))
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(context.Background(), schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure settings schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get decodes the value stored under key into out. Returns ErrNotFound
// when the key has never been set.
func (s *Store) Get(ctx context.Context, key Key, out any) error {
	var raw string
	err := s.db.QueryRowContext(ctx, getSQL, string(key)).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("setting %s: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("setting %s: decode: %w", key, err)
	}
	return nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key Key, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("setting %s: encode: %w", key, err)
	}
	if _, err := s.db.ExecContext(ctx, setSQL, string(key), string(raw)); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return nil
}
