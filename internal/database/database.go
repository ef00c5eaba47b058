// Package database keeps the registrar's audit trail in SQLite
package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNoAuditTrail is returned by OpenReadOnly when nothing was recorded yet
var ErrNoAuditTrail = errors.New("audit trail does not exist")

// DB wraps sqlx.DB
type DB struct {
	*sqlx.DB
	readOnly bool
}

// Open opens the audit trail for recording. The file, its directory and the
// schema are created when missing.
func Open(ctx context.Context, path string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// WAL lets `list` and `history` read while a sync run is writing
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000", path)
	conn, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := &DB{DB: conn}
	if err := db.Migrate(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// OpenReadOnly opens an existing audit trail for inspection. It never
// creates the file, so looking at history cannot leave an empty database
// behind.
func OpenReadOnly(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoAuditTrail, path)
		}
		return nil, fmt.Errorf("failed to stat database: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", path)
	conn, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &DB{DB: conn, readOnly: true}, nil
}

// Migrate creates the schema. It is a no-op on a read-only handle.
func (db *DB) Migrate(ctx context.Context) error {
	if db.readOnly {
		return nil
	}
	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
