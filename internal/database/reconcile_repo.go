package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mixelka/chatadapter/pkg/models"
)

// ErrNotFound is returned when a record is not found
var ErrNotFound = errors.New("record not found")

// RecordEntry appends one reconcile outcome
func (db *DB) RecordEntry(ctx context.Context, entry *models.ReconcileEntry) error {
	query := `
		INSERT INTO reconcile_entries (run_id, name, operation, webhook_id, dry_run, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	result, err := db.ExecContext(ctx, query,
		entry.RunID,
		entry.Name,
		entry.Operation,
		entry.WebhookID,
		entry.DryRun,
		entry.Error,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record reconcile entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	entry.ID = id
	return nil
}

// ListByRun returns the entries of one run in insertion order
func (db *DB) ListByRun(ctx context.Context, runID string) ([]*models.ReconcileEntry, error) {
	var entries []*models.ReconcileEntry
	query := `SELECT * FROM reconcile_entries WHERE run_id = ? ORDER BY id`
	err := db.SelectContext(ctx, &entries, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reconcile entries: %w", err)
	}
	return entries, nil
}

// LastEntry returns the most recent entry recorded for a webhook name
func (db *DB) LastEntry(ctx context.Context, name string) (*models.ReconcileEntry, error) {
	var entry models.ReconcileEntry
	query := `SELECT * FROM reconcile_entries WHERE name = ? ORDER BY id DESC LIMIT 1`
	err := db.GetContext(ctx, &entry, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reconcile entry: %w", err)
	}
	return &entry, nil
}
