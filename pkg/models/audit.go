package models

import "time"

// ReconcileOperation is what the registrar did (or would do) for one subscription
type ReconcileOperation string

const (
	OperationCreate ReconcileOperation = "create"
	OperationUpdate ReconcileOperation = "update"
)

// ReconcileEntry is one row of the reconciliation audit trail
type ReconcileEntry struct {
	ID        int64              `db:"id"`
	RunID     string             `db:"run_id"`
	Name      string             `db:"name"`
	Operation ReconcileOperation `db:"operation"`
	WebhookID string             `db:"webhook_id"` // empty for dry-run creates and failures
	DryRun    bool               `db:"dry_run"`
	Error     string             `db:"error"`
	CreatedAt time.Time          `db:"created_at"`
}
