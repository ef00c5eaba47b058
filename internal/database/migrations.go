package database

const schema = `
CREATE TABLE IF NOT EXISTS reconcile_entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    name TEXT NOT NULL,
    operation TEXT NOT NULL CHECK (operation IN ('create', 'update')),
    webhook_id TEXT NOT NULL DEFAULT '',
    dry_run BOOLEAN NOT NULL DEFAULT false,
    error TEXT NOT NULL DEFAULT '',
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_reconcile_run ON reconcile_entries(run_id);
CREATE INDEX IF NOT EXISTS idx_reconcile_name ON reconcile_entries(name, created_at);
`
