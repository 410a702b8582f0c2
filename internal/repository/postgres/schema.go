package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied on startup; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS payment_outcomes (
		id                 UUID PRIMARY KEY,
		external_reference TEXT NOT NULL DEFAULT '',
		payment_id         TEXT NOT NULL DEFAULT '',
		provider_status    TEXT NOT NULL DEFAULT '',
		page               TEXT NOT NULL,
		outcome            TEXT NOT NULL,
		reason             TEXT NOT NULL DEFAULT '',
		order_number       TEXT NOT NULL DEFAULT '',
		ticket_code        TEXT NOT NULL DEFAULT '',
		created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_payment_outcomes_reference ON payment_outcomes (external_reference, created_at DESC)`,
}

// Migrate creates the portal's tables if they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
