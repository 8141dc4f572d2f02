package database

import (
	"context"
	"database/sql"
)

// runMigrations creates the database schema if needed
func runMigrations(ctx context.Context, db *sql.DB) error {
	// Append-only log; seq preserves publish order
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS notifications (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			type TEXT NOT NULL,
			message TEXT NOT NULL,
			card_id TEXT NOT NULL,
			for_user TEXT NOT NULL,
			created_at TEXT NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create index for per-user history queries
	_, err = db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_notifications_user
		ON notifications(for_user, seq)
	`)
	if err != nil {
		return err
	}

	return nil
}
