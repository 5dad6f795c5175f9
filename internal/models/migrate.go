package models

import (
	"context"
	"database/sql"
)

// Migrate creates the pastes table and its indexes if they do not exist yet.
// The created_at index keeps ListPastes from scanning once the table grows.
func Migrate(ctx context.Context, db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS pastes (
			id TEXT PRIMARY KEY,
			content BYTEA NOT NULL,
			created_at BIGINT NOT NULL,
			expires_at BIGINT,
			remaining_views BIGINT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pastes_created_at ON pastes (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_pastes_expires_at ON pastes (expires_at) WHERE expires_at IS NOT NULL`,
	}

	for _, query := range queries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return err
		}
	}

	return nil
}
