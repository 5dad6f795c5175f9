package durable

import (
	"context"
	"database/sql"
)

// TestConnection connects to the local development database used by
// integration tests.
func TestConnection(ctx context.Context) (*sql.DB, error) {
	config := ConnectionInfo{
		Host:     "localhost",
		Port:     5432,
		Username: "postgres",
		Password: "password",
		Database: "vanishbin_test",
	}
	return OpenDatabaseClient(ctx, config.String())
}
