// Command prepare creates the postgres schema without starting the service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/vanishbin/vanishbin/internal/config"
	"github.com/vanishbin/vanishbin/internal/durable"
	"github.com/vanishbin/vanishbin/internal/models"
)

func prepareDatabase(ctx context.Context) error {
	var postgresDB string
	flag.StringVar(&postgresDB, "postgresDB", "", "Connection string for postgresql database backend")
	flag.Parse()

	db, err := durable.OpenDatabaseClient(ctx, config.GetConnectionString(postgresDB))
	if err != nil {
		return err
	}
	defer db.Close()

	return models.Migrate(ctx, db)
}

func main() {
	if err := prepareDatabase(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
