package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/flexprice/assignments/internal/config"
	"github.com/flexprice/assignments/internal/logger"
	"github.com/flexprice/assignments/internal/postgres"
	"github.com/samber/lo"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Print pending migrations without executing them")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	logger.Infow("Connecting to database", "host", cfg.Postgres.Host, "dbname", cfg.Postgres.DBName)

	db, err := postgres.NewDB(cfg, logger)
	if err != nil {
		logger.Fatalw("Failed to connect to postgres", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info("Running database migrations...")

	versions, err := db.Migrate(ctx, *dryRun)
	if err != nil {
		logger.Fatalw("Failed to apply migrations", "error", err, "applied", versions)
	}

	if *dryRun {
		migrations, err := postgres.Migrations()
		if err != nil {
			logger.Fatalw("Failed to read migrations", "error", err)
		}
		for _, m := range migrations {
			if lo.Contains(versions, m.Version) {
				fmt.Fprintf(os.Stdout, "-- %s\n%s\n", m.Version, m.SQL)
			}
		}
		return
	}

	fmt.Printf("Migration process completed, %d applied\n", len(versions))
}
