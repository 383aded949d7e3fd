package postgres

import (
	"context"
	"embed"
	"io/fs"
	"path"
	"sort"

	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/pressly/goose/v3"
	"github.com/samber/lo"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migration is one embedded schema file
type Migration struct {
	Version string
	SQL     string
}

// Migrations returns the embedded migrations ordered by version
func Migrations() ([]Migration, error) {
	names, err := fs.Glob(migrationFS, "migrations/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	migrations := make([]Migration, 0, len(names))
	for _, name := range names {
		body, err := migrationFS.ReadFile(name)
		if err != nil {
			return nil, err
		}
		migrations = append(migrations, Migration{
			Version: path.Base(name),
			SQL:     string(body),
		})
	}
	return migrations, nil
}

func (db *DB) migrationProvider() (*goose.Provider, error) {
	dir, err := fs.Sub(migrationFS, "migrations")
	if err != nil {
		return nil, err
	}
	return goose.NewProvider(goose.DialectPostgres, db.DB.DB, dir)
}

// Migrate applies the pending embedded migrations and returns their file
// names. With dryRun set nothing is executed and the pending files are
// returned instead.
func (db *DB) Migrate(ctx context.Context, dryRun bool) ([]string, error) {
	provider, err := db.migrationProvider()
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to read embedded migrations").
			Mark(ierr.ErrSystem)
	}

	if dryRun {
		statuses, err := provider.Status(ctx)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to read migration status").
				Mark(ierr.ErrDatabase)
		}
		pending := lo.FilterMap(statuses, func(s *goose.MigrationStatus, _ int) (string, bool) {
			return path.Base(s.Source.Path), s.State == goose.StatePending
		})
		for _, version := range pending {
			db.logger.Infow("pending migration", "version", version)
		}
		return pending, nil
	}

	results, err := provider.Up(ctx)
	applied := lo.FilterMap(results, func(r *goose.MigrationResult, _ int) (string, bool) {
		return path.Base(r.Source.Path), r.Error == nil
	})
	if err != nil {
		return applied, ierr.WithError(err).
			WithHint("Failed to apply database migrations").
			WithReportableDetails(map[string]any{
				"applied": applied,
			}).
			Mark(ierr.ErrDatabase)
	}

	for _, r := range results {
		db.logger.Infow("applied migration",
			"version", path.Base(r.Source.Path),
			"duration", r.Duration,
		)
	}
	return applied, nil
}
