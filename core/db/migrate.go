package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations exposes the embedded goose migrations, rooted at the migrations directory.
func Migrations() (fs.FS, error) {
	return fs.Sub(migrationsFS, "migrations")
}

// Migrate applies every pending migration and returns the resulting schema version.
func (db *DB) Migrate(ctx context.Context) (int64, error) {
	provider, err := db.migrationProvider()
	if err != nil {
		return 0, err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("applying migrations: %w", err)
	}
	for _, r := range results {
		slog.InfoContext(ctx, "migration applied",
			"version", r.Source.Version,
			"path", r.Source.Path,
			"duration", r.Duration,
		)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return version, nil
}

// MigrateDown rolls back the most recent migration.
func (db *DB) MigrateDown(ctx context.Context) error {
	provider, err := db.migrationProvider()
	if err != nil {
		return err
	}
	r, err := provider.Down(ctx)
	if err != nil {
		return fmt.Errorf("rolling back migration: %w", err)
	}
	if r != nil {
		slog.InfoContext(ctx, "migration rolled back", "version", r.Source.Version)
	}
	return nil
}

// MigrationStatus logs the applied state of every known migration.
func (db *DB) MigrationStatus(ctx context.Context) error {
	provider, err := db.migrationProvider()
	if err != nil {
		return err
	}
	statuses, err := provider.Status(ctx)
	if err != nil {
		return fmt.Errorf("reading migration status: %w", err)
	}
	for _, s := range statuses {
		slog.InfoContext(ctx, "migration",
			"version", s.Source.Version,
			"state", string(s.State),
			"applied_at", s.AppliedAt,
		)
	}
	return nil
}

func (db *DB) migrationProvider() (*goose.Provider, error) {
	migrations, err := Migrations()
	if err != nil {
		return nil, fmt.Errorf("loading migrations: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, stdlib.OpenDBFromPool(db.pool), migrations)
	if err != nil {
		return nil, fmt.Errorf("creating migration provider: %w", err)
	}
	return provider, nil
}
