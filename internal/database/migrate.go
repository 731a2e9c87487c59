package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// Migrate applies all pending schema migrations.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	provider, err := newProvider(db)
	if err != nil {
		return err
	}

	if _, upErr := provider.Up(ctx); upErr != nil {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	return nil
}

// MigrationVersion returns the current schema version.
func MigrationVersion(ctx context.Context, db *sqlx.DB) (int64, error) {
	provider, err := newProvider(db)
	if err != nil {
		return 0, err
	}

	version, versionErr := provider.GetDBVersion(ctx)
	if versionErr != nil {
		return 0, fmt.Errorf("get schema version: %w", versionErr)
	}
	return version, nil
}

func newProvider(db *sqlx.DB) (*goose.Provider, error) {
	sub, err := fs.Sub(migrationsFS, migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("open migrations dir: %w", err)
	}

	provider, providerErr := goose.NewProvider(goose.DialectPostgres, db.DB, sub)
	if providerErr != nil {
		return nil, fmt.Errorf("create migration provider: %w", providerErr)
	}
	return provider, nil
}
