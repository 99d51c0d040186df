package kv

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationFiles embed.FS

const (
	dialectSQLite   = "sqlite"
	dialectPostgres = "postgres"
)

// newMigrate builds a migrator for db from the embedded files of dialect.
// Closing the migrator closes db.
func newMigrate(db *sql.DB, dialect string) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationFiles, "migrations/"+dialect)
	if err != nil {
		return nil, fmt.Errorf("failed to open migrations: %w", err)
	}

	var driver database.Driver
	switch dialect {
	case dialectSQLite:
		driver, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	case dialectPostgres:
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	default:
		return nil, fmt.Errorf("unknown migration dialect %q", dialect)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	return migrate.NewWithInstance("iofs", source, dialect, driver)
}

// runMigrations applies every pending migration of dialect and logs the
// resulting schema version. The migration handle db is closed afterwards.
func runMigrations(db *sql.DB, dialect string, logger *zap.Logger) error {
	m, err := newMigrate(db, dialect)
	if err != nil {
		db.Close()
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	if dirty {
		logger.Warn("storage schema is dirty, a migration failed",
			zap.String("dialect", dialect),
			zap.Uint("version", version))
	} else {
		logger.Info("storage schema migrated",
			zap.String("dialect", dialect),
			zap.Uint("version", version))
	}
	return nil
}
