package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate brings the schema at connStr up to the latest embedded version.
// It reports the version it ended at and whether anything was applied.
func Migrate(connStr string) (version uint, applied bool, err error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return 0, false, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return 0, false, fmt.Errorf("failed to ping database: %w", err)
	}

	// The postgres driver owns db from here and closes it with m.Close.
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		db.Close()
		return 0, false, fmt.Errorf("failed to create migrate driver: %w", err)
	}

	m, err := newMigrator(driver)
	if err != nil {
		db.Close()
		return 0, false, err
	}
	defer m.Close()

	current, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		return current, false, fmt.Errorf("database is in a dirty state at version %d", current)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return current, false, nil
		}
		return current, false, fmt.Errorf("failed to migrate to latest version: %w", err)
	}

	version, _, err = m.Version()
	if err != nil {
		return 0, true, fmt.Errorf("failed to read migrated version: %w", err)
	}
	return version, true, nil
}

func newMigrator(driver migratedb.Driver) (*migrate.Migrate, error) {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to access migrations directory: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}
