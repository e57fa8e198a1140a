package db

import (
	"errors"
	"fmt"

	"github.com/OFFIS-RIT/pedigree/backend/pkg/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// DefaultMigrationsPath is the migration source used when none is configured.
const DefaultMigrationsPath = "file://migrations"

// MigrateUp applies all pending migrations from sourceURL to the database at databaseURL.
func MigrateUp(sourceURL, databaseURL string) error {
	m, err := newMigrate(sourceURL, databaseURL)
	if err != nil {
		return err
	}
	defer closeMigrate(m)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	logger.Info("[DB] Migrations applied", "version", version, "dirty", dirty)

	return nil
}

// MigrateDown rolls back the given number of migrations.
func MigrateDown(sourceURL, databaseURL string, steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}

	m, err := newMigrate(sourceURL, databaseURL)
	if err != nil {
		return err
	}
	defer closeMigrate(m)

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}

	return nil
}

func newMigrate(sourceURL, databaseURL string) (*migrate.Migrate, error) {
	if sourceURL == "" {
		sourceURL = DefaultMigrationsPath
	}
	if databaseURL == "" {
		return nil, errors.New("database url is empty")
	}

	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise migrations: %w", err)
	}
	return m, nil
}

func closeMigrate(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		logger.Warn("[DB] Failed to close migration source", "err", srcErr)
	}
	if dbErr != nil {
		logger.Warn("[DB] Failed to close migration database", "err", dbErr)
	}
}
