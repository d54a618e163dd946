package repository

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations runs database migrations
func RunMigrations(databaseURL string) error {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("open migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("create migration instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		// Handle dirty database state by forcing to the previous clean version
		var dirtyErr migrate.ErrDirty
		if !errors.As(err, &dirtyErr) {
			return fmt.Errorf("run migrations: %w", err)
		}

		version, dirty, verr := m.Version()
		if verr != nil {
			return fmt.Errorf("get current migration version: %w", verr)
		}
		if !dirty {
			return fmt.Errorf("dirty migrations at version %d and could not auto-fix", dirtyErr.Version)
		}

		forceVersion := max(int(version)-1, 0)
		if ferr := m.Force(forceVersion); ferr != nil {
			return fmt.Errorf("force clean migration version %d: %w", forceVersion, ferr)
		}

		// Retry migrations after cleaning dirty state
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("rerun migrations after dirty state: %w", err)
		}
	}

	return nil
}
