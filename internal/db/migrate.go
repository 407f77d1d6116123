package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// The newsdesk schema: 000001 creates users (unique email), 000002 creates
// articles referencing users.
//
//go:embed migrations/*.sql
var migrationsFS embed.FS

func schemaSource() (source.Driver, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open embedded newsdesk migrations: %w", err)
	}
	return src, nil
}

// Run brings the newsdesk schema at databaseURL (a postgres:// URL, see
// config.DatabaseURL) up to the latest embedded migration and returns the
// resulting version. A schema that is already current is not an error; one
// left dirty by a failed migration is.
func Run(databaseURL string) (uint, error) {
	src, err := schemaSource()
	if err != nil {
		return 0, err
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return 0, fmt.Errorf("connect migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("apply newsdesk migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("schema version %d is dirty", version)
	}
	return version, nil
}
