package app

import (
	"database/sql"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/prathmeshai01/task-manager/internal/config"
)

// MustMigrate applies pending schema migrations before the
// server starts accepting traffic.
func MustMigrate() {
	cfg := config.Global()

	db, err := sql.Open("pgx", cfg.Postgres.ConnURL())
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to open migration connection")
		panic(err)
	}
	defer func() { _ = db.Close() }()

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to create migration driver")
		panic(err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		cfg.Migrations.Path,
		cfg.Postgres.Database,
		driver,
	)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("path", cfg.Migrations.Path).
			Msg("failed to create migration instance")
		panic(err)
	}

	err = m.Up()
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			globalLogger.Info().Msg("database schema is up to date")
			return
		}

		globalLogger.Error().
			Err(err).
			Msg("failed to apply migrations")
		panic(err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to read migration version")
		panic(err)
	}
	globalLogger.Info().
		Uint("version", version).
		Bool("dirty", dirty).
		Msg("applied migrations")
}
