package helper

import (
	"errors"
	"fmt"
	"net"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"

	"loft/config"
)

const migrationSource = "file://migrations/postgres"

func migrator(cfg *config.Config) (*migrate.Migrate, error) {
	write := cfg.DB.Postgres.Write

	name := write.Name
	if cfg.DB.Postgres.Prefix != "" {
		name = cfg.DB.Postgres.Prefix + name
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s&x-migrations-table=%s",
		write.Username,
		write.Password,
		net.JoinHostPort(write.Host, write.Port),
		name,
		write.SSLMode,
		cfg.DB.Postgres.MigrationTable,
	)

	mig, err := migrate.New(migrationSource, dsn)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func run(cfg *config.Config, step func(*migrate.Migrate) error, done string) error {
	mig, err := migrator(cfg)
	if err != nil {
		return err
	}

	defer mig.Close()

	if err := step(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Info().Msg(done)

	return nil
}

// Up applies every pending migration.
func Up(cfg *config.Config) error {
	return run(cfg, (*migrate.Migrate).Up, "Database migrations completed successfully")
}

// StepUp applies exactly one pending migration.
func StepUp(cfg *config.Config) error {
	return run(cfg, func(m *migrate.Migrate) error { return m.Steps(1) }, "Database migrations completed successfully")
}

// Down rolls back the most recent migration.
func Down(cfg *config.Config) error {
	return run(cfg, func(m *migrate.Migrate) error { return m.Steps(-1) }, "Database migration rolled back successfully")
}

// Drop reverts every applied migration.
func Drop(cfg *config.Config) error {
	return run(cfg, (*migrate.Migrate).Down, "Database migrations rolled back successfully")
}
