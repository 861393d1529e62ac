package migration

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

//go:embed sql/*.sql
var files embed.FS

func newSource() (source.Driver, error) {
	return iofs.New(files, "sql")
}

// openDriver pins one pooled connection for the migrator. Closing the driver
// returns that connection to the pool and leaves db open.
func openDriver(ctx context.Context, db *sql.DB) (database.Driver, error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	driver, err := postgres.WithConnection(ctx, conn, &postgres.Config{})
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return driver, nil
}

// EnsureMigrated applies every pending schema migration embedded in the binary.
// The connection it borrows from db is returned to the pool before it returns.
func EnsureMigrated(ctx context.Context, db *sql.DB, dbHost string) error {
	start := time.Now()
	logger := log.With().Str("component", "database").Str("db_host", dbHost).Logger()

	logger.Info().Str("event", "db_migration_check").Str("status", "starting").Msg("")

	fail := func(step string, err error) error {
		logger.Error().
			Str("event", "db_migration_failed").
			Str("status", "error").
			Str("migration_step", step).
			Err(err).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("")
		return fmt.Errorf("migration %s: %w", step, err)
	}

	src, err := newSource()
	if err != nil {
		return fail("open_source", err)
	}
	driver, err := openDriver(ctx, db)
	if err != nil {
		_ = src.Close()
		return fail("open_driver", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		_ = src.Close()
		_ = driver.Close()
		return fail("init", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			logger.Warn().AnErr("source_error", srcErr).AnErr("driver_error", dbErr).Msg("close migrator")
		}
	}()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			m.GracefulStop <- true
		case <-done:
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info().
				Str("event", "db_migration_skip").
				Str("status", "success").
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Msg("schema already up to date")
			return nil
		}
		return fail("up", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fail("version", err)
	}

	logger.Info().
		Str("event", "db_migration_success").
		Str("status", "success").
		Uint("version", version).
		Bool("dirty", dirty).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("")
	return nil
}
