package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"

	"crmapi/internal/config"
	"crmapi/internal/database"
	"crmapi/internal/database/migration"
	"crmapi/internal/logger"
	"crmapi/internal/repository/postgres"
	"crmapi/internal/service"
)

// seeder loads the default country/state/city hierarchy. Running it repeatedly is safe.
func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat, cfg.Location())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, cfg.Database.Host); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	geo := service.NewGeoService(postgres.NewGeoPostgres(db))
	report, err := geo.Seed(ctx, service.DefaultSeed)
	if err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}

	log.Info().
		Str("component", "seeder").
		Int("countries", report.Countries).
		Int("states", report.States).
		Int("cities", report.Cities).
		Msg("geographic data seeded")
}
