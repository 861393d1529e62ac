package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"crmapi/docs"
	"crmapi/internal/auth"
	"crmapi/internal/config"
	"crmapi/internal/database"
	"crmapi/internal/database/migration"
	handlers "crmapi/internal/http/handler"
	"crmapi/internal/http/middleware"
	"crmapi/internal/logger"
	"crmapi/internal/otel"
	"crmapi/internal/repository/postgres"
	"crmapi/internal/service"
	"crmapi/internal/storage"
)

// @title Customer Management API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer access token
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := cfg.Location()
	logger.Init(cfg.LogLevel, cfg.LogFormat, loc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := migration.EnsureMigrated(ctx, db, cfg.Database.Host); err != nil {
			log.Fatal().Err(err).Msg("failed to apply migrations")
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if err := database.RegisterPoolMetrics(reg, db, cfg.Database.Name); err != nil {
		log.Fatal().Err(err).Msg("failed to register pool metrics")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("redis_addr", cfg.Redis.Addr).Msg("failed to connect to redis")
	}

	// Export links need object storage; without it only attachment downloads are served.
	var objStore storage.Storage
	if storage.Enabled(cfg.MinIO) {
		objStore, err = storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize object storage")
		}
	} else {
		log.Warn().Str("component", "storage").Msg("minio not configured, export links disabled")
	}

	customerRepo := postgres.NewCustomerPostgres(db)
	tokens, err := auth.NewTokenManager(cfg.Auth)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid auth configuration")
	}

	deps := handlers.Dependencies{
		DB:        db,
		Gatherer:  reg,
		Auth:      service.NewAuthService(postgres.NewUserPostgres(db), tokens, auth.NewRedisBlacklist(rdb), cfg.Auth.BcryptCost),
		Customers: service.NewCustomerService(customerRepo),
		Geo:       service.NewGeoService(postgres.NewGeoPostgres(db)),
		Addresses: service.NewAddressService(postgres.NewAddressPostgres(db)),
		Reports:   service.NewReportService(customerRepo, objStore, cfg.MinIO.LinkExpiry, loc),
	}

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register http metrics")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(loc))
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, deps)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(sctx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	addr := cfg.AppHost + ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("server starting")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
	log.Info().Msg("server stopped")
}
