package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/gosar/internal/adapter/http"
	"github.com/iho/gosar/internal/adapter/http/handler"
	"github.com/iho/gosar/internal/adapter/http/middleware"
	postgresStore "github.com/iho/gosar/internal/adapter/store/postgres"
	redisStore "github.com/iho/gosar/internal/adapter/store/redis"
	"github.com/iho/gosar/internal/infrastructure/config"
	"github.com/iho/gosar/internal/infrastructure/logger"
	"github.com/iho/gosar/internal/infrastructure/metrics"
	"github.com/iho/gosar/internal/infrastructure/postgres"
	"github.com/iho/gosar/internal/infrastructure/redis"
	"github.com/iho/gosar/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis. The cache and idempotency layers are skipped when
	// no Redis URL is configured.
	var (
		reportCache      usecase.ReportCache
		idempotencyStore usecase.IdempotencyStore
	)
	healthHandler := handler.NewHealthHandler(pool, nil)
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")

		reportCache = redisStore.NewReportCache(redisClient)
		idempotencyStore = redisStore.NewIdempotencyStore(redisClient)
		healthHandler = handler.NewHealthHandler(pool, redisClient)
	}

	// Initialize the report store and use case
	retrier := postgresStore.NewRetrier(appLogger)
	reportStore := postgresStore.NewReportStore(pool, retrier)
	idGen := postgresStore.NewULIDGenerator()
	appMetrics := metrics.New()

	reportUC := usecase.NewReportUseCase(reportStore, idGen, usecase.SystemClock{}, reportCache, appMetrics)

	// Initialize handlers
	sarHandler := handler.NewSarHandler(reportUC, usecase.SystemClock{})

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		SarHandler:       sarHandler,
		HealthHandler:    healthHandler,
		Logger:           appLogger,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
