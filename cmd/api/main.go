package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dateplanhq/dateplan/backend/internal/adapters/cache"
	"github.com/dateplanhq/dateplan/backend/internal/adapters/database"
	"github.com/dateplanhq/dateplan/backend/internal/api/handlers"
	"github.com/dateplanhq/dateplan/backend/internal/api/middleware"
	"github.com/dateplanhq/dateplan/backend/internal/api/routes"
	"github.com/dateplanhq/dateplan/backend/internal/domain/providers"
	"github.com/dateplanhq/dateplan/backend/internal/infrastructure/clients/postgres"
	"github.com/dateplanhq/dateplan/backend/internal/infrastructure/clients/redis"
	"github.com/dateplanhq/dateplan/backend/internal/infrastructure/observability"
	"github.com/dateplanhq/dateplan/backend/internal/linkparse"
	"github.com/dateplanhq/dateplan/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize database client and schema
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	if err := pgClient.InitSchema(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database schema")
	}
	logger.Info().Msg("PostgreSQL client initialized")

	// Redis is optional; the application works without response caching.
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable, running without response cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		logger.Info().Msg("Redis client initialized")
	}

	// Initialize adapters
	activityAdapter := database.NewActivityAdapter(pgClient)
	categoryAdapter := database.NewCategoryAdapter(pgClient)
	calendarAdapter := database.NewCalendarAdapter(pgClient)
	historyAdapter := database.NewHistoryAdapter(pgClient)

	// Initialize the link parser
	parser := linkparse.NewService(cfg.Parser, metrics)

	// Initialize handlers
	parseLinkHandler := handlers.NewParseLinkHandler(parser)
	activityHandler := handlers.NewActivityHandler(activityAdapter, categoryAdapter)
	calendarHandler := handlers.NewCalendarHandler(calendarAdapter)
	historyHandler := handlers.NewHistoryHandler(historyAdapter, activityAdapter)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
	}

	router := routes.NewRouter(
		parseLinkHandler,
		activityHandler,
		calendarHandler,
		historyHandler,
		cacheMiddleware,
		metrics,
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
}
