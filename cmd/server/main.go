package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/expensetracker/internal/adapter/http"
	"github.com/iho/expensetracker/internal/adapter/http/handler"
	"github.com/iho/expensetracker/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/expensetracker/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/expensetracker/internal/adapter/repository/redis"
	"github.com/iho/expensetracker/internal/infrastructure/auth"
	"github.com/iho/expensetracker/internal/infrastructure/config"
	"github.com/iho/expensetracker/internal/infrastructure/logger"
	"github.com/iho/expensetracker/internal/infrastructure/metrics"
	"github.com/iho/expensetracker/internal/infrastructure/postgres"
	"github.com/iho/expensetracker/internal/infrastructure/redis"
	"github.com/iho/expensetracker/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	if cfg.JWTSecret == "" {
		appLogger.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(appLogger, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis when configured
	var summaryCache *usecase.SummaryCache
	var idempotencyStore usecase.IdempotencyStore
	var healthHandler *handler.HealthHandler

	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		appLogger.Info().Msg("connected to redis")

		summaryCache = usecase.NewSummaryCache(redisRepo.NewCache(redisClient), cfg.SummaryCacheTTL)
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		healthHandler = handler.NewHealthHandler(pool, redisClient)
	} else {
		appLogger.Info().Msg("redis not configured, running without summary cache and idempotency")
		healthHandler = handler.NewHealthHandler(pool, nil)
	}

	// Initialize repositories
	retrier := postgresRepo.NewRetrier(appLogger)
	expenseRepo := postgresRepo.NewExpenseRepository(pool, retrier)
	userRepo := postgresRepo.NewUserRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()

	appMetrics := metrics.New()

	// Initialize use cases
	expenseUC := usecase.NewExpenseUseCase(expenseRepo, summaryCache).
		WithPageSizes(cfg.DefaultPageSize, cfg.MaxPageSize).
		WithMetrics(appMetrics)
	summaryUC := usecase.NewSummaryUseCase(expenseRepo, summaryCache).
		WithMetrics(appMetrics)
	userUC := usecase.NewUserUseCase(userRepo, idGen).
		WithMetrics(appMetrics)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration, cfg.JWTRefreshExpiration)

	// Initialize handlers
	expenseHandler := handler.NewExpenseHandler(expenseUC)
	summaryHandler := handler.NewSummaryHandler(summaryUC)
	authHandler := handler.NewAuthHandler(userUC, jwtManager)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ExpenseHandler:   expenseHandler,
		SummaryHandler:   summaryHandler,
		AuthHandler:      authHandler,
		HealthHandler:    healthHandler,
		JWTManager:       jwtManager,
		IdempotencyStore: idempotencyStore,
		RateLimiter:      middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Logger:           appLogger,
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
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}
