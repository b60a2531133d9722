package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/mpatel/khata/internal/adapter/http"
	"github.com/mpatel/khata/internal/adapter/http/handler"
	"github.com/mpatel/khata/internal/adapter/http/middleware"
	postgresRepo "github.com/mpatel/khata/internal/adapter/repository/postgres"
	redisRepo "github.com/mpatel/khata/internal/adapter/repository/redis"
	"github.com/mpatel/khata/internal/infrastructure/config"
	"github.com/mpatel/khata/internal/infrastructure/eventpublisher"
	"github.com/mpatel/khata/internal/infrastructure/logger"
	"github.com/mpatel/khata/internal/infrastructure/metrics"
	"github.com/mpatel/khata/internal/infrastructure/postgres"
	"github.com/mpatel/khata/internal/infrastructure/redis"
	"github.com/mpatel/khata/internal/usecase"
)

const defaultMigrationsPath = "internal/infrastructure/postgres/migrations"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns, cfg.DatabaseTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, resolveMigrationsPath()); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	appMetrics := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	debtorRepo := postgresRepo.NewDebtorRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	paymentRepo := postgresRepo.NewPaymentRepository(pool)
	cashbookRepo := postgresRepo.NewCashbookRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier().WithMetrics(appMetrics)

	// Initialize use cases
	debtorUC := usecase.NewDebtorUseCase(debtorRepo, idGen).WithMetrics(appMetrics)
	entryUC := usecase.NewEntryUseCase(txManager, debtorRepo, entryRepo, paymentRepo, cashbookRepo, outboxRepo, idGen, cache).WithMetrics(appMetrics)
	settlementUC := usecase.NewSettlementUseCase(txManager, debtorRepo, entryRepo, paymentRepo, cashbookRepo, outboxRepo, idGen, retrier, cache).WithMetrics(appMetrics)
	outstandingUC := usecase.NewOutstandingUseCase(debtorRepo, entryRepo, paymentRepo, cache).
		WithCacheTTL(cfg.OutstandingCacheTTL).
		WithMetrics(appMetrics)
	reconciliationUC := usecase.NewReconciliationUseCase(debtorRepo, entryRepo, paymentRepo).WithMetrics(appMetrics)

	// Initialize handlers
	debtorHandler := handler.NewDebtorHandler(debtorUC)
	entryHandler := handler.NewEntryHandler(entryUC)
	settlementHandler := handler.NewSettlementHandler(settlementUC)
	outstandingHandler := handler.NewOutstandingHandler(outstandingUC)
	cashbookHandler := handler.NewCashbookHandler(cashbookRepo)
	reconciliationHandler := handler.NewReconciliationHandler(reconciliationUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).WithMetrics(appMetrics)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		DebtorHandler:         debtorHandler,
		EntryHandler:          entryHandler,
		SettlementHandler:     settlementHandler,
		OutstandingHandler:    outstandingHandler,
		CashbookHandler:       cashbookHandler,
		ReconciliationHandler: reconciliationHandler,
		HealthHandler:         healthHandler,
		IdempotencyStore:      idempotencyStore,
		IdempotencyTTL:        cfg.IdempotencyTTL,
		RateLimiter:           rateLimiter,
		Logger:                appLogger,
	})

	// Evict rate-limiter state for clients that have gone quiet
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			rateLimiter.CleanupStale(30 * time.Minute)
		}
	}()

	// Sample pool usage for the connections gauge
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			appMetrics.DBConnections.Set(float64(pool.Stat().TotalConns()))
		}
	}()

	// Start the outbox publisher worker
	publisherCtx, stopPublisher := context.WithCancel(ctx)
	defer stopPublisher()

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewRedisPublisher(redisClient, ""),
		Metrics:    appMetrics,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxPollInterval,
	})
	go func() {
		if err := publisher.Start(publisherCtx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("outbox publisher stopped")
		}
	}()

	// Create server
	server := &http.Server{
		Addr:         serverAddr(cfg.HTTPPort),
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
	stopPublisher()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func serverAddr(port string) string {
	return fmt.Sprintf(":%s", port)
}

func resolveMigrationsPath() string {
	if path := os.Getenv("MIGRATIONS_PATH"); path != "" {
		return path
	}
	return defaultMigrationsPath
}
