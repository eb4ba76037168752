package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/moneta-app/moneta/internal/adapter/http"
	"github.com/moneta-app/moneta/internal/adapter/http/handler"
	"github.com/moneta-app/moneta/internal/adapter/http/middleware"
	postgresRepo "github.com/moneta-app/moneta/internal/adapter/repository/postgres"
	redisRepo "github.com/moneta-app/moneta/internal/adapter/repository/redis"
	"github.com/moneta-app/moneta/internal/infrastructure/config"
	"github.com/moneta-app/moneta/internal/infrastructure/logger"
	"github.com/moneta-app/moneta/internal/infrastructure/metrics"
	"github.com/moneta-app/moneta/internal/infrastructure/postgres"
	"github.com/moneta-app/moneta/internal/infrastructure/redis"
	"github.com/moneta-app/moneta/internal/notify"
	"github.com/moneta-app/moneta/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger
	zerolog.DefaultContextLogger = &appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	connectCtx, cancelConnect := context.WithTimeout(ctx, cfg.DatabaseTimeout)
	pool, err := postgres.NewPool(connectCtx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	cancelConnect()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	appMetrics := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	opRepo := postgresRepo.NewOperationRepository(pool)
	categoryRepo := postgresRepo.NewCategoryRepository(pool)
	historyCache := redisRepo.NewHistoryCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Reload bus
	bus := notify.NewBus(appLogger, cfg.ReloadBuffer)
	metrics.RegisterReloadDropped(func() float64 { return float64(bus.Dropped()) })

	// Initialize use cases; lock races rerun the whole transaction
	retrier := postgresRepo.NewRetrier(appLogger)
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, opRepo, idGen, bus)
	accountUC.SetRetrier(retrier)
	ledgerUC := usecase.NewLedgerUseCase(txManager, accountRepo, opRepo, categoryRepo, idGen, bus)
	ledgerUC.SetRetrier(retrier)
	historyUC := usecase.NewHistoryUseCase(accountRepo, opRepo, historyCache, appLogger)
	historyUC.SetCacheTTL(cfg.HistoryCacheTTL)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, idGen)

	// Invalidate cached history whenever the ledger changes
	sub := bus.Subscribe()
	defer sub.Cancel()
	go func() {
		for event := range sub.C {
			appMetrics.ReloadsPublished.Inc()
			historyUC.HandleReload(ctx, event.AccountID)
		}
	}()

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountUC)
	operationHandler := handler.NewOperationHandler(ledgerUC, appMetrics)
	categoryHandler := handler.NewCategoryHandler(categoryUC)
	historyHandler := handler.NewHistoryHandler(historyUC, appMetrics)
	convertHandler := handler.NewConvertHandler()
	calcHandler := handler.NewCalcHandler()
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   accountHandler,
		OperationHandler: operationHandler,
		CategoryHandler:  categoryHandler,
		HistoryHandler:   historyHandler,
		ConvertHandler:   convertHandler,
		CalcHandler:      calcHandler,
		HealthHandler:    healthHandler,
		Logging:          middleware.NewLoggingMiddleware(appLogger),
		Metrics:          middleware.NewMetricsMiddleware(appMetrics),
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
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}
