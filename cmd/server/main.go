package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/pocketbank/transfercore/internal/adapter/gateway"
	httpAdapter "github.com/pocketbank/transfercore/internal/adapter/http"
	"github.com/pocketbank/transfercore/internal/adapter/http/handler"
	"github.com/pocketbank/transfercore/internal/adapter/http/middleware"
	"github.com/pocketbank/transfercore/internal/adapter/repository/memory"
	redisRepo "github.com/pocketbank/transfercore/internal/adapter/repository/redis"
	"github.com/pocketbank/transfercore/internal/domain"
	"github.com/pocketbank/transfercore/internal/infrastructure/config"
	"github.com/pocketbank/transfercore/internal/infrastructure/logger"
	"github.com/pocketbank/transfercore/internal/infrastructure/redis"
	"github.com/pocketbank/transfercore/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	clock := memory.NewSystemClock()
	idGen := memory.NewULIDGenerator()

	store := memory.NewStateStore(clock, log)
	if err := store.Seed(seedState(cfg, clock)); err != nil {
		log.Fatal().Err(err).Msg("failed to seed account state")
	}

	history := memory.NewHistoryRepository()

	threshold := cfg.Threshold()
	gw := gateway.NewMock(store, idGen, clock, threshold, gateway.Options{
		Latency:     cfg.GatewayLatency,
		FailureRate: cfg.GatewayFailureRate,
	}, log)

	retry := usecase.RetryPolicy{
		MaxAttempts: cfg.RetryMaxAttempts,
		BaseDelay:   cfg.RetryBaseDelay,
		MaxDelay:    cfg.RetryMaxDelay,
	}

	transferUC := usecase.NewTransferUseCase(store, history, gw, idGen, clock, retry, threshold, log)
	accountUC := usecase.NewAccountUseCase(store, threshold)
	historyUC := usecase.NewHistoryUseCase(history)

	// Redis is optional; without it idempotency keys live in memory and
	// do not survive a restart.
	var idempotencyStore usecase.IdempotencyStore = memory.NewIdempotencyStore(clock)
	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer client.Close()
		log.Info().Msg("connected to redis")

		idempotencyStore = redisRepo.NewIdempotencyStore(client)
		redisClient = client
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TransferHandler:  handler.NewTransferHandler(transferUC),
		AccountHandler:   handler.NewAccountHandler(accountUC),
		HistoryHandler:   handler.NewHistoryHandler(historyUC),
		HealthHandler:    handler.NewHealthHandler(redisClient),
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
		Logger:           log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// seedState builds the demo account from configuration. Values are already
// validated as decimals by config.Load.
func seedState(cfg *config.Config, clock usecase.Clock) domain.AccountState {
	now := clock.Now().UTC()

	return domain.AccountState{
		Account: domain.Account{
			ID:        "acc-everyday",
			Name:      "Everyday Account",
			Number:    "4401-2210",
			Balance:   decimal.RequireFromString(cfg.SeedBalance),
			Default:   true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Limits: domain.TransferLimits{
			Daily:          domain.NewLimitBand(decimal.RequireFromString(cfg.SeedDailyLimit), decimal.Zero),
			Monthly:        domain.NewLimitBand(decimal.RequireFromString(cfg.SeedMonthlyLimit), decimal.Zero),
			PerTransaction: decimal.RequireFromString(cfg.SeedPerTransaction),
		},
		Version: 1,
	}
}
