package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/geoinfo-bot/internal/config"
	"github.com/geoinfo-bot/internal/infrastructure/cbr"
	"github.com/geoinfo-bot/internal/pkg/logger"
	"github.com/geoinfo-bot/internal/repository/cache"
	"github.com/geoinfo-bot/internal/usecase"
	"github.com/geoinfo-bot/internal/worker"
	"github.com/geoinfo-bot/internal/worker/currency"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "geoinfo-worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting currency refresh worker")
	log.Info("Configuration loaded",
		zap.Duration("refresh_interval", cfg.Worker.RefreshInterval),
		zap.Duration("refresh_min_ttl", cfg.Cache.RefreshMinTTL),
		zap.Duration("cache_ttl", cfg.Cache.TTL))

	// 3. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Initialize repositories
	cacheRepo := cache.NewCacheRepository(redisClient, cfg.Cache.TTL)
	currencyClient := cbr.NewCurrencyClient(&cfg.Providers, log)

	// 5. Initialize use cases
	refreshUC := usecase.NewCurrencyRefreshUseCase(cacheRepo, currencyClient, cfg.Cache.RefreshMinTTL, log)

	// 6. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(currency.NewRefreshWorker(refreshUC, cfg.Worker.RefreshInterval, log))

	// 7. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
