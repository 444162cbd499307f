package main

// @title GeoInfo Bot API
// @version 1.0.0
// @description Сведения о городах и странах для чат-бота: поиск по названию, погода, курсы валют, языки и столицы.
// @description
// @description Ответы собираются по цепочке: кеш Redis -> PostgreSQL -> внешние API (Яндекс Геокодер, REST Countries, ЦБ РФ, OpenWeather).

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/geoinfo-bot/docs"
	"github.com/geoinfo-bot/internal/config"
	httpDelivery "github.com/geoinfo-bot/internal/delivery/http"
	"github.com/geoinfo-bot/internal/delivery/http/handler"
	"github.com/geoinfo-bot/internal/infrastructure/cbr"
	"github.com/geoinfo-bot/internal/infrastructure/openweather"
	"github.com/geoinfo-bot/internal/infrastructure/restcountries"
	"github.com/geoinfo-bot/internal/infrastructure/yandex"
	"github.com/geoinfo-bot/internal/pkg/logger"
	"github.com/geoinfo-bot/internal/repository/cache"
	"github.com/geoinfo-bot/internal/repository/postgres"
	"github.com/geoinfo-bot/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "geoinfo-api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting GeoInfo API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Duration("cache_ttl", cfg.Cache.TTL),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories and provider clients
	cacheRepo := cache.NewCacheRepository(redisClient, cfg.Cache.TTL)
	countryRepo := postgres.NewCountryRepository(db)
	cityRepo := postgres.NewCityRepository(db)

	geocoder := yandex.NewGeocoderClient(&cfg.Providers, log)
	countryClient := restcountries.NewCountryClient(&cfg.Providers, log)
	currencyClient := cbr.NewCurrencyClient(&cfg.Providers, log)
	weatherClient := openweather.NewWeatherClient(&cfg.Providers, log)

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	cityUC := usecase.NewCityUseCase(cacheRepo, cityRepo, geocoder, weatherClient, log)
	countryUC := usecase.NewCountryUseCase(
		cacheRepo,
		countryRepo,
		geocoder,
		countryClient,
		currencyClient,
		weatherClient,
		log,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers
	cityHandler := handler.NewCityHandler(cityUC, log)
	countryHandler := handler.NewCountryHandler(countryUC, log)
	currencyHandler := handler.NewCurrencyHandler(countryUC, log)
	healthHandler := handler.NewHealthHandler(map[string]handler.HealthChecker{
		"postgres": db,
		"redis":    redisClient,
	}, log)

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		cityHandler,
		countryHandler,
		currencyHandler,
		healthHandler,
	)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := db.Close(); err != nil {
		log.Error("Failed to close PostgreSQL", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
