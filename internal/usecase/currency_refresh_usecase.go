package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/geoinfo-bot/internal/domain/repository"
	"github.com/geoinfo-bot/internal/pkg/metrics"
)

// RefreshStats - итоги одного прохода обновления курсов
type RefreshStats struct {
	Scanned   int
	Skipped   int
	Unchanged int
	Updated   int
	Failed    int
}

// CurrencyRefreshUseCase переписывает курсы валют в закешированных странах
type CurrencyRefreshUseCase struct {
	cacheRepo    repository.CacheRepository
	currencyRepo repository.CurrencyRepository
	minTTL       time.Duration
	logger       *zap.Logger
}

// NewCurrencyRefreshUseCase - записи с остатком TTL не больше minTTL не трогаются
func NewCurrencyRefreshUseCase(
	cacheRepo repository.CacheRepository,
	currencyRepo repository.CurrencyRepository,
	minTTL time.Duration,
	logger *zap.Logger,
) *CurrencyRefreshUseCase {
	return &CurrencyRefreshUseCase{
		cacheRepo:    cacheRepo,
		currencyRepo: currencyRepo,
		minTTL:       minTTL,
		logger:       logger,
	}
}

// RefreshCachedRates загружает таблицу курсов один раз и обновляет ею все
// закешированные страны. Повторная запись сбрасывает TTL записи.
func (uc *CurrencyRefreshUseCase) RefreshCachedRates(ctx context.Context) (*RefreshStats, error) {
	table, err := uc.currencyRepo.GetRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rate table: %w", err)
	}

	keys, err := uc.cacheRepo.CountryCoordinates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan cached countries: %w", err)
	}

	stats := &RefreshStats{Scanned: len(keys)}
	for _, coordinates := range keys {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		ttl, err := uc.cacheRepo.CountryTTL(ctx, coordinates)
		if err != nil {
			uc.logger.Warn("Failed to read TTL", zap.String("key", coordinates), zap.Error(err))
			stats.Failed++
			continue
		}
		// запись скоро истечёт и обновится при следующем обращении
		if ttl <= uc.minTTL {
			stats.Skipped++
			continue
		}

		country, err := uc.cacheRepo.GetCountry(ctx, coordinates)
		if err != nil {
			uc.logger.Warn("Failed to read cached country", zap.String("key", coordinates), zap.Error(err))
			stats.Failed++
			continue
		}
		if country == nil {
			stats.Skipped++
			continue
		}

		changed := false
		for code := range country.Currencies {
			rate, ok := table[code]
			if !ok {
				continue
			}
			if country.Rates == nil {
				country.Rates = make(map[string]float64, len(country.Currencies))
			}
			country.Rates[code] = rate.Value
			changed = true
		}
		if !changed {
			stats.Unchanged++
			continue
		}

		if err := uc.cacheRepo.PutCountry(ctx, coordinates, country); err != nil {
			uc.logger.Warn("Failed to rewrite cached country", zap.String("key", coordinates), zap.Error(err))
			stats.Failed++
			continue
		}
		stats.Updated++
	}

	metrics.RefreshedEntries.Add(float64(stats.Updated))
	return stats, nil
}
