package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/geoinfo-bot/internal/domain"
	"github.com/geoinfo-bot/internal/domain/repository"
	"github.com/geoinfo-bot/internal/pkg/metrics"
)

const (
	PrefixCountry = "country_"
	PrefixCity    = "city_"

	scanBatchSize = 100
)

// пространства ключей для метрик
const (
	nsCountry        = "country"
	nsCountryGeocode = "country_geocode"
	nsCity           = "city"
	nsCityGeocode    = "city_geocode"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewCacheRepository создаёт кеш стран и городов с единым TTL записей
func NewCacheRepository(redis *Redis, ttl time.Duration) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
		ttl:    ttl,
	}
}

// CountryKey - ключ страны по координатам, пробелы заменяются на "_"
func CountryKey(coordinates string) string {
	return PrefixCountry + strings.ReplaceAll(coordinates, " ", "_")
}

// CountryNameKey - ключ результата геокодирования страны
func CountryNameKey(name string) string {
	return PrefixCountry + name
}

// CityKey - ключ города по координатам
func CityKey(coordinates string) string {
	return PrefixCity + strings.ReplaceAll(coordinates, " ", "_")
}

// CityNameKey - ключ результата геокодирования города
func CityNameKey(name string) string {
	return PrefixCity + name
}

func (r *cacheRepository) GetCountry(ctx context.Context, coordinates string) (*domain.Country, error) {
	var country domain.Country
	found, err := r.getJSON(ctx, nsCountry, CountryKey(coordinates), &country)
	if err != nil || !found {
		return nil, err
	}
	return &country, nil
}

func (r *cacheRepository) GetCountryByName(ctx context.Context, name string) (*domain.GeocodeResult, error) {
	var result domain.GeocodeResult
	found, err := r.getJSON(ctx, nsCountryGeocode, CountryNameKey(name), &result)
	if err != nil || !found {
		return nil, err
	}
	return &result, nil
}

func (r *cacheRepository) GetCity(ctx context.Context, coordinates string) (*domain.City, error) {
	var city domain.City
	found, err := r.getJSON(ctx, nsCity, CityKey(coordinates), &city)
	if err != nil || !found {
		return nil, err
	}
	return &city, nil
}

// GetCityGeocode - в кеше лежит либо один объект, либо массив кандидатов
func (r *cacheRepository) GetCityGeocode(ctx context.Context, name string) ([]domain.GeocodeResult, error) {
	data, err := r.get(ctx, nsCityGeocode, CityNameKey(name))
	if err != nil || data == nil {
		return nil, err
	}

	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var results []domain.GeocodeResult
		if err := json.Unmarshal(data, &results); err != nil {
			return nil, r.decodeError(CityNameKey(name), err)
		}
		if len(results) == 0 {
			return nil, nil
		}
		return results, nil
	}

	var result domain.GeocodeResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, r.decodeError(CityNameKey(name), err)
	}
	return []domain.GeocodeResult{result}, nil
}

func (r *cacheRepository) PutCountry(ctx context.Context, coordinates string, country *domain.Country) error {
	return r.setJSON(ctx, CountryKey(coordinates), country)
}

func (r *cacheRepository) PutCity(ctx context.Context, city *domain.City) error {
	return r.setJSON(ctx, CityKey(city.CoordinatesKey()), city)
}

func (r *cacheRepository) PutCountryGeocode(ctx context.Context, result *domain.GeocodeResult) error {
	return r.setJSON(ctx, CountryNameKey(result.Name), result)
}

func (r *cacheRepository) PutCityGeocode(ctx context.Context, results []domain.GeocodeResult) error {
	if len(results) == 0 {
		return fmt.Errorf("empty geocode result")
	}
	key := CityNameKey(results[0].Name)
	if len(results) == 1 {
		return r.setJSON(ctx, key, results[0])
	}
	return r.setJSON(ctx, key, results)
}

// CountryCoordinates сканирует ключи стран и оставляет только ключи по координатам:
// в том же префиксе лежат результаты геокодирования по названию
func (r *cacheRepository) CountryCoordinates(ctx context.Context) ([]string, error) {
	var coordinates []string

	iter := r.client.Scan(ctx, 0, PrefixCountry+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		suffix := strings.TrimPrefix(iter.Val(), PrefixCountry)
		if _, err := domain.ParseCoordinates(suffix); err != nil {
			continue
		}
		coordinates = append(coordinates, strings.ReplaceAll(suffix, "_", " "))
	}
	if err := iter.Err(); err != nil {
		r.logger.Error("Failed to scan country keys", zap.Error(err))
		return nil, fmt.Errorf("cache scan error: %w", err)
	}

	return coordinates, nil
}

// CountryTTL - оставшееся время жизни; для отсутствующего ключа 0
func (r *cacheRepository) CountryTTL(ctx context.Context, coordinates string) (time.Duration, error) {
	ttl, err := r.client.TTL(ctx, CountryKey(coordinates)).Result()
	if err != nil {
		r.logger.Error("Failed to get cache ttl", zap.String("coordinates", coordinates), zap.Error(err))
		return 0, fmt.Errorf("cache ttl error: %w", err)
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

func (r *cacheRepository) get(ctx context.Context, namespace, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheMisses.WithLabelValues(namespace).Inc()
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	metrics.CacheHits.WithLabelValues(namespace).Inc()
	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) getJSON(ctx context.Context, namespace, key string, out interface{}) (bool, error) {
	data, err := r.get(ctx, namespace, key)
	if err != nil || data == nil {
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, r.decodeError(key, err)
	}
	return true, nil
}

func (r *cacheRepository) setJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.Error("Failed to marshal cache value", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", r.ttl))
	return nil
}

func (r *cacheRepository) decodeError(key string, err error) error {
	r.logger.Error("Failed to unmarshal cache value", zap.String("key", key), zap.Error(err))
	return fmt.Errorf("unmarshal %s: %w", key, err)
}
