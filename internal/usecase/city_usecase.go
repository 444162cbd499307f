package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/geoinfo-bot/internal/domain"
	"github.com/geoinfo-bot/internal/domain/repository"
	"github.com/geoinfo-bot/internal/pkg/errors"
	"github.com/geoinfo-bot/internal/pkg/metrics"
	"github.com/geoinfo-bot/internal/pkg/validator"
	"github.com/geoinfo-bot/internal/usecase/dto"
)

// CityUseCase - поиск городов и погоды в них
type CityUseCase struct {
	cacheRepo   repository.CacheRepository
	cityRepo    repository.CityRepository
	geocoder    repository.GeocoderRepository
	weatherRepo repository.WeatherRepository
	logger      *zap.Logger
}

// NewCityUseCase - создание нового CityUseCase
func NewCityUseCase(
	cacheRepo repository.CacheRepository,
	cityRepo repository.CityRepository,
	geocoder repository.GeocoderRepository,
	weatherRepo repository.WeatherRepository,
	logger *zap.Logger,
) *CityUseCase {
	return &CityUseCase{
		cacheRepo:   cacheRepo,
		cityRepo:    cityRepo,
		geocoder:    geocoder,
		weatherRepo: weatherRepo,
		logger:      logger,
	}
}

// ResolveCity ищет город по названию: кеш, затем геокодер.
// Найденные кандидаты кешируются; отрицательный результат не кешируется.
func (uc *CityUseCase) ResolveCity(ctx context.Context, name string) (*dto.CityResolution, error) {
	name = strings.TrimSpace(name)
	if !validator.IsCityNameValid(name) {
		return nil, errors.ErrInvalidCityName
	}

	cached, err := uc.cacheRepo.GetCityGeocode(ctx, name)
	if err != nil {
		uc.logger.Warn("City cache lookup failed", zap.String("name", name), zap.Error(err))
	}
	if len(cached) > 0 {
		metrics.ResolveTier.WithLabelValues("city", "cache").Inc()
		return dto.NewCityResolution(cached), nil
	}

	results, err := uc.geocoder.Geocode(ctx, name, 0)
	if err != nil {
		uc.logger.Warn("Geocoder failed", zap.String("name", name), zap.Error(err))
		metrics.ResolveTier.WithLabelValues("city", "miss").Inc()
		return nil, errors.ErrCityNotFound
	}

	cities := make([]domain.GeocodeResult, 0, len(results))
	for _, r := range results {
		if r.IsCity() {
			cities = append(cities, r)
		}
	}
	if len(cities) == 0 {
		metrics.ResolveTier.WithLabelValues("city", "miss").Inc()
		return nil, errors.ErrCityNotFound
	}

	if err := uc.cacheRepo.PutCityGeocode(ctx, cities); err != nil {
		uc.logger.Warn("Failed to cache city geocode", zap.String("name", name), zap.Error(err))
	}

	metrics.ResolveTier.WithLabelValues("city", "provider").Inc()
	return dto.NewCityResolution(cities), nil
}

// CityWeather - текущая погода по координатам, без кеширования
func (uc *CityUseCase) CityWeather(ctx context.Context, lat, lon float64) (*domain.Weather, error) {
	if !(lat >= -90 && lat <= 90) || !(lon >= -180 && lon <= 180) {
		return nil, errors.ErrInvalidCoordinates
	}

	weather, err := uc.weatherRepo.GetWeather(ctx, lat, lon)
	if err != nil {
		uc.logger.Warn("Weather provider failed",
			zap.Float64("lat", lat), zap.Float64("lon", lon), zap.Error(err))
		return nil, errors.ErrWeatherNotFound
	}
	if weather == nil {
		return nil, errors.ErrWeatherNotFound
	}
	return weather, nil
}

// CityByCoordinates возвращает сохранённый город: кеш, затем БД.
// Найденный в БД город попадает в кеш.
func (uc *CityUseCase) CityByCoordinates(ctx context.Context, coordinates string) (*domain.City, error) {
	point, err := domain.ParseCoordinates(coordinates)
	if err != nil {
		return nil, errors.ErrInvalidCoordinates
	}
	key := domain.FormatCoordinates(point.Lon, point.Lat)

	cached, err := uc.cacheRepo.GetCity(ctx, key)
	if err != nil {
		uc.logger.Warn("City cache lookup failed", zap.String("key", key), zap.Error(err))
	}
	if cached != nil {
		metrics.ResolveTier.WithLabelValues("city_record", "cache").Inc()
		return cached, nil
	}

	city, err := uc.cityRepo.GetByCoordinates(ctx, point.Lon, point.Lat)
	if err != nil {
		uc.logger.Warn("City store lookup failed", zap.String("key", key), zap.Error(err))
	}
	if city == nil {
		metrics.ResolveTier.WithLabelValues("city_record", "miss").Inc()
		return nil, errors.ErrCityNotFound
	}

	if err := uc.cacheRepo.PutCity(ctx, city); err != nil {
		uc.logger.Warn("Failed to cache city", zap.String("key", key), zap.Error(err))
	}

	metrics.ResolveTier.WithLabelValues("city_record", "store").Inc()
	return city, nil
}
