package usecase

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/geoinfo-bot/internal/domain"
	"github.com/geoinfo-bot/internal/domain/repository"
	"github.com/geoinfo-bot/internal/pkg/errors"
	"github.com/geoinfo-bot/internal/pkg/metrics"
	"github.com/geoinfo-bot/internal/pkg/validator"
	"github.com/geoinfo-bot/internal/usecase/dto"
)

// CountryUseCase - каскад кеш -> БД -> внешний API для стран и их частей
type CountryUseCase struct {
	cacheRepo    repository.CacheRepository
	countryRepo  repository.CountryRepository
	geocoder     repository.GeocoderRepository
	detailRepo   repository.CountryDetailRepository
	currencyRepo repository.CurrencyRepository
	weatherRepo  repository.WeatherRepository
	logger       *zap.Logger
}

// NewCountryUseCase - создание нового CountryUseCase
func NewCountryUseCase(
	cacheRepo repository.CacheRepository,
	countryRepo repository.CountryRepository,
	geocoder repository.GeocoderRepository,
	detailRepo repository.CountryDetailRepository,
	currencyRepo repository.CurrencyRepository,
	weatherRepo repository.WeatherRepository,
	logger *zap.Logger,
) *CountryUseCase {
	return &CountryUseCase{
		cacheRepo:    cacheRepo,
		countryRepo:  countryRepo,
		geocoder:     geocoder,
		detailRepo:   detailRepo,
		currencyRepo: currencyRepo,
		weatherRepo:  weatherRepo,
		logger:       logger,
	}
}

// ResolveCountry ищет страну по названию: кеш, затем геокодер с одним результатом
func (uc *CountryUseCase) ResolveCountry(ctx context.Context, name string) (*domain.GeocodeResult, error) {
	name = strings.TrimSpace(name)
	if !validator.IsCountryNameValid(name) {
		return nil, errors.ErrInvalidCountryName
	}

	cached, err := uc.cacheRepo.GetCountryByName(ctx, name)
	if err != nil {
		uc.logger.Warn("Country cache lookup failed", zap.String("name", name), zap.Error(err))
	}
	if cached != nil {
		metrics.ResolveTier.WithLabelValues("country", "cache").Inc()
		return cached, nil
	}

	results, err := uc.geocoder.Geocode(ctx, name, 1)
	if err != nil {
		uc.logger.Warn("Geocoder failed", zap.String("name", name), zap.Error(err))
		metrics.ResolveTier.WithLabelValues("country", "miss").Inc()
		return nil, errors.ErrCountryNotFound
	}
	if len(results) != 1 || !results[0].IsCountry() {
		metrics.ResolveTier.WithLabelValues("country", "miss").Inc()
		return nil, errors.ErrCountryNotFound
	}

	result := results[0]
	if err := uc.cacheRepo.PutCountryGeocode(ctx, &result); err != nil {
		uc.logger.Warn("Failed to cache country geocode", zap.String("name", name), zap.Error(err))
	}

	metrics.ResolveTier.WithLabelValues("country", "provider").Inc()
	return &result, nil
}

// CountryDetail - страна целиком по результату геокодирования
func (uc *CountryUseCase) CountryDetail(ctx context.Context, geocode *domain.GeocodeResult) (domain.CountryView, error) {
	return resolveFacet(ctx, uc, geocode, detailFacet(uc.countryRepo))
}

// Languages - названия языков страны
func (uc *CountryUseCase) Languages(ctx context.Context, geocode *domain.GeocodeResult) ([]string, error) {
	return resolveFacet(ctx, uc, geocode, languagesFacet(uc.countryRepo))
}

// Currencies - коды валют страны
func (uc *CountryUseCase) Currencies(ctx context.Context, geocode *domain.GeocodeResult) ([]string, error) {
	return resolveFacet(ctx, uc, geocode, currenciesFacet(uc.countryRepo))
}

// Capital - столица страны с координатами
func (uc *CountryUseCase) Capital(ctx context.Context, geocode *domain.GeocodeResult) (*domain.CityCoordinates, error) {
	return resolveFacet(ctx, uc, geocode, capitalFacet(uc.countryRepo))
}

// CountryOverview собирает четыре части параллельно.
// Если хоть одна не получена или сводка не прошла валидацию, страна считается не найденной.
func (uc *CountryUseCase) CountryOverview(ctx context.Context, geocode *domain.GeocodeResult) (*domain.CountryOverview, error) {
	if err := checkCountryGeocode(geocode); err != nil {
		return nil, err
	}

	var (
		wg         sync.WaitGroup
		overview   domain.CountryOverview
		detailErr  error
		langErr    error
		curErr     error
		capitalErr error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		overview.Detail, detailErr = uc.CountryDetail(ctx, geocode)
	}()
	go func() {
		defer wg.Done()
		overview.Languages, langErr = uc.Languages(ctx, geocode)
	}()
	go func() {
		defer wg.Done()
		overview.Currencies, curErr = uc.Currencies(ctx, geocode)
	}()
	go func() {
		defer wg.Done()
		overview.Capital, capitalErr = uc.Capital(ctx, geocode)
	}()
	wg.Wait()

	for _, err := range []error{detailErr, langErr, curErr, capitalErr} {
		if err != nil {
			uc.logger.Debug("Country overview facet missing",
				zap.String("iso_code", geocode.CountryCode), zap.Error(err))
			return nil, errors.ErrCountryNotFound
		}
	}

	if err := validator.Validate(&overview); err != nil {
		uc.logger.Warn("Country overview failed validation",
			zap.String("iso_code", geocode.CountryCode), zap.Error(err))
		return nil, errors.ErrCountryNotFound
	}

	return &overview, nil
}

// CurrencyRates возвращает курсы для запрошенных кодов в порядке запроса.
// Коды, которых нет у ЦБ, пропускаются.
func (uc *CountryUseCase) CurrencyRates(ctx context.Context, codes []string) ([]domain.CurrencyRate, error) {
	normalized := make([]string, 0, len(codes))
	for _, code := range codes {
		if code = strings.ToUpper(strings.TrimSpace(code)); code != "" {
			normalized = append(normalized, code)
		}
	}
	if len(normalized) == 0 {
		return nil, errors.ErrCurrencyRatesNotFound
	}

	table, err := uc.currencyRepo.GetRates(ctx)
	if err != nil {
		uc.logger.Warn("Currency provider failed", zap.Error(err))
		return nil, errors.ErrCurrencyRatesNotFound
	}

	rates := table.Filter(normalized)
	if len(rates) == 0 {
		return nil, errors.ErrCurrencyRatesNotFound
	}
	return rates, nil
}

// CountryRates - курсы всех валют страны
func (uc *CountryUseCase) CountryRates(ctx context.Context, geocode *domain.GeocodeResult) (*dto.CountryRatesResponse, error) {
	codes, err := uc.Currencies(ctx, geocode)
	if err != nil {
		return nil, err
	}

	rates, err := uc.CurrencyRates(ctx, codes)
	if err != nil {
		return nil, err
	}

	return &dto.CountryRatesResponse{Country: geocode.Name, Rates: rates}, nil
}

// CapitalWeather - погода в столице страны
func (uc *CountryUseCase) CapitalWeather(ctx context.Context, geocode *domain.GeocodeResult) (*dto.CapitalWeatherResponse, error) {
	capital, err := uc.Capital(ctx, geocode)
	if err != nil {
		return nil, err
	}

	weather, err := uc.weatherRepo.GetWeather(ctx, capital.Latitude, capital.Longitude)
	if err != nil {
		uc.logger.Warn("Weather provider failed", zap.String("capital", capital.Name), zap.Error(err))
		return nil, errors.ErrWeatherNotFound
	}
	if weather == nil {
		return nil, errors.ErrWeatherNotFound
	}

	return &dto.CapitalWeatherResponse{
		Country: geocode.Name,
		Capital: *capital,
		Weather: weather,
	}, nil
}

// fetchAndPersist запрашивает страну у внешнего API, сохраняет её в БД
// и кладёт в кеш вместе со столицей. Если сохранить в БД не удалось,
// возвращается значение из API.
func (uc *CountryUseCase) fetchAndPersist(ctx context.Context, geocode *domain.GeocodeResult) domain.CountryView {
	country, err := uc.detailRepo.GetCountryDetail(ctx, geocode.CountryCode)
	if err != nil {
		uc.logger.Warn("Country detail provider failed",
			zap.String("iso_code", geocode.CountryCode), zap.Error(err))
		return nil
	}
	if country == nil {
		return nil
	}

	var view domain.CountryView = country
	capital := &domain.City{
		Name:        country.Capital,
		CountryCode: country.ISOCode,
		Longitude:   country.CapitalLongitude,
		Latitude:    country.CapitalLatitude,
		IsCapital:   true,
	}

	entity, err := uc.countryRepo.Save(ctx, country)
	if err != nil {
		uc.logger.Error("Failed to persist country",
			zap.String("iso_code", country.ISOCode), zap.Error(err))
	} else {
		view = entity
		if entity.Capital != nil {
			capital = entity.Capital
		}
	}

	if err := uc.cacheRepo.PutCountry(ctx, geocode.Coordinates, country); err != nil {
		uc.logger.Warn("Failed to cache country",
			zap.String("key", geocode.Coordinates), zap.Error(err))
	}
	if capital.Name != "" {
		if err := uc.cacheRepo.PutCity(ctx, capital); err != nil {
			uc.logger.Warn("Failed to cache capital",
				zap.String("capital", capital.Name), zap.Error(err))
		}
	}

	return view
}

func checkCountryGeocode(geocode *domain.GeocodeResult) error {
	if geocode == nil || geocode.CountryCode == "" || geocode.Coordinates == "" {
		return errors.ErrInvalidRequest
	}
	return nil
}
