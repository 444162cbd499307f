package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/geoinfo-bot/internal/domain"
	"github.com/geoinfo-bot/internal/domain/repository"
)

var (
	_ repository.CacheRepository         = (*MockCacheRepository)(nil)
	_ repository.CountryRepository       = (*MockCountryRepository)(nil)
	_ repository.CityRepository          = (*MockCityRepository)(nil)
	_ repository.GeocoderRepository      = (*MockGeocoder)(nil)
	_ repository.CountryDetailRepository = (*MockCountryDetail)(nil)
	_ repository.CurrencyRepository      = (*MockCurrency)(nil)
	_ repository.WeatherRepository       = (*MockWeather)(nil)
)

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) GetCountry(ctx context.Context, coordinates string) (*domain.Country, error) {
	args := m.Called(ctx, coordinates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Country), args.Error(1)
}

func (m *MockCacheRepository) GetCountryByName(ctx context.Context, name string) (*domain.GeocodeResult, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeocodeResult), args.Error(1)
}

func (m *MockCacheRepository) GetCity(ctx context.Context, coordinates string) (*domain.City, error) {
	args := m.Called(ctx, coordinates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.City), args.Error(1)
}

func (m *MockCacheRepository) GetCityGeocode(ctx context.Context, name string) ([]domain.GeocodeResult, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeocodeResult), args.Error(1)
}

func (m *MockCacheRepository) PutCountry(ctx context.Context, coordinates string, country *domain.Country) error {
	args := m.Called(ctx, coordinates, country)
	return args.Error(0)
}

func (m *MockCacheRepository) PutCity(ctx context.Context, city *domain.City) error {
	args := m.Called(ctx, city)
	return args.Error(0)
}

func (m *MockCacheRepository) PutCountryGeocode(ctx context.Context, result *domain.GeocodeResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockCacheRepository) PutCityGeocode(ctx context.Context, results []domain.GeocodeResult) error {
	args := m.Called(ctx, results)
	return args.Error(0)
}

func (m *MockCacheRepository) CountryCoordinates(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCacheRepository) CountryTTL(ctx context.Context, coordinates string) (time.Duration, error) {
	args := m.Called(ctx, coordinates)
	return args.Get(0).(time.Duration), args.Error(1)
}

// MockCountryRepository is a mock of CountryRepository
type MockCountryRepository struct {
	mock.Mock
}

func (m *MockCountryRepository) GetByISOCode(ctx context.Context, isoCode string) (*domain.CountryEntity, error) {
	args := m.Called(ctx, isoCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CountryEntity), args.Error(1)
}

func (m *MockCountryRepository) GetByName(ctx context.Context, name string) (*domain.CountryEntity, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CountryEntity), args.Error(1)
}

func (m *MockCountryRepository) Save(ctx context.Context, country *domain.Country) (*domain.CountryEntity, error) {
	args := m.Called(ctx, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CountryEntity), args.Error(1)
}

func (m *MockCountryRepository) GetLanguages(ctx context.Context, isoCode string) ([]string, error) {
	args := m.Called(ctx, isoCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCountryRepository) GetCurrencies(ctx context.Context, isoCode string) ([]string, error) {
	args := m.Called(ctx, isoCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCountryRepository) GetCapital(ctx context.Context, isoCode string) (*domain.City, error) {
	args := m.Called(ctx, isoCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.City), args.Error(1)
}

// MockCityRepository is a mock of CityRepository
type MockCityRepository struct {
	mock.Mock
}

func (m *MockCityRepository) GetByID(ctx context.Context, id int64) (*domain.City, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.City), args.Error(1)
}

func (m *MockCityRepository) GetByName(ctx context.Context, name string) (*domain.City, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.City), args.Error(1)
}

func (m *MockCityRepository) GetByCoordinates(ctx context.Context, lon, lat float64) (*domain.City, error) {
	args := m.Called(ctx, lon, lat)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.City), args.Error(1)
}

func (m *MockCityRepository) Create(ctx context.Context, city *domain.City) (*domain.City, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.City), args.Error(1)
}

func (m *MockCityRepository) Update(ctx context.Context, id int64, city *domain.City) (*domain.City, error) {
	args := m.Called(ctx, id, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.City), args.Error(1)
}

// MockGeocoder is a mock of GeocoderRepository
type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, name string, limit int) ([]domain.GeocodeResult, error) {
	args := m.Called(ctx, name, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeocodeResult), args.Error(1)
}

// MockCountryDetail is a mock of CountryDetailRepository
type MockCountryDetail struct {
	mock.Mock
}

func (m *MockCountryDetail) GetCountryDetail(ctx context.Context, isoCode string) (*domain.Country, error) {
	args := m.Called(ctx, isoCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Country), args.Error(1)
}

// MockCurrency is a mock of CurrencyRepository
type MockCurrency struct {
	mock.Mock
}

func (m *MockCurrency) GetRates(ctx context.Context) (domain.RateTable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.RateTable), args.Error(1)
}

// MockWeather is a mock of WeatherRepository
type MockWeather struct {
	mock.Mock
}

func (m *MockWeather) GetWeather(ctx context.Context, lat, lon float64) (*domain.Weather, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Weather), args.Error(1)
}
