package handler_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/geoinfo-bot/internal/domain"
	"github.com/geoinfo-bot/internal/usecase/dto"
)

// MockCityResolver is a mock of CityResolver
type MockCityResolver struct {
	mock.Mock
}

func (m *MockCityResolver) ResolveCity(ctx context.Context, name string) (*dto.CityResolution, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CityResolution), args.Error(1)
}

func (m *MockCityResolver) CityWeather(ctx context.Context, lat, lon float64) (*domain.Weather, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Weather), args.Error(1)
}

func (m *MockCityResolver) CityByCoordinates(ctx context.Context, coordinates string) (*domain.City, error) {
	args := m.Called(ctx, coordinates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.City), args.Error(1)
}

// MockCountryResolver is a mock of CountryResolver
type MockCountryResolver struct {
	mock.Mock
}

func (m *MockCountryResolver) ResolveCountry(ctx context.Context, name string) (*domain.GeocodeResult, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeocodeResult), args.Error(1)
}

func (m *MockCountryResolver) CountryDetail(ctx context.Context, geocode *domain.GeocodeResult) (domain.CountryView, error) {
	args := m.Called(ctx, geocode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.CountryView), args.Error(1)
}

func (m *MockCountryResolver) CountryOverview(ctx context.Context, geocode *domain.GeocodeResult) (*domain.CountryOverview, error) {
	args := m.Called(ctx, geocode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CountryOverview), args.Error(1)
}

func (m *MockCountryResolver) CountryRates(ctx context.Context, geocode *domain.GeocodeResult) (*dto.CountryRatesResponse, error) {
	args := m.Called(ctx, geocode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CountryRatesResponse), args.Error(1)
}

func (m *MockCountryResolver) CapitalWeather(ctx context.Context, geocode *domain.GeocodeResult) (*dto.CapitalWeatherResponse, error) {
	args := m.Called(ctx, geocode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CapitalWeatherResponse), args.Error(1)
}

// MockRatesProvider is a mock of RatesProvider
type MockRatesProvider struct {
	mock.Mock
}

func (m *MockRatesProvider) CurrencyRates(ctx context.Context, codes []string) ([]domain.CurrencyRate, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyRate), args.Error(1)
}

type mockHealth struct {
	err error
}

func (m mockHealth) Health(context.Context) error {
	return m.err
}
