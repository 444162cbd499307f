package handler

import (
	"context"

	"github.com/geoinfo-bot/internal/domain"
	"github.com/geoinfo-bot/internal/usecase/dto"
)

// CityResolver - операции над городами, которые нужны HTTP слою
type CityResolver interface {
	ResolveCity(ctx context.Context, name string) (*dto.CityResolution, error)
	CityWeather(ctx context.Context, lat, lon float64) (*domain.Weather, error)
	CityByCoordinates(ctx context.Context, coordinates string) (*domain.City, error)
}

// CountryResolver - операции над странами, которые нужны HTTP слою
type CountryResolver interface {
	ResolveCountry(ctx context.Context, name string) (*domain.GeocodeResult, error)
	CountryDetail(ctx context.Context, geocode *domain.GeocodeResult) (domain.CountryView, error)
	CountryOverview(ctx context.Context, geocode *domain.GeocodeResult) (*domain.CountryOverview, error)
	CountryRates(ctx context.Context, geocode *domain.GeocodeResult) (*dto.CountryRatesResponse, error)
	CapitalWeather(ctx context.Context, geocode *domain.GeocodeResult) (*dto.CapitalWeatherResponse, error)
}

// RatesProvider - курсы валют по кодам
type RatesProvider interface {
	CurrencyRates(ctx context.Context, codes []string) ([]domain.CurrencyRate, error)
}
