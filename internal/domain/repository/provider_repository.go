package repository

import (
	"context"

	"github.com/geoinfo-bot/internal/domain"
)

// GeocoderRepository - поиск объектов по названию во внешнем геокодере.
// Проверка типа результата остаётся на вызывающей стороне.
type GeocoderRepository interface {
	Geocode(ctx context.Context, name string, limit int) ([]domain.GeocodeResult, error)
}

// CountryDetailRepository - подробности о стране по ISO коду.
// Неизвестный код возвращается как (nil, nil).
type CountryDetailRepository interface {
	GetCountryDetail(ctx context.Context, isoCode string) (*domain.Country, error)
}

// CurrencyRepository - таблица курсов валют
type CurrencyRepository interface {
	GetRates(ctx context.Context) (domain.RateTable, error)
}

// WeatherRepository - текущая погода по координатам
type WeatherRepository interface {
	GetWeather(ctx context.Context, lat, lon float64) (*domain.Weather, error)
}
