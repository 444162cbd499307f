package dto

import "github.com/geoinfo-bot/internal/domain"

// CityResolution - результат поиска города.
// Если кандидатов несколько, Ambiguous = true и вызывающая сторона
// выбирает один из них по координатам.
type CityResolution struct {
	Candidates []domain.GeocodeResult `json:"candidates"`
	Ambiguous  bool                   `json:"ambiguous"`
}

// NewCityResolution собирает результат из непустого списка кандидатов
func NewCityResolution(candidates []domain.GeocodeResult) *CityResolution {
	return &CityResolution{
		Candidates: candidates,
		Ambiguous:  len(candidates) > 1,
	}
}

// CountryRatesResponse - курсы валют страны
type CountryRatesResponse struct {
	Country string                `json:"country"`
	Rates   []domain.CurrencyRate `json:"rates"`
}

// CapitalWeatherResponse - погода в столице страны
type CapitalWeatherResponse struct {
	Country string                 `json:"country"`
	Capital domain.CityCoordinates `json:"capital"`
	Weather *domain.Weather        `json:"weather"`
}

// CountryOverviewResponse - сводка по стране для чата
type CountryOverviewResponse struct {
	Geocode  *domain.GeocodeResult   `json:"geocode"`
	Overview *domain.CountryOverview `json:"overview"`
}
