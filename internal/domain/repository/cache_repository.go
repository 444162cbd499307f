package repository

import (
	"context"
	"time"

	"github.com/geoinfo-bot/internal/domain"
)

// CacheRepository определяет методы для работы с кешем стран и городов.
// Промах кеша - это (nil, nil), а не ошибка.
type CacheRepository interface {
	// GetCountry получает страну по координатам из геокодера
	GetCountry(ctx context.Context, coordinates string) (*domain.Country, error)

	// GetCountryByName получает результат геокодирования страны по названию
	GetCountryByName(ctx context.Context, name string) (*domain.GeocodeResult, error)

	// GetCity получает город по координатам
	GetCity(ctx context.Context, coordinates string) (*domain.City, error)

	// GetCityGeocode получает один или несколько результатов геокодирования города
	GetCityGeocode(ctx context.Context, name string) ([]domain.GeocodeResult, error)

	// PutCountry сохраняет страну под ключом координат
	PutCountry(ctx context.Context, coordinates string, country *domain.Country) error

	// PutCity сохраняет город под ключом его координат
	PutCity(ctx context.Context, city *domain.City) error

	// PutCountryGeocode сохраняет результат геокодирования страны под её названием
	PutCountryGeocode(ctx context.Context, result *domain.GeocodeResult) error

	// PutCityGeocode сохраняет результаты геокодирования города под названием первого
	PutCityGeocode(ctx context.Context, results []domain.GeocodeResult) error

	// CountryCoordinates возвращает координаты всех закешированных стран
	CountryCoordinates(ctx context.Context) ([]string, error)

	// CountryTTL возвращает оставшееся время жизни записи страны
	CountryTTL(ctx context.Context, coordinates string) (time.Duration, error)
}
