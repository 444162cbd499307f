package repository

import (
	"context"

	"github.com/geoinfo-bot/internal/domain"
)

// CountryRepository - хранилище стран.
// Отсутствие записи возвращается как (nil, nil).
type CountryRepository interface {
	// GetByISOCode возвращает страну со связанными языками, валютами и столицей
	GetByISOCode(ctx context.Context, isoCode string) (*domain.CountryEntity, error)

	// GetByName ищет страну по названию
	GetByName(ctx context.Context, name string) (*domain.CountryEntity, error)

	// Save создаёт или обновляет страну вместе со столицей, языками и валютами
	Save(ctx context.Context, country *domain.Country) (*domain.CountryEntity, error)

	// GetLanguages возвращает названия языков страны, nil если страны нет
	GetLanguages(ctx context.Context, isoCode string) ([]string, error)

	// GetCurrencies возвращает коды валют страны, nil если страны нет
	GetCurrencies(ctx context.Context, isoCode string) ([]string, error)

	// GetCapital возвращает столицу страны
	GetCapital(ctx context.Context, isoCode string) (*domain.City, error)
}

// CityRepository - хранилище городов
type CityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.City, error)
	GetByName(ctx context.Context, name string) (*domain.City, error)
	GetByCoordinates(ctx context.Context, lon, lat float64) (*domain.City, error)
	Create(ctx context.Context, city *domain.City) (*domain.City, error)
	Update(ctx context.Context, id int64, city *domain.City) (*domain.City, error)
}
