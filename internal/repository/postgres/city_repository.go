package postgres

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/geoinfo-bot/internal/domain"
	"github.com/geoinfo-bot/internal/domain/repository"
	apperrors "github.com/geoinfo-bot/internal/pkg/errors"
)

const cityColumns = `id, name, country_code, longitude, latitude, is_capital, updated_at`

type cityRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewCityRepository создает новый экземпляр CityRepository
func NewCityRepository(db *DB) repository.CityRepository {
	return &cityRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *cityRepository) GetByID(ctx context.Context, id int64) (*domain.City, error) {
	query := `SELECT ` + cityColumns + ` FROM cities WHERE id = $1`
	return r.getOne(ctx, "id", query, id)
}

// GetByName возвращает город по названию; столица в приоритете над тёзками
func (r *cityRepository) GetByName(ctx context.Context, name string) (*domain.City, error) {
	query := `
		SELECT ` + cityColumns + `
		FROM cities
		WHERE LOWER(name) = LOWER($1)
		ORDER BY is_capital DESC, id
		LIMIT 1
	`
	return r.getOne(ctx, "name", query, name)
}

// GetByCoordinates ищет город с точностью до coordinateTolerance градуса
func (r *cityRepository) GetByCoordinates(ctx context.Context, lon, lat float64) (*domain.City, error) {
	query := `
		SELECT ` + cityColumns + `
		FROM cities
		WHERE ABS(longitude - $1) < $3 AND ABS(latitude - $2) < $3
		ORDER BY id
		LIMIT 1
	`
	return r.getOne(ctx, "coordinates", query, lon, lat, coordinateTolerance)
}

func (r *cityRepository) Create(ctx context.Context, city *domain.City) (*domain.City, error) {
	var created domain.City
	query := `
		INSERT INTO cities (name, country_code, longitude, latitude, is_capital)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + cityColumns
	err := r.db.GetContext(ctx, &created, query,
		city.Name, city.CountryCode, city.Longitude, city.Latitude, city.IsCapital)
	if isUniqueViolation(err) {
		return nil, apperrors.ErrCityAlreadyExists
	}
	if err != nil {
		r.logger.Error("Failed to create city", zap.String("name", city.Name), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return &created, nil
}

func (r *cityRepository) Update(ctx context.Context, id int64, city *domain.City) (*domain.City, error) {
	var updated domain.City
	query := `
		UPDATE cities SET
			name = $2,
			country_code = $3,
			longitude = $4,
			latitude = $5,
			is_capital = $6,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + cityColumns
	err := r.db.GetContext(ctx, &updated, query,
		id, city.Name, city.CountryCode, city.Longitude, city.Latitude, city.IsCapital)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrCityNotFound
	}
	if isUniqueViolation(err) {
		return nil, apperrors.ErrCityAlreadyExists
	}
	if err != nil {
		r.logger.Error("Failed to update city", zap.Int64("id", id), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return &updated, nil
}

func (r *cityRepository) getOne(ctx context.Context, by, query string, args ...interface{}) (*domain.City, error) {
	var city domain.City
	err := r.db.GetContext(ctx, &city, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get city", zap.String("by", by), zap.Any("args", args), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return &city, nil
}
