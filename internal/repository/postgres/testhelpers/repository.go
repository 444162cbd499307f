package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/geoinfo-bot/internal/domain/repository"
	"github.com/geoinfo-bot/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewCountryRepositoryForTest creates a country repository with test database and logger
func NewCountryRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.CountryRepository {
	return postgres.NewCountryRepository(NewDBForTest(db, logger))
}

// NewCityRepositoryForTest creates a city repository with test database and logger
func NewCityRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.CityRepository {
	return postgres.NewCityRepository(NewDBForTest(db, logger))
}
