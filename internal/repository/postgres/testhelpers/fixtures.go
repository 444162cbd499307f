package testhelpers

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// InsertCity добавляет город напрямую, в обход репозитория, и возвращает его id
func InsertCity(ctx context.Context, db *sqlx.DB, name, countryCode string, lon, lat float64, isCapital bool) (int64, error) {
	var id int64
	err := db.GetContext(ctx, &id, `
		INSERT INTO cities (name, country_code, longitude, latitude, is_capital)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, name, countryCode, lon, lat, isCapital)
	if err != nil {
		return 0, fmt.Errorf("insert city %s: %w", name, err)
	}
	return id, nil
}

// InsertCountry добавляет страну без связей
func InsertCountry(ctx context.Context, db *sqlx.DB, isoCode, name string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO countries (iso_code, name) VALUES ($1, $2)
	`, isoCode, name)
	if err != nil {
		return fmt.Errorf("insert country %s: %w", isoCode, err)
	}
	return nil
}
