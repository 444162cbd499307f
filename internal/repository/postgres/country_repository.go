package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/geoinfo-bot/internal/domain"
	"github.com/geoinfo-bot/internal/domain/repository"
	apperrors "github.com/geoinfo-bot/internal/pkg/errors"
)

const countryColumns = `iso_code, name, area_size, population, updated_at`

type countryRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewCountryRepository создает новый экземпляр CountryRepository
func NewCountryRepository(db *DB) repository.CountryRepository {
	return &countryRepository{
		db:     db,
		logger: db.logger,
	}
}

// GetByISOCode возвращает страну со связанными языками, валютами и столицей
func (r *countryRepository) GetByISOCode(ctx context.Context, isoCode string) (*domain.CountryEntity, error) {
	query := `SELECT ` + countryColumns + ` FROM countries WHERE iso_code = $1`
	return r.getOne(ctx, query, isoCode)
}

// GetByName ищет страну по названию без учёта регистра
func (r *countryRepository) GetByName(ctx context.Context, name string) (*domain.CountryEntity, error) {
	query := `SELECT ` + countryColumns + ` FROM countries WHERE LOWER(name) = LOWER($1)`
	return r.getOne(ctx, query, name)
}

func (r *countryRepository) getOne(ctx context.Context, query string, arg string) (*domain.CountryEntity, error) {
	var entity domain.CountryEntity
	err := r.db.GetContext(ctx, &entity, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get country", zap.String("key", arg), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	if err := loadCountryRelations(ctx, r.db.DB, &entity); err != nil {
		r.logger.Error("Failed to load country relations",
			zap.String("iso_code", entity.ISOCode), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return &entity, nil
}

// Save создаёт или обновляет страну, её столицу и связи с языками и валютами.
// Всё выполняется одной транзакцией через upsert, поэтому параллельные
// сохранения одной страны не конфликтуют.
func (r *countryRepository) Save(ctx context.Context, country *domain.Country) (*domain.CountryEntity, error) {
	if country == nil || country.ISOCode == "" {
		return nil, apperrors.ErrInvalidRequest
	}

	var entity domain.CountryEntity
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := upsertCountry(ctx, tx, country, &entity); err != nil {
			return err
		}

		languages, err := linkLanguages(ctx, tx, country.ISOCode, country.GetLanguages())
		if err != nil {
			return err
		}
		entity.Languages = languages

		currencies, err := linkCurrencies(ctx, tx, country.ISOCode, country.Currencies)
		if err != nil {
			return err
		}
		entity.Currencies = currencies

		if country.Capital != "" {
			capital, err := upsertCapital(ctx, tx, country)
			if err != nil {
				return err
			}
			entity.Capital = capital
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to save country",
			zap.String("iso_code", country.ISOCode), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	r.logger.Debug("Country saved",
		zap.String("iso_code", entity.ISOCode),
		zap.Int("languages", len(entity.Languages)),
		zap.Int("currencies", len(entity.Currencies)))

	return &entity, nil
}

// GetLanguages возвращает названия языков страны; nil, если страны нет
func (r *countryRepository) GetLanguages(ctx context.Context, isoCode string) ([]string, error) {
	exists, err := r.exists(ctx, isoCode)
	if err != nil || !exists {
		return nil, err
	}

	languages, err := selectLanguages(ctx, r.db.DB, isoCode)
	if err != nil {
		r.logger.Error("Failed to get country languages", zap.String("iso_code", isoCode), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	names := make([]string, 0, len(languages))
	for _, l := range languages {
		names = append(names, l.Name)
	}
	return names, nil
}

// GetCurrencies возвращает коды валют страны; nil, если страны нет
func (r *countryRepository) GetCurrencies(ctx context.Context, isoCode string) ([]string, error) {
	exists, err := r.exists(ctx, isoCode)
	if err != nil || !exists {
		return nil, err
	}

	codes := []string{}
	query := `
		SELECT currency_code
		FROM country_currencies
		WHERE country_code = $1
		ORDER BY currency_code
	`
	if err := r.db.SelectContext(ctx, &codes, query, isoCode); err != nil {
		r.logger.Error("Failed to get country currencies", zap.String("iso_code", isoCode), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return codes, nil
}

// GetCapital возвращает столицу страны; nil, если она не сохранена
func (r *countryRepository) GetCapital(ctx context.Context, isoCode string) (*domain.City, error) {
	capital, err := selectCapital(ctx, r.db.DB, isoCode)
	if err != nil {
		r.logger.Error("Failed to get country capital", zap.String("iso_code", isoCode), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return capital, nil
}

func (r *countryRepository) exists(ctx context.Context, isoCode string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM countries WHERE iso_code = $1)`, isoCode)
	if err != nil {
		r.logger.Error("Failed to check country", zap.String("iso_code", isoCode), zap.Error(err))
		return false, apperrors.ErrDatabaseError
	}
	return exists, nil
}

func loadCountryRelations(ctx context.Context, q sqlx.QueryerContext, entity *domain.CountryEntity) error {
	languages, err := selectLanguages(ctx, q, entity.ISOCode)
	if err != nil {
		return err
	}
	entity.Languages = languages

	currencies := []domain.Currency{}
	query := `
		SELECT c.iso_code, c.name, c.updated_at
		FROM currencies c
		JOIN country_currencies cc ON cc.currency_code = c.iso_code
		WHERE cc.country_code = $1
		ORDER BY c.iso_code
	`
	if err := sqlx.SelectContext(ctx, q, &currencies, query, entity.ISOCode); err != nil {
		return fmt.Errorf("select currencies: %w", err)
	}
	entity.Currencies = currencies

	capital, err := selectCapital(ctx, q, entity.ISOCode)
	if err != nil {
		return err
	}
	entity.Capital = capital
	return nil
}

func selectLanguages(ctx context.Context, q sqlx.QueryerContext, isoCode string) ([]domain.Language, error) {
	languages := []domain.Language{}
	query := `
		SELECT l.id, l.name, l.updated_at
		FROM languages l
		JOIN country_languages cl ON cl.language_id = l.id
		WHERE cl.country_code = $1
		ORDER BY l.name
	`
	if err := sqlx.SelectContext(ctx, q, &languages, query, isoCode); err != nil {
		return nil, fmt.Errorf("select languages: %w", err)
	}
	return languages, nil
}

func selectCapital(ctx context.Context, q sqlx.QueryerContext, isoCode string) (*domain.City, error) {
	var capital domain.City
	query := `SELECT ` + cityColumns + ` FROM cities WHERE country_code = $1 AND is_capital LIMIT 1`
	err := sqlx.GetContext(ctx, q, &capital, query, isoCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select capital: %w", err)
	}
	return &capital, nil
}

func upsertCountry(ctx context.Context, tx *sqlx.Tx, country *domain.Country, entity *domain.CountryEntity) error {
	query := `
		INSERT INTO countries (iso_code, name, area_size, population)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (iso_code) DO UPDATE SET
			name = EXCLUDED.name,
			area_size = EXCLUDED.area_size,
			population = EXCLUDED.population,
			updated_at = NOW()
		RETURNING ` + countryColumns
	err := tx.GetContext(ctx, entity, query,
		country.ISOCode, country.Name, country.AreaSize, country.Population)
	if err != nil {
		return fmt.Errorf("upsert country: %w", err)
	}
	return nil
}

// linkLanguages приводит набор языков страны к переданному списку
func linkLanguages(ctx context.Context, tx *sqlx.Tx, isoCode string, names []string) ([]domain.Language, error) {
	// одинаковый порядок блокировок во всех транзакциях
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	languages := make([]domain.Language, 0, len(sorted))
	ids := make([]int64, 0, len(sorted))
	for _, name := range sorted {
		var language domain.Language
		err := tx.GetContext(ctx, &language, `
			INSERT INTO languages (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET updated_at = NOW()
			RETURNING id, name, updated_at
		`, name)
		if err != nil {
			return nil, fmt.Errorf("upsert language %q: %w", name, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO country_languages (country_code, language_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, isoCode, language.ID)
		if err != nil {
			return nil, fmt.Errorf("link language %q: %w", name, err)
		}

		languages = append(languages, language)
		ids = append(ids, language.ID)
	}

	_, err := tx.ExecContext(ctx, `
		DELETE FROM country_languages
		WHERE country_code = $1 AND NOT (language_id = ANY($2))
	`, isoCode, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("unlink languages: %w", err)
	}

	return languages, nil
}

// linkCurrencies приводит набор валют страны к переданной карте код -> название
func linkCurrencies(ctx context.Context, tx *sqlx.Tx, isoCode string, currencies map[string]string) ([]domain.Currency, error) {
	codes := make([]string, 0, len(currencies))
	for code := range currencies {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	result := make([]domain.Currency, 0, len(codes))
	for _, code := range codes {
		var currency domain.Currency
		err := tx.GetContext(ctx, &currency, `
			INSERT INTO currencies (iso_code, name) VALUES ($1, $2)
			ON CONFLICT (iso_code) DO UPDATE SET name = EXCLUDED.name, updated_at = NOW()
			RETURNING iso_code, name, updated_at
		`, code, currencies[code])
		if err != nil {
			return nil, fmt.Errorf("upsert currency %s: %w", code, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO country_currencies (country_code, currency_code) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, isoCode, code)
		if err != nil {
			return nil, fmt.Errorf("link currency %s: %w", code, err)
		}

		result = append(result, currency)
	}

	_, err := tx.ExecContext(ctx, `
		DELETE FROM country_currencies
		WHERE country_code = $1 AND NOT (currency_code = ANY($2))
	`, isoCode, pq.Array(codes))
	if err != nil {
		return nil, fmt.Errorf("unlink currencies: %w", err)
	}

	return result, nil
}

// upsertCapital сохраняет столицу; у страны остаётся ровно одна столица
func upsertCapital(ctx context.Context, tx *sqlx.Tx, country *domain.Country) (*domain.City, error) {
	_, err := tx.ExecContext(ctx, `
		UPDATE cities SET is_capital = FALSE, updated_at = NOW()
		WHERE country_code = $1 AND is_capital AND name <> $2
	`, country.ISOCode, country.Capital)
	if err != nil {
		return nil, fmt.Errorf("reset capital: %w", err)
	}

	var capital domain.City
	query := `
		INSERT INTO cities (name, country_code, longitude, latitude, is_capital)
		VALUES ($1, $2, $3, $4, TRUE)
		ON CONFLICT ON CONSTRAINT cities_name_country_key DO UPDATE SET
			longitude = EXCLUDED.longitude,
			latitude = EXCLUDED.latitude,
			is_capital = TRUE,
			updated_at = NOW()
		RETURNING ` + cityColumns
	err = tx.GetContext(ctx, &capital, query,
		country.Capital, country.ISOCode, country.CapitalLongitude, country.CapitalLatitude)
	if err != nil {
		return nil, fmt.Errorf("upsert capital: %w", err)
	}
	return &capital, nil
}
