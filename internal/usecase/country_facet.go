package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/geoinfo-bot/internal/domain"
	"github.com/geoinfo-bot/internal/domain/repository"
	"github.com/geoinfo-bot/internal/pkg/errors"
	"github.com/geoinfo-bot/internal/pkg/metrics"
)

// facet описывает, как достать одну часть сведений о стране
// из закешированной/полученной страны и из БД
type facet[T any] struct {
	name string
	// fromView извлекает часть из страны из кеша или API; false - части нет
	fromView func(view domain.CountryView) (T, bool)
	// fromStore читает часть из БД по ISO коду; false - записи нет
	fromStore func(ctx context.Context, isoCode string) (T, bool, error)
}

// resolveFacet проходит каскад для одной части:
// кеш по координатам -> БД по ISO коду -> внешний API с сохранением в БД и кеш.
// Найденное в БД в кеш не попадает.
func resolveFacet[T any](ctx context.Context, uc *CountryUseCase, geocode *domain.GeocodeResult, f facet[T]) (T, error) {
	var zero T
	if err := checkCountryGeocode(geocode); err != nil {
		return zero, err
	}
	log := uc.logger.With(
		zap.String("facet", f.name),
		zap.String("key", geocode.Coordinates),
		zap.String("iso_code", geocode.CountryCode))

	cached, err := uc.cacheRepo.GetCountry(ctx, geocode.Coordinates)
	if err != nil {
		log.Warn("Country cache lookup failed", zap.Error(err))
	}
	if cached != nil {
		if value, ok := f.fromView(cached); ok {
			metrics.ResolveTier.WithLabelValues(f.name, "cache").Inc()
			return value, nil
		}
	}

	value, ok, err := f.fromStore(ctx, geocode.CountryCode)
	if err != nil {
		log.Warn("Country store lookup failed", zap.Error(err))
	}
	if ok {
		metrics.ResolveTier.WithLabelValues(f.name, "store").Inc()
		return value, nil
	}

	if view := uc.fetchAndPersist(ctx, geocode); view != nil {
		if value, ok := f.fromView(view); ok {
			metrics.ResolveTier.WithLabelValues(f.name, "provider").Inc()
			return value, nil
		}
	}

	log.Debug("Country facet not found")
	metrics.ResolveTier.WithLabelValues(f.name, "miss").Inc()
	return zero, errors.ErrCountryNotFound
}

func detailFacet(repo repository.CountryRepository) facet[domain.CountryView] {
	return facet[domain.CountryView]{
		name: "detail",
		fromView: func(view domain.CountryView) (domain.CountryView, bool) {
			return view, true
		},
		fromStore: func(ctx context.Context, isoCode string) (domain.CountryView, bool, error) {
			entity, err := repo.GetByISOCode(ctx, isoCode)
			if err != nil || entity == nil {
				return nil, false, err
			}
			return entity, true, nil
		},
	}
}

func languagesFacet(repo repository.CountryRepository) facet[[]string] {
	return facet[[]string]{
		name: "languages",
		fromView: func(view domain.CountryView) ([]string, bool) {
			return view.GetLanguages(), true
		},
		fromStore: func(ctx context.Context, isoCode string) ([]string, bool, error) {
			languages, err := repo.GetLanguages(ctx, isoCode)
			return languages, err == nil && languages != nil, err
		},
	}
}

func currenciesFacet(repo repository.CountryRepository) facet[[]string] {
	return facet[[]string]{
		name: "currencies",
		fromView: func(view domain.CountryView) ([]string, bool) {
			return view.GetCurrencyCodes(), true
		},
		fromStore: func(ctx context.Context, isoCode string) ([]string, bool, error) {
			codes, err := repo.GetCurrencies(ctx, isoCode)
			return codes, err == nil && codes != nil, err
		},
	}
}

func capitalFacet(repo repository.CountryRepository) facet[*domain.CityCoordinates] {
	return facet[*domain.CityCoordinates]{
		name: "capital",
		fromView: func(view domain.CountryView) (*domain.CityCoordinates, bool) {
			capital := view.GetCapital()
			if capital.Name == "" {
				return nil, false
			}
			return &capital, true
		},
		fromStore: func(ctx context.Context, isoCode string) (*domain.CityCoordinates, bool, error) {
			city, err := repo.GetCapital(ctx, isoCode)
			if err != nil || city == nil {
				return nil, false, err
			}
			capital := city.Coordinates()
			return &capital, true, nil
		},
	}
}
