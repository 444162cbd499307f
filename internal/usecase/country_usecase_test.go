package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/geoinfo-bot/internal/domain"
	apperrors "github.com/geoinfo-bot/internal/pkg/errors"
	"github.com/geoinfo-bot/internal/repository/cache"
	"github.com/geoinfo-bot/internal/usecase"
)

const polandCoordinates = "19.134422 52.215933"

type countryMocks struct {
	cache    *MockCacheRepository
	store    *MockCountryRepository
	geocoder *MockGeocoder
	detail   *MockCountryDetail
	currency *MockCurrency
	weather  *MockWeather
}

func newCountryUseCase() (*usecase.CountryUseCase, *countryMocks) {
	m := &countryMocks{
		cache:    &MockCacheRepository{},
		store:    &MockCountryRepository{},
		geocoder: &MockGeocoder{},
		detail:   &MockCountryDetail{},
		currency: &MockCurrency{},
		weather:  &MockWeather{},
	}
	uc := usecase.NewCountryUseCase(m.cache, m.store, m.geocoder, m.detail, m.currency, m.weather, zap.NewNop())
	return uc, m
}

func polandGeocode() *domain.GeocodeResult {
	return &domain.GeocodeResult{
		Name:        "Польша",
		FullAddress: "Польша",
		Coordinates: polandCoordinates,
		CountryCode: "PL",
		Kind:        domain.KindCountry,
	}
}

func polandCountry() *domain.Country {
	return &domain.Country{
		ISOCode:          "PL",
		Name:             "Польша",
		Capital:          "Варшава",
		CapitalLongitude: 21.0,
		CapitalLatitude:  52.25,
		AreaSize:         312679,
		Population:       37950802,
		Currencies:       map[string]string{"PLN": "Polish złoty", "EUR": "Euro"},
		Languages:        []string{"Polish"},
	}
}

func polandEntity() *domain.CountryEntity {
	return &domain.CountryEntity{
		ISOCode:    "PL",
		Name:       "Польша",
		AreaSize:   312679,
		Population: 37950802,
		Languages:  []domain.Language{{ID: 1, Name: "Polish"}},
		Currencies: []domain.Currency{{ISOCode: "PLN", Name: "Polish złoty"}},
		Capital: &domain.City{
			ID: 3, Name: "Варшава", CountryCode: "PL",
			Longitude: 21.0, Latitude: 52.25, IsCapital: true,
		},
	}
}

func TestCountryUseCase_ResolveCountry(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid name", func(t *testing.T) {
		uc, m := newCountryUseCase()

		for _, name := range []string{"", "Уругвай56", "Италия&"} {
			_, err := uc.ResolveCountry(ctx, name)
			assert.ErrorIs(t, err, apperrors.ErrInvalidCountryName, name)
		}
		m.geocoder.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache hit", func(t *testing.T) {
		uc, m := newCountryUseCase()
		m.cache.On("GetCountryByName", ctx, "Польша").Return(polandGeocode(), nil)

		result, err := uc.ResolveCountry(ctx, "Польша")

		require.NoError(t, err)
		assert.Equal(t, polandGeocode(), result)
		m.geocoder.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("geocoder with single result is cached", func(t *testing.T) {
		uc, m := newCountryUseCase()
		m.cache.On("GetCountryByName", ctx, "Польша").Return(nil, nil)
		m.geocoder.On("Geocode", ctx, "Польша", 1).Return([]domain.GeocodeResult{*polandGeocode()}, nil)
		m.cache.On("PutCountryGeocode", ctx, polandGeocode()).Return(nil)

		result, err := uc.ResolveCountry(ctx, "Польша")

		require.NoError(t, err)
		assert.Equal(t, "PL", result.CountryCode)
		m.cache.AssertExpectations(t)
	})

	t.Run("non-country kind is not found", func(t *testing.T) {
		uc, m := newCountryUseCase()
		m.cache.On("GetCountryByName", ctx, "Вашингтон").Return(nil, nil)
		m.geocoder.On("Geocode", ctx, "Вашингтон", 1).Return([]domain.GeocodeResult{
			{Name: "Вашингтон", Coordinates: "-77 38.9", CountryCode: "US", Kind: domain.KindLocality},
		}, nil)

		_, err := uc.ResolveCountry(ctx, "Вашингтон")

		assert.ErrorIs(t, err, apperrors.ErrCountryNotFound)
		m.cache.AssertNotCalled(t, "PutCountryGeocode", mock.Anything, mock.Anything)
	})
}

func TestCountryUseCase_CountryDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit does not touch store or provider", func(t *testing.T) {
		uc, m := newCountryUseCase()
		m.cache.On("GetCountry", ctx, polandCoordinates).Return(polandCountry(), nil)

		view, err := uc.CountryDetail(ctx, polandGeocode())

		require.NoError(t, err)
		assert.Equal(t, polandCountry(), view)
		m.store.AssertNotCalled(t, "GetByISOCode", mock.Anything, mock.Anything)
		m.detail.AssertNotCalled(t, "GetCountryDetail", mock.Anything, mock.Anything)
	})

	t.Run("store hit does not call provider nor write cache", func(t *testing.T) {
		uc, m := newCountryUseCase()
		m.cache.On("GetCountry", ctx, polandCoordinates).Return(nil, nil)
		m.store.On("GetByISOCode", ctx, "PL").Return(polandEntity(), nil)

		view, err := uc.CountryDetail(ctx, polandGeocode())

		require.NoError(t, err)
		assert.Equal(t, polandEntity(), view)
		m.detail.AssertNotCalled(t, "GetCountryDetail", mock.Anything, mock.Anything)
		m.cache.AssertNotCalled(t, "PutCountry", mock.Anything, mock.Anything, mock.Anything)
		m.cache.AssertNotCalled(t, "PutCity", mock.Anything, mock.Anything)
	})

	t.Run("provider result is persisted and cached", func(t *testing.T) {
		uc, m := newCountryUseCase()
		entity := polandEntity()
		m.cache.On("GetCountry", ctx, polandCoordinates).Return(nil, nil)
		m.store.On("GetByISOCode", ctx, "PL").Return(nil, nil)
		m.detail.On("GetCountryDetail", ctx, "PL").Return(polandCountry(), nil)
		m.store.On("Save", ctx, polandCountry()).Return(entity, nil)
		m.cache.On("PutCountry", ctx, polandCoordinates, polandCountry()).Return(nil)
		m.cache.On("PutCity", ctx, entity.Capital).Return(nil)

		view, err := uc.CountryDetail(ctx, polandGeocode())

		require.NoError(t, err)
		assert.Same(t, entity, view)
		m.store.AssertExpectations(t)
		m.cache.AssertExpectations(t)
	})

	t.Run("failed save still returns and caches provider value", func(t *testing.T) {
		uc, m := newCountryUseCase()
		m.cache.On("GetCountry", ctx, polandCoordinates).Return(nil, nil)
		m.store.On("GetByISOCode", ctx, "PL").Return(nil, apperrors.ErrDatabaseError)
		m.detail.On("GetCountryDetail", ctx, "PL").Return(polandCountry(), nil)
		m.store.On("Save", ctx, mock.Anything).Return(nil, apperrors.ErrDatabaseError)
		m.cache.On("PutCountry", ctx, polandCoordinates, mock.Anything).Return(nil)
		m.cache.On("PutCity", ctx, mock.MatchedBy(func(c *domain.City) bool {
			return c.Name == "Варшава" && c.IsCapital
		})).Return(nil)

		view, err := uc.CountryDetail(ctx, polandGeocode())

		require.NoError(t, err)
		assert.Equal(t, polandCountry(), view)
		m.cache.AssertExpectations(t)
	})

	t.Run("provider miss is not found and nothing is written", func(t *testing.T) {
		uc, m := newCountryUseCase()
		m.cache.On("GetCountry", ctx, polandCoordinates).Return(nil, nil)
		m.store.On("GetByISOCode", ctx, "PL").Return(nil, nil)
		m.detail.On("GetCountryDetail", ctx, "PL").Return(nil, errors.New("timeout"))

		_, err := uc.CountryDetail(ctx, polandGeocode())

		assert.ErrorIs(t, err, apperrors.ErrCountryNotFound)
		m.store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		m.cache.AssertNotCalled(t, "PutCountry", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("incomplete geocode is rejected", func(t *testing.T) {
		uc, _ := newCountryUseCase()

		_, err := uc.CountryDetail(ctx, &domain.GeocodeResult{Name: "Польша"})

		assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
	})
}

func TestCountryUseCase_ProviderFillsStoreAndCache(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	cacheRepo := cache.NewCacheRepository(cache.NewRedisFromClient(client, zap.NewNop()), time.Hour)

	store := &MockCountryRepository{}
	detail := &MockCountryDetail{}
	uc := usecase.NewCountryUseCase(cacheRepo, store, &MockGeocoder{}, detail, &MockCurrency{}, &MockWeather{}, zap.NewNop())

	store.On("GetByISOCode", ctx, "PL").Return(nil, nil).Once()
	detail.On("GetCountryDetail", ctx, "PL").Return(polandCountry(), nil).Once()
	store.On("Save", ctx, polandCountry()).Return(polandEntity(), nil).Once()

	_, err := uc.CountryDetail(ctx, polandGeocode())
	require.NoError(t, err)

	cached, err := cacheRepo.GetCountry(ctx, polandCoordinates)
	require.NoError(t, err)
	assert.Equal(t, polandCountry(), cached)

	capital, err := cacheRepo.GetCity(ctx, "21 52.25")
	require.NoError(t, err)
	require.NotNil(t, capital)
	assert.Equal(t, "Варшава", capital.Name)

	// второй запрос обслуживается кешем
	view, err := uc.CountryDetail(ctx, polandGeocode())
	require.NoError(t, err)
	assert.Equal(t, "PL", view.GetISOCode())
	store.AssertExpectations(t)
	detail.AssertExpectations(t)
}

func TestCountryUseCase_Facets(t *testing.T) {
	ctx := context.Background()

	t.Run("facets from cache", func(t *testing.T) {
		uc, m := newCountryUseCase()
		m.cache.On("GetCountry", ctx, polandCoordinates).Return(polandCountry(), nil)

		languages, err := uc.Languages(ctx, polandGeocode())
		require.NoError(t, err)
		assert.Equal(t, []string{"Polish"}, languages)

		currencies, err := uc.Currencies(ctx, polandGeocode())
		require.NoError(t, err)
		assert.Equal(t, []string{"EUR", "PLN"}, currencies)

		capital, err := uc.Capital(ctx, polandGeocode())
		require.NoError(t, err)
		assert.Equal(t, &domain.CityCoordinates{Name: "Варшава", Longitude: 21.0, Latitude: 52.25}, capital)

		m.store.AssertNotCalled(t, "GetLanguages", mock.Anything, mock.Anything)
		m.store.AssertNotCalled(t, "GetCurrencies", mock.Anything, mock.Anything)
		m.store.AssertNotCalled(t, "GetCapital", mock.Anything, mock.Anything)
	})

	t.Run("facets from store", func(t *testing.T) {
		uc, m := newCountryUseCase()
		m.cache.On("GetCountry", ctx, polandCoordinates).Return(nil, nil)
		m.store.On("GetLanguages", ctx, "PL").Return([]string{"Polish"}, nil)
		m.store.On("GetCurrencies", ctx, "PL").Return([]string{"PLN"}, nil)
		m.store.On("GetCapital", ctx, "PL").Return(polandEntity().Capital, nil)

		languages, err := uc.Languages(ctx, polandGeocode())
		require.NoError(t, err)
		assert.Equal(t, []string{"Polish"}, languages)

		currencies, err := uc.Currencies(ctx, polandGeocode())
		require.NoError(t, err)
		assert.Equal(t, []string{"PLN"}, currencies)

		capital, err := uc.Capital(ctx, polandGeocode())
		require.NoError(t, err)
		assert.Equal(t, "Варшава", capital.Name)

		m.detail.AssertNotCalled(t, "GetCountryDetail", mock.Anything, mock.Anything)
		m.cache.AssertNotCalled(t, "PutCountry", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cached country without capital falls through to store", func(t *testing.T) {
		uc, m := newCountryUseCase()
		noCapital := polandCountry()
		noCapital.Capital = ""
		m.cache.On("GetCountry", ctx, polandCoordinates).Return(noCapital, nil)
		m.store.On("GetCapital", ctx, "PL").Return(polandEntity().Capital, nil)

		capital, err := uc.Capital(ctx, polandGeocode())

		require.NoError(t, err)
		assert.Equal(t, "Варшава", capital.Name)
	})
}

func TestCountryUseCase_CountryOverview(t *testing.T) {
	ctx := context.Background()

	t.Run("fully cached country decomposes into facets", func(t *testing.T) {
		uc, m := newCountryUseCase()
		cached := polandCountry()
		m.cache.On("GetCountry", ctx, polandCoordinates).Return(cached, nil)

		overview, err := uc.CountryOverview(ctx, polandGeocode())

		require.NoError(t, err)
		assert.Equal(t, cached, overview.Detail)
		assert.Equal(t, cached.GetLanguages(), overview.Languages)
		assert.Equal(t, cached.GetCurrencyCodes(), overview.Currencies)
		capital := cached.GetCapital()
		assert.Equal(t, &capital, overview.Capital)
		m.store.AssertNotCalled(t, "GetByISOCode", mock.Anything, mock.Anything)
		m.detail.AssertNotCalled(t, "GetCountryDetail", mock.Anything, mock.Anything)
	})

	t.Run("facets resolved from different tiers", func(t *testing.T) {
		uc, m := newCountryUseCase()
		m.cache.On("GetCountry", ctx, polandCoordinates).Return(nil, nil)
		m.store.On("GetByISOCode", ctx, "PL").Return(polandEntity(), nil)
		m.store.On("GetLanguages", ctx, "PL").Return([]string{"Polish"}, nil)
		m.store.On("GetCurrencies", ctx, "PL").Return([]string{"PLN"}, nil)
		m.store.On("GetCapital", ctx, "PL").Return(polandEntity().Capital, nil)

		overview, err := uc.CountryOverview(ctx, polandGeocode())

		require.NoError(t, err)
		assert.Equal(t, "PL", overview.Detail.GetISOCode())
		assert.Equal(t, []string{"PLN"}, overview.Currencies)
	})

	t.Run("any missing facet makes the whole overview absent", func(t *testing.T) {
		uc, m := newCountryUseCase()
		m.cache.On("GetCountry", ctx, polandCoordinates).Return(nil, nil)
		m.store.On("GetByISOCode", ctx, "PL").Return(polandEntity(), nil)
		m.store.On("GetLanguages", ctx, "PL").Return([]string{"Polish"}, nil)
		m.store.On("GetCurrencies", ctx, "PL").Return([]string{"PLN"}, nil)
		m.store.On("GetCapital", ctx, "PL").Return(nil, nil)
		m.detail.On("GetCountryDetail", ctx, "PL").Return(nil, nil)

		overview, err := uc.CountryOverview(ctx, polandGeocode())

		assert.ErrorIs(t, err, apperrors.ErrCountryNotFound)
		assert.Nil(t, overview)
	})

	t.Run("overview failing validation is absent", func(t *testing.T) {
		uc, m := newCountryUseCase()
		broken := polandCountry()
		broken.CapitalLongitude = 200
		m.cache.On("GetCountry", ctx, polandCoordinates).Return(broken, nil)

		overview, err := uc.CountryOverview(ctx, polandGeocode())

		assert.ErrorIs(t, err, apperrors.ErrCountryNotFound)
		assert.Nil(t, overview)
	})
}

func TestCountryUseCase_CurrencyRates(t *testing.T) {
	ctx := context.Background()
	table := domain.RateTable{
		"USD": {CharCode: "USD", Nominal: 1, Name: "Доллар США", Value: 76.4096},
	}

	t.Run("unknown codes are dropped", func(t *testing.T) {
		uc, m := newCountryUseCase()
		m.currency.On("GetRates", ctx).Return(table, nil)

		rates, err := uc.CurrencyRates(ctx, []string{"USD", "XYZ"})

		require.NoError(t, err)
		require.Len(t, rates, 1)
		assert.Equal(t, "USD", rates[0].CharCode)
	})

	t.Run("no overlap is absent", func(t *testing.T) {
		uc, m := newCountryUseCase()
		m.currency.On("GetRates", ctx).Return(table, nil)

		_, err := uc.CurrencyRates(ctx, []string{"XYZ"})

		assert.ErrorIs(t, err, apperrors.ErrCurrencyRatesNotFound)
	})

	t.Run("codes are normalized", func(t *testing.T) {
		uc, m := newCountryUseCase()
		m.currency.On("GetRates", ctx).Return(table, nil)

		rates, err := uc.CurrencyRates(ctx, []string{" usd "})

		require.NoError(t, err)
		assert.Len(t, rates, 1)
	})

	t.Run("provider failure is absent", func(t *testing.T) {
		uc, m := newCountryUseCase()
		m.currency.On("GetRates", ctx).Return(nil, errors.New("timeout"))

		_, err := uc.CurrencyRates(ctx, []string{"USD"})

		assert.ErrorIs(t, err, apperrors.ErrCurrencyRatesNotFound)
	})

	t.Run("empty request skips provider", func(t *testing.T) {
		uc, m := newCountryUseCase()

		_, err := uc.CurrencyRates(ctx, nil)

		assert.ErrorIs(t, err, apperrors.ErrCurrencyRatesNotFound)
		m.currency.AssertNotCalled(t, "GetRates", mock.Anything)
	})
}

func TestCountryUseCase_CountryRates(t *testing.T) {
	ctx := context.Background()
	uc, m := newCountryUseCase()
	m.cache.On("GetCountry", ctx, polandCoordinates).Return(polandCountry(), nil)
	m.currency.On("GetRates", ctx).Return(domain.RateTable{
		"EUR": {CharCode: "EUR", Value: 82.1},
		"USD": {CharCode: "USD", Value: 76.4},
	}, nil)

	resp, err := uc.CountryRates(ctx, polandGeocode())

	require.NoError(t, err)
	assert.Equal(t, "Польша", resp.Country)
	require.Len(t, resp.Rates, 1)
	assert.Equal(t, "EUR", resp.Rates[0].CharCode)
}

func TestCountryUseCase_CapitalWeather(t *testing.T) {
	ctx := context.Background()

	t.Run("weather for cached capital", func(t *testing.T) {
		uc, m := newCountryUseCase()
		weather := &domain.Weather{Temperature: 3.5, WeatherType: "снег"}
		m.cache.On("GetCountry", ctx, polandCoordinates).Return(polandCountry(), nil)
		m.weather.On("GetWeather", ctx, 52.25, 21.0).Return(weather, nil)

		resp, err := uc.CapitalWeather(ctx, polandGeocode())

		require.NoError(t, err)
		assert.Equal(t, "Варшава", resp.Capital.Name)
		assert.Equal(t, weather, resp.Weather)
	})

	t.Run("weather provider miss", func(t *testing.T) {
		uc, m := newCountryUseCase()
		m.cache.On("GetCountry", ctx, polandCoordinates).Return(polandCountry(), nil)
		m.weather.On("GetWeather", ctx, 52.25, 21.0).Return(nil, nil)

		_, err := uc.CapitalWeather(ctx, polandGeocode())

		assert.ErrorIs(t, err, apperrors.ErrWeatherNotFound)
	})
}
