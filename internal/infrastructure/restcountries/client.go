package restcountries

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/geoinfo-bot/internal/config"
	"github.com/geoinfo-bot/internal/domain"
	"github.com/geoinfo-bot/internal/domain/repository"
	"github.com/geoinfo-bot/internal/pkg/httpretry"
)

const providerName = "restcountries"

type client struct {
	http    *httpretry.Client
	baseURL string
	logger  *zap.Logger
}

// NewCountryClient создает клиент для restcountries.com
func NewCountryClient(cfg *config.ProvidersConfig, logger *zap.Logger) repository.CountryDetailRepository {
	return newClient(httpretry.New(providerName, cfg.RequestTimeout, cfg.MaxRetries, logger), cfg.CountryInfoURL, logger)
}

func newClient(http *httpretry.Client, baseURL string, logger *zap.Logger) *client {
	return &client{
		http:    http,
		baseURL: strings.TrimRight(baseURL, "/") + "/",
		logger:  logger,
	}
}

type countryPayload struct {
	CCA2         string `json:"cca2"`
	Translations map[string]struct {
		Common string `json:"common"`
	} `json:"translations"`
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	Capital     []string `json:"capital"`
	CapitalInfo struct {
		LatLng []float64 `json:"latlng"`
	} `json:"capitalInfo"`
	Area       float64 `json:"area"`
	Population int64   `json:"population"`
	Currencies map[string]struct {
		Name string `json:"name"`
	} `json:"currencies"`
	Languages map[string]string `json:"languages"`
}

// GetCountryDetail возвращает страну по ISO коду; (nil, nil) для неизвестного кода
func (c *client) GetCountryDetail(ctx context.Context, isoCode string) (*domain.Country, error) {
	var payload []countryPayload
	err := c.http.GetJSON(ctx, c.baseURL+url.PathEscape(isoCode), nil, &payload)
	if errors.Is(err, httpretry.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get country %s: %w", isoCode, err)
	}
	if len(payload) == 0 {
		return nil, nil
	}

	country := toCountry(&payload[0])
	c.logger.Debug("Country detail received",
		zap.String("iso_code", country.ISOCode),
		zap.String("capital", country.Capital))
	return country, nil
}

func toCountry(p *countryPayload) *domain.Country {
	country := &domain.Country{
		ISOCode:    p.CCA2,
		Name:       p.Name.Common,
		AreaSize:   p.Area,
		Population: p.Population,
		Currencies: make(map[string]string, len(p.Currencies)),
		Languages:  make([]string, 0, len(p.Languages)),
	}
	if rus, ok := p.Translations["rus"]; ok && rus.Common != "" {
		country.Name = rus.Common
	}
	if len(p.Capital) > 0 {
		country.Capital = p.Capital[0]
	}
	// latlng приходит как [широта, долгота]
	if len(p.CapitalInfo.LatLng) == 2 {
		country.CapitalLatitude = p.CapitalInfo.LatLng[0]
		country.CapitalLongitude = p.CapitalInfo.LatLng[1]
	}
	for code, currency := range p.Currencies {
		country.Currencies[code] = currency.Name
	}
	for _, language := range p.Languages {
		country.Languages = append(country.Languages, language)
	}
	// порядок из map случаен, а в кеше и БД он должен быть стабильным
	sort.Strings(country.Languages)
	return country
}
