package yandex

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/geoinfo-bot/internal/config"
	"github.com/geoinfo-bot/internal/domain"
	"github.com/geoinfo-bot/internal/domain/repository"
	"github.com/geoinfo-bot/internal/pkg/httpretry"
)

const providerName = "yandex_geocoder"

// suggest приходит с разметкой исправленных букв: "Рос<fix>с</fix>ия"
var fixTags = strings.NewReplacer("<fix>", "", "</fix>", "")

type client struct {
	http    *httpretry.Client
	baseURL string
	apiKey  string
	logger  *zap.Logger
}

// NewGeocoderClient создает клиент для Yandex Geocoder API
func NewGeocoderClient(cfg *config.ProvidersConfig, logger *zap.Logger) repository.GeocoderRepository {
	return newClient(httpretry.New(providerName, cfg.RequestTimeout, cfg.MaxRetries, logger),
		cfg.GeocoderURL, cfg.YandexAPIKey, logger)
}

func newClient(http *httpretry.Client, baseURL, apiKey string, logger *zap.Logger) *client {
	return &client{
		http:    http,
		baseURL: baseURL,
		apiKey:  apiKey,
		logger:  logger,
	}
}

type geocoderResponse struct {
	Response struct {
		GeoObjectCollection struct {
			MetaDataProperty struct {
				GeocoderResponseMetaData struct {
					Request string `json:"request"`
					Found   string `json:"found"`
					Suggest string `json:"suggest"`
				} `json:"GeocoderResponseMetaData"`
			} `json:"metaDataProperty"`
			FeatureMember []struct {
				GeoObject *geoObject `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

type geoObject struct {
	MetaDataProperty struct {
		GeocoderMetaData struct {
			Kind    string `json:"kind"`
			Address struct {
				Formatted   string `json:"formatted"`
				CountryCode string `json:"country_code"`
			} `json:"Address"`
		} `json:"GeocoderMetaData"`
	} `json:"metaDataProperty"`
	Point struct {
		Pos string `json:"pos"`
	} `json:"Point"`
}

// Geocode ищет объекты по названию; limit <= 0 оставляет лимит по умолчанию.
// Тип результатов не фильтруется: это делает вызывающая сторона.
func (c *client) Geocode(ctx context.Context, name string, limit int) ([]domain.GeocodeResult, error) {
	query := url.Values{}
	query.Set("apikey", c.apiKey)
	query.Set("format", "json")
	query.Set("geocode", name)
	if limit > 0 {
		query.Set("results", strconv.Itoa(limit))
	}

	c.logger.Debug("Calling Yandex Geocoder", zap.String("name", name), zap.Int("limit", limit))

	var resp geocoderResponse
	if err := c.http.GetJSON(ctx, c.baseURL, query, &resp); err != nil {
		if errors.Is(err, httpretry.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("geocode %q: %w", name, err)
	}

	return parseResponse(&resp), nil
}

func parseResponse(resp *geocoderResponse) []domain.GeocodeResult {
	collection := resp.Response.GeoObjectCollection
	meta := collection.MetaDataProperty.GeocoderResponseMetaData

	found, err := strconv.Atoi(meta.Found)
	if err != nil || found == 0 {
		return nil
	}

	name := meta.Request
	if meta.Suggest != "" {
		name = fixTags.Replace(meta.Suggest)
	}

	results := make([]domain.GeocodeResult, 0, len(collection.FeatureMember))
	for _, member := range collection.FeatureMember {
		obj := member.GeoObject
		if obj == nil || obj.Point.Pos == "" {
			continue
		}
		geocoderMeta := obj.MetaDataProperty.GeocoderMetaData
		results = append(results, domain.GeocodeResult{
			Name:        name,
			FullAddress: geocoderMeta.Address.Formatted,
			Coordinates: obj.Point.Pos,
			CountryCode: geocoderMeta.Address.CountryCode,
			Kind:        geocoderMeta.Kind,
		})
	}
	return results
}
