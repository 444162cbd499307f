package openweather

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/geoinfo-bot/internal/config"
	"github.com/geoinfo-bot/internal/domain"
	"github.com/geoinfo-bot/internal/domain/repository"
	"github.com/geoinfo-bot/internal/pkg/httpretry"
)

const providerName = "openweather"

// conditionLabels - подписи для группы погодных условий OpenWeather (поле weather[].main)
var conditionLabels = map[string]string{
	"Thunderstorm": "гроза",
	"Drizzle":      "морось",
	"Rain":         "дождь",
	"Snow":         "снег",
	"Mist":         "туман",
	"Smoke":        "дым",
	"Haze":         "туман",
	"Dust":         "пыль",
	"Fog":          "густой туман",
	"Sand":         "песчаная буря",
	"Ash":          "вулканический пепел",
	"Squall":       "шторм",
	"Tornado":      "торнадо",
	"Clouds":       "облачно",
	"Clear":        "ясно",
}

type client struct {
	http    *httpretry.Client
	baseURL string
	apiKey  string
	logger  *zap.Logger
}

// NewWeatherClient создает клиент для OpenWeather current weather API
func NewWeatherClient(cfg *config.ProvidersConfig, logger *zap.Logger) repository.WeatherRepository {
	return newClient(httpretry.New(providerName, cfg.RequestTimeout, cfg.MaxRetries, logger),
		cfg.WeatherInfoURL, cfg.WeatherAPIKey, logger)
}

func newClient(http *httpretry.Client, baseURL, apiKey string, logger *zap.Logger) *client {
	return &client{http: http, baseURL: baseURL, apiKey: apiKey, logger: logger}
}

type weatherResponse struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main *struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// GetWeather возвращает текущую погоду; температуры округлены до десятых
func (c *client) GetWeather(ctx context.Context, lat, lon float64) (*domain.Weather, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")

	var resp weatherResponse
	err := c.http.GetJSON(ctx, c.baseURL, query, &resp)
	if errors.Is(err, httpretry.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get weather %v,%v: %w", lat, lon, err)
	}
	if resp.Main == nil {
		c.logger.Warn("Weather response without main block",
			zap.Float64("lat", lat), zap.Float64("lon", lon))
		return nil, nil
	}

	weather := &domain.Weather{
		Temperature:          round1(resp.Main.Temp),
		TemperatureFeelsLike: round1(resp.Main.FeelsLike),
		MaxTemperature:       round1(resp.Main.TempMax),
		MinTemperature:       round1(resp.Main.TempMin),
		Humidity:             resp.Main.Humidity,
		WindSpeed:            resp.Wind.Speed,
	}
	if len(resp.Weather) > 0 {
		weather.WeatherType = conditionLabel(resp.Weather[0].Main, resp.Weather[0].Description)
	}
	return weather, nil
}

func conditionLabel(group, description string) string {
	if label, ok := conditionLabels[group]; ok {
		return label
	}
	return description
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
