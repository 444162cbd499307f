package cbr

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/geoinfo-bot/internal/config"
	"github.com/geoinfo-bot/internal/domain"
	"github.com/geoinfo-bot/internal/domain/repository"
	"github.com/geoinfo-bot/internal/pkg/httpretry"
)

const providerName = "cbr"

type client struct {
	http   *httpretry.Client
	url    string
	logger *zap.Logger
}

// NewCurrencyClient создает клиент для ежедневной JSON выгрузки курсов ЦБ
func NewCurrencyClient(cfg *config.ProvidersConfig, logger *zap.Logger) repository.CurrencyRepository {
	return newClient(httpretry.New(providerName, cfg.RequestTimeout, cfg.MaxRetries, logger), cfg.CurrencyInfoURL, logger)
}

func newClient(http *httpretry.Client, url string, logger *zap.Logger) *client {
	return &client{http: http, url: url, logger: logger}
}

type dailyResponse struct {
	Date   string                         `json:"Date"`
	Valute map[string]domain.CurrencyRate `json:"Valute"`
}

// GetRates возвращает полную таблицу курсов; пустая выгрузка считается ошибкой
func (c *client) GetRates(ctx context.Context) (domain.RateTable, error) {
	var resp dailyResponse
	if err := c.http.GetJSON(ctx, c.url, nil, &resp); err != nil {
		return nil, fmt.Errorf("get currency rates: %w", err)
	}
	if len(resp.Valute) == 0 {
		return nil, fmt.Errorf("get currency rates: empty rate table")
	}

	c.logger.Debug("Currency rates received",
		zap.String("date", resp.Date),
		zap.Int("count", len(resp.Valute)))

	return domain.RateTable(resp.Valute), nil
}
