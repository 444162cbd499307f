// Package httpretry выполняет GET запросы к внешним API с таймаутом
// и ограниченным числом повторов с экспоненциальной задержкой.
package httpretry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/geoinfo-bot/internal/pkg/metrics"
)

// ErrNotFound - API ответил 404, повторять бессмысленно
var ErrNotFound = errors.New("resource not found")

// StatusError - ответ с кодом, отличным от 200
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d, body: %s", e.StatusCode, e.Body)
}

// Client - HTTP клиент с повторами для одного провайдера
type Client struct {
	httpClient      *http.Client
	provider        string
	maxRetries      int
	initialInterval time.Duration
	logger          *zap.Logger
}

// New создаёт клиент; timeout ограничивает каждую попытку, maxRetries - число повторов
func New(provider string, timeout time.Duration, maxRetries int, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Client{
		httpClient:      &http.Client{Timeout: timeout},
		provider:        provider,
		maxRetries:      maxRetries,
		initialInterval: 200 * time.Millisecond,
		logger:          logger,
	}
}

// WithInitialInterval меняет начальную задержку между попытками (нужно в тестах)
func (c *Client) WithInitialInterval(d time.Duration) *Client {
	c.initialInterval = d
	return c
}

// GetJSON выполняет GET и декодирует JSON ответ в out
func (c *Client) GetJSON(ctx context.Context, rawURL string, query url.Values, out interface{}) error {
	start := time.Now()
	defer func() {
		metrics.ProviderDuration.WithLabelValues(c.provider).Observe(time.Since(start).Seconds())
	}()

	if len(query) > 0 {
		rawURL = rawURL + "?" + query.Encode()
	}

	attempt := 0
	operation := func() error {
		attempt++
		body, err := c.do(ctx, rawURL)
		if err != nil {
			var statusErr *StatusError
			if errors.As(err, &statusErr) && statusErr.StatusCode < http.StatusInternalServerError {
				if statusErr.StatusCode == http.StatusNotFound {
					return backoff.Permanent(ErrNotFound)
				}
				return backoff.Permanent(err)
			}
			c.logger.Warn("External API request failed",
				zap.String("provider", c.provider),
				zap.Int("attempt", attempt),
				zap.Error(err))
			return err
		}

		if err := json.Unmarshal(body, out); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
		}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.initialInterval
	policy.MaxElapsedTime = 0

	err := backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(policy, uint64(c.maxRetries)), ctx))
	switch {
	case err == nil:
		metrics.ProviderRequests.WithLabelValues(c.provider, "ok").Inc()
	case errors.Is(err, ErrNotFound):
		metrics.ProviderRequests.WithLabelValues(c.provider, "not_found").Inc()
	default:
		metrics.ProviderRequests.WithLabelValues(c.provider, "error").Inc()
		c.logger.Error("External API request gave up",
			zap.String("provider", c.provider),
			zap.Int("attempts", attempt),
			zap.Error(err))
	}
	return err
}

func (c *Client) do(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
