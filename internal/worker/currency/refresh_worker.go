package currency

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/geoinfo-bot/internal/pkg/metrics"
	"github.com/geoinfo-bot/internal/usecase"
	"github.com/geoinfo-bot/internal/worker"
)

const defaultInterval = time.Hour

// RatesRefresher - один проход обновления курсов в кеше
type RatesRefresher interface {
	RefreshCachedRates(ctx context.Context) (*usecase.RefreshStats, error)
}

// RefreshWorker периодически переписывает курсы валют в закешированных странах.
// Первый проход выполняется сразу после запуска.
type RefreshWorker struct {
	*worker.BaseWorker
	refresher RatesRefresher
	interval  time.Duration
}

// NewRefreshWorker создает новый RefreshWorker
func NewRefreshWorker(refresher RatesRefresher, interval time.Duration, logger *zap.Logger) *RefreshWorker {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &RefreshWorker{
		BaseWorker: worker.NewBaseWorker("currency-refresh", logger),
		refresher:  refresher,
		interval:   interval,
	}
}

// Start запускает воркер и блокируется до остановки или отмены контекста
func (w *RefreshWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting currency refresh worker", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.runOnce(ctx)

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

// runOnce выполняет один проход; ошибка прохода не останавливает воркер
func (w *RefreshWorker) runOnce(ctx context.Context) {
	logger := w.Logger().With(zap.String("run_id", uuid.NewString()))
	start := time.Now()

	stats, err := w.refresher.RefreshCachedRates(ctx)
	if err != nil {
		metrics.RefreshRuns.WithLabelValues("error").Inc()
		logger.Error("Currency refresh failed",
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return
	}

	metrics.RefreshRuns.WithLabelValues("success").Inc()
	logger.Info("Currency refresh completed",
		zap.Int("scanned", stats.Scanned),
		zap.Int("updated", stats.Updated),
		zap.Int("skipped", stats.Skipped),
		zap.Int("unchanged", stats.Unchanged),
		zap.Int("failed", stats.Failed),
		zap.Duration("duration", time.Since(start)))
}
