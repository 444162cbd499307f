package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geoinfo",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "geoinfo",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"method", "path"})

	// CacheHits - попадания в кеш по пространству ключей
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geoinfo",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits",
	}, []string{"namespace"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geoinfo",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses",
	}, []string{"namespace"})

	// ResolveTier - на каком уровне каскада была получена часть ответа
	ResolveTier = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geoinfo",
		Subsystem: "resolver",
		Name:      "tier_total",
		Help:      "Facet resolutions by tier (cache, store, provider, miss)",
	}, []string{"facet", "tier"})

	ProviderRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geoinfo",
		Subsystem: "provider",
		Name:      "requests_total",
		Help:      "External API requests by provider and outcome",
	}, []string{"provider", "outcome"})

	ProviderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "geoinfo",
		Subsystem: "provider",
		Name:      "request_duration_seconds",
		Help:      "External API latency including retries",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"provider"})

	RefreshRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geoinfo",
		Subsystem: "refresh",
		Name:      "runs_total",
		Help:      "Currency cache refresh runs by outcome",
	}, []string{"outcome"})

	RefreshedEntries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "geoinfo",
		Subsystem: "refresh",
		Name:      "entries_updated_total",
		Help:      "Cached countries whose currency rates were rewritten",
	})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		return err
	}
}

// Handler returns a Fiber handler serving Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}
