package http

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/geoinfo-bot/internal/config"
	"github.com/geoinfo-bot/internal/delivery/http/handler"
	"github.com/geoinfo-bot/internal/delivery/http/middleware"
	"github.com/geoinfo-bot/internal/pkg/errors"
	"github.com/geoinfo-bot/internal/pkg/metrics"
	"github.com/geoinfo-bot/internal/pkg/utils"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	cityHandler     *handler.CityHandler
	countryHandler  *handler.CountryHandler
	currencyHandler *handler.CurrencyHandler
	healthHandler   *handler.HealthHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	cityHandler *handler.CityHandler,
	countryHandler *handler.CountryHandler,
	currencyHandler *handler.CurrencyHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "GeoInfo Bot API",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		cityHandler:     cityHandler,
		countryHandler:  countryHandler,
		currencyHandler: currencyHandler,
		healthHandler:   healthHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.AllowOrigins))
	s.app.Use(metrics.Middleware())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	s.app.Get("/metrics", metrics.Handler())

	api := s.app.Group("/api/v1")

	api.Get("/health", s.healthHandler.Health)

	// Cities
	api.Get("/cities", s.cityHandler.ResolveCity)
	api.Get("/cities/weather", s.cityHandler.CityWeather)
	api.Get("/cities/record", s.cityHandler.CityRecord)

	// Countries
	api.Get("/countries", s.countryHandler.GetCountry)
	api.Get("/countries/overview", s.countryHandler.GetOverview)
	api.Get("/countries/rates", s.countryHandler.GetRates)
	api.Get("/countries/weather", s.countryHandler.GetCapitalWeather)

	// Currencies
	api.Get("/currencies/rates", s.currencyHandler.GetRates)
}

// App - доступ к fiber приложению, используется в тестах
func (s *Server) App() *fiber.App {
	return s.app
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки fiber (404 маршрута, 405) в формате ErrorResponse
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if stderrors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(utils.ErrorResponse{
				Error: errors.New("HTTP_ERROR", fiberErr.Message, fiberErr.Code),
			})
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
		return utils.SendError(c, err)
	}
}
