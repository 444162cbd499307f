package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/geoinfo-bot/internal/domain"
	"github.com/geoinfo-bot/internal/pkg/errors"
	"github.com/geoinfo-bot/internal/pkg/utils"
	"github.com/geoinfo-bot/internal/pkg/validator"
	"github.com/geoinfo-bot/internal/usecase/dto"
)

// CountryHandler - обработчик запросов по странам.
// Все маршруты сначала находят страну по названию, затем берут нужную часть сведений.
type CountryHandler struct {
	countryUC CountryResolver
	logger    *zap.Logger
}

// NewCountryHandler - создание нового CountryHandler
func NewCountryHandler(countryUC CountryResolver, logger *zap.Logger) *CountryHandler {
	return &CountryHandler{
		countryUC: countryUC,
		logger:    logger,
	}
}

// GetCountry godoc
// @Summary Сведения о стране
// @Tags Countries
// @Produce json
// @Param name query string true "Название страны"
// @Success 200 {object} utils.SuccessResponse{data=domain.Country}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/countries [get]
func (h *CountryHandler) GetCountry(c *fiber.Ctx) error {
	geocode, err := h.resolve(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	country, err := h.countryUC.CountryDetail(c.UserContext(), geocode)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, country, nil)
}

// GetOverview godoc
// @Summary Сводка по стране
// @Description Сведения, языки, валюты и столица. Если не удалось получить хотя бы одну часть, страна не найдена.
// @Tags Countries
// @Produce json
// @Param name query string true "Название страны"
// @Success 200 {object} utils.SuccessResponse{data=dto.CountryOverviewResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/countries/overview [get]
func (h *CountryHandler) GetOverview(c *fiber.Ctx) error {
	geocode, err := h.resolve(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	overview, err := h.countryUC.CountryOverview(c.UserContext(), geocode)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.CountryOverviewResponse{
		Geocode:  geocode,
		Overview: overview,
	}, nil)
}

// GetRates godoc
// @Summary Курсы валют страны
// @Tags Countries
// @Produce json
// @Param name query string true "Название страны"
// @Success 200 {object} utils.SuccessResponse{data=dto.CountryRatesResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/countries/rates [get]
func (h *CountryHandler) GetRates(c *fiber.Ctx) error {
	geocode, err := h.resolve(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	rates, err := h.countryUC.CountryRates(c.UserContext(), geocode)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, rates, &utils.Meta{Total: len(rates.Rates)})
}

// GetCapitalWeather godoc
// @Summary Погода в столице страны
// @Tags Countries
// @Produce json
// @Param name query string true "Название страны"
// @Success 200 {object} utils.SuccessResponse{data=dto.CapitalWeatherResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/countries/weather [get]
func (h *CountryHandler) GetCapitalWeather(c *fiber.Ctx) error {
	geocode, err := h.resolve(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	weather, err := h.countryUC.CapitalWeather(c.UserContext(), geocode)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, weather, nil)
}

func (h *CountryHandler) resolve(c *fiber.Ctx) (*domain.GeocodeResult, error) {
	var req dto.CountryNameRequest
	if err := c.QueryParser(&req); err != nil {
		return nil, errors.ErrInvalidCountryName
	}
	if err := validator.Validate(&req); err != nil {
		return nil, errors.ErrInvalidCountryName
	}
	return h.countryUC.ResolveCountry(c.UserContext(), req.Name)
}
