package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/geoinfo-bot/internal/delivery/http/middleware"
	"github.com/geoinfo-bot/internal/pkg/errors"
	"github.com/geoinfo-bot/internal/pkg/utils"
	"github.com/geoinfo-bot/internal/pkg/validator"
	"github.com/geoinfo-bot/internal/usecase/dto"
)

// CityHandler - обработчик запросов по городам
type CityHandler struct {
	cityUC CityResolver
	logger *zap.Logger
}

// NewCityHandler - создание нового CityHandler
func NewCityHandler(cityUC CityResolver, logger *zap.Logger) *CityHandler {
	return &CityHandler{
		cityUC: cityUC,
		logger: logger,
	}
}

// ResolveCity godoc
// @Summary Поиск города по названию
// @Description Возвращает кандидатов из геокодера. Если кандидатов несколько, meta.ambiguous = true и клиент выбирает город по координатам.
// @Tags Cities
// @Produce json
// @Param name query string true "Название города"
// @Success 200 {object} utils.SuccessResponse{data=dto.CityResolution}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/cities [get]
func (h *CityHandler) ResolveCity(c *fiber.Ctx) error {
	var req dto.CityNameRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidCityName)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidCityName)
	}

	result, err := h.cityUC.ResolveCity(c.UserContext(), req.Name)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:     len(result.Candidates),
		Ambiguous: result.Ambiguous,
		RequestID: middleware.GetRequestID(c),
	})
}

// CityWeather godoc
// @Summary Погода по координатам
// @Tags Cities
// @Produce json
// @Param lat query number true "Широта"
// @Param lon query number true "Долгота"
// @Success 200 {object} utils.SuccessResponse{data=domain.Weather}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/cities/weather [get]
func (h *CityHandler) CityWeather(c *fiber.Ctx) error {
	if c.Query("lat") == "" || c.Query("lon") == "" {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}

	var req dto.WeatherRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}

	weather, err := h.cityUC.CityWeather(c.UserContext(), req.Lat, req.Lon)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, weather, nil)
}

// CityRecord godoc
// @Summary Сохранённый город по координатам
// @Description Координаты в формате "lon lat" или "lon_lat"
// @Tags Cities
// @Produce json
// @Param coordinates query string true "Координаты города"
// @Success 200 {object} utils.SuccessResponse{data=domain.City}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/cities/record [get]
func (h *CityHandler) CityRecord(c *fiber.Ctx) error {
	var req dto.CityRecordRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}

	city, err := h.cityUC.CityByCoordinates(c.UserContext(), req.Coordinates)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, city, nil)
}
