package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/geoinfo-bot/internal/pkg/utils"
	"github.com/geoinfo-bot/internal/pkg/validator"
	"github.com/geoinfo-bot/internal/usecase/dto"
)

// CurrencyHandler - курсы валют по списку кодов
type CurrencyHandler struct {
	ratesUC RatesProvider
	logger  *zap.Logger
}

// NewCurrencyHandler - создание нового CurrencyHandler
func NewCurrencyHandler(ratesUC RatesProvider, logger *zap.Logger) *CurrencyHandler {
	return &CurrencyHandler{
		ratesUC: ratesUC,
		logger:  logger,
	}
}

// GetRates godoc
// @Summary Курсы валют к рублю
// @Description Коды, которых нет в таблице ЦБ, пропускаются. Если не найден ни один, ответ 404.
// @Tags Currencies
// @Produce json
// @Param codes query string true "Буквенные коды через запятую, например USD,EUR"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.CurrencyRate}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/currencies/rates [get]
func (h *CurrencyHandler) GetRates(c *fiber.Ctx) error {
	req := dto.CurrencyRatesRequest{Codes: splitCodes(c.Query("codes"))}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	rates, err := h.ratesUC.CurrencyRates(c.UserContext(), req.Codes)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, rates, &utils.Meta{Total: len(rates)})
}

func splitCodes(raw string) []string {
	var codes []string
	for _, code := range strings.Split(raw, ",") {
		if code = strings.ToUpper(strings.TrimSpace(code)); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}
