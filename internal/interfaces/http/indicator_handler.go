package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ecogestion/raee-api/internal/application/analytics"
	"github.com/ecogestion/raee-api/internal/application/dto"
	"github.com/ecogestion/raee-api/internal/application/indicators"
)

// IndicatorHandler maneja los indicadores ambientales.
type IndicatorHandler struct {
	indicatorUC *indicators.UseCase
	analyticsUC *analytics.UseCase
}

// NewIndicatorHandler construye el handler de indicadores.
func NewIndicatorHandler(indicatorUC *indicators.UseCase, analyticsUC *analytics.UseCase) *IndicatorHandler {
	return &IndicatorHandler{indicatorUC: indicatorUC, analyticsUC: analyticsUC}
}

// Summary godoc
// @Summary      Última lectura por tipo de indicador
// @Tags         environmental
// @Produce      json
// @Security     BearerAuth
// @Param        zone  query  string  false  "lecturas de una zona específica"
// @Success      200  {array}  dto.IndicatorResponse
// @Router       /api/data/environmental [get]
func (h *IndicatorHandler) Summary(c *fiber.Ctx) error {
	if zone := c.Query("zone"); zone != "" {
		out, err := h.indicatorUC.ListByZone(c.Context(), zone)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.analyticsUC.EnvironmentalSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Record godoc
// @Summary      Registrar lectura ambiental
// @Tags         environmental
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.RecordIndicatorRequest  true  "lectura del indicador"
// @Success      201   {object}  dto.IndicatorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/data/environmental [post]
func (h *IndicatorHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordIndicatorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.indicatorUC.Record(c.Context(), in, GetUserID(c), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
