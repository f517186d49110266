package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ecogestion/raee-api/internal/application/alerts"
	"github.com/ecogestion/raee-api/internal/application/dto"
	"github.com/ecogestion/raee-api/internal/domain/entity"
)

// AlertHandler maneja las alertas operativas.
type AlertHandler struct {
	uc *alerts.UseCase
}

// NewAlertHandler construye el handler de alertas.
func NewAlertHandler(uc *alerts.UseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// List godoc
// @Summary      Alertas activas
// @Tags         alerts
// @Produce      json
// @Security     BearerAuth
// @Param        zone      query  string  false  "filtrar por zona"
// @Param        priority  query  string  false  "critical = solo high/critical"
// @Param        limit     query  int     false  "máximo de alertas"
// @Success      200  {array}  dto.AlertResponse
// @Router       /api/data/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	if zone := c.Query("zone"); zone != "" {
		out, err := h.uc.AlertsByZone(c.Context(), zone)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
	if c.Query("priority") == entity.PriorityCritical {
		out, err := h.uc.CriticalAlerts(c.Context())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.uc.ActiveAlerts(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear alerta manual
// @Tags         alerts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateAlertRequest  true  "type, priority, title, message, zone"
// @Success      201   {object}  dto.AlertResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/data/alerts [post]
func (h *AlertHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAlertRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateManualAlert(c.Context(), in, GetUserID(c), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Resolve godoc
// @Summary      Resolver una alerta
// @Tags         alerts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "ID de la alerta"
// @Param        body  body  dto.ResolveAlertRequest  false  "resolutionNotes"
// @Success      200   {object}  dto.AlertResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/data/alerts/{id}/resolve [put]
func (h *AlertHandler) Resolve(c *fiber.Ctx) error {
	var in dto.ResolveAlertRequest
	_ = c.BodyParser(&in) // cuerpo opcional
	out, err := h.uc.Resolve(c.Context(), c.Params("id"), GetUserID(c), GetRole(c), in.ResolutionNotes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reactivate godoc
// @Summary      Reactivar una alerta resuelta
// @Tags         alerts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.AlertResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/data/alerts/{id}/reactivate [put]
func (h *AlertHandler) Reactivate(c *fiber.Ctx) error {
	out, err := h.uc.Reactivate(c.Context(), c.Params("id"), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Marcar alerta como leída
// @Tags         alerts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.AlertResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/data/alerts/{id}/read [put]
func (h *AlertHandler) MarkRead(c *fiber.Ctx) error {
	out, err := h.uc.MarkRead(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
