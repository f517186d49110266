package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ecogestion/raee-api/internal/application/analytics"
	"github.com/ecogestion/raee-api/internal/application/dto"
)

// DashboardHandler expone los agregados para el panel de control.
type DashboardHandler struct {
	uc *analytics.UseCase
}

// NewDashboardHandler construye el handler del dashboard.
func NewDashboardHandler(uc *analytics.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Capacity godoc
// @Summary      Ocupación por zona
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.ZoneCapacityDTO
// @Router       /api/data/capacity [get]
func (h *DashboardHandler) Capacity(c *fiber.Ctx) error {
	out, err := h.uc.CapacityByZone(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Distribution godoc
// @Summary      Distribución por tipo de residuo
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        startDate  query  string  false  "YYYY-MM-DD"
// @Param        endDate    query  string  false  "YYYY-MM-DD"
// @Success      200  {array}  dto.WasteDistributionDTO
// @Router       /api/data/waste-distribution [get]
func (h *DashboardHandler) Distribution(c *fiber.Ctx) error {
	var start, end *time.Time
	if s := c.Query("startDate"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "startDate inválida (YYYY-MM-DD)"})
		}
		start = &t
	}
	if s := c.Query("endDate"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "endDate inválida (YYYY-MM-DD)"})
		}
		end = &t
	}
	out, err := h.uc.WasteDistribution(c.Context(), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Weekly godoc
// @Summary      Tonelaje de los últimos 7 días
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.WeeklyDayDTO
// @Router       /api/data/weekly-waste [get]
func (h *DashboardHandler) Weekly(c *fiber.Ctx) error {
	out, err := h.uc.WeeklyWaste(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Monthly godoc
// @Summary      Acumulado de los últimos 30 días
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.MonthlyDataDTO
// @Router       /api/data/monthly [get]
func (h *DashboardHandler) Monthly(c *fiber.Ctx) error {
	out, err := h.uc.MonthlyData(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TodayStats godoc
// @Summary      Estadísticas del día
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.TodayStatsDTO
// @Router       /api/data/today-stats [get]
func (h *DashboardHandler) TodayStats(c *fiber.Ctx) error {
	out, err := h.uc.TodayStats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// StatsSummary godoc
// @Summary      Resumen global del sistema
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.StatsSummaryDTO
// @Router       /api/data/stats-summary [get]
func (h *DashboardHandler) StatsSummary(c *fiber.Ctx) error {
	out, err := h.uc.StatsSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Panel de control completo
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DashboardDTO
// @Router       /api/data/dashboard [get]
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
