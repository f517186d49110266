package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ecogestion/raee-api/internal/application/dto"
	"github.com/ecogestion/raee-api/internal/application/entries"
	"github.com/ecogestion/raee-api/internal/application/reports"
	"github.com/ecogestion/raee-api/internal/domain/repository"
)

// EntryHandler maneja entradas de residuos y reportes.
type EntryHandler struct {
	entryUC  *entries.UseCase
	reportUC *reports.UseCase
}

// NewEntryHandler construye el handler de entradas.
func NewEntryHandler(entryUC *entries.UseCase, reportUC *reports.UseCase) *EntryHandler {
	return &EntryHandler{entryUC: entryUC, reportUC: reportUC}
}

// Create godoc
// @Summary      Registrar entrada de residuos
// @Tags         entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateWasteEntryRequest  true  "datos de la entrada"
// @Success      201   {object}  dto.WasteEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/data/waste-entry [post]
func (h *EntryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWasteEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.entryUC.CreateEntry(c.Context(), in, GetUserID(c), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una entrada
// @Tags         entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        entryId  path  string  true  "ID de la entrada"
// @Param        body     body  dto.UpdateEntryStatusRequest  true  "status, notes, rejectedReason"
// @Success      200      {object}  dto.WasteEntryResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      403      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/data/entry/{entryId}/status [put]
func (h *EntryHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateEntryStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.entryUC.UpdateStatus(c.Context(), c.Params("entryId"), in.Status, GetUserID(c), GetRole(c), in.Notes, in.RejectedReason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de estados de una entrada
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Param        entryId  path  string  true  "ID de la entrada"
// @Success      200      {object}  dto.EntryStatusHistoryResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/data/entry/{entryId}/history [get]
func (h *EntryHandler) History(c *fiber.Ctx) error {
	out, err := h.entryUC.GetStatusHistory(c.Context(), c.Params("entryId"), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Recent godoc
// @Summary      Entradas recientes
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query  int  false  "máximo de entradas (por defecto 10)"
// @Success      200    {array}  dto.WasteEntryResponse
// @Router       /api/data/recent-entries [get]
func (h *EntryHandler) Recent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	out, err := h.entryUC.RecentEntries(c.Context(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Latest godoc
// @Summary      Última entrada registrada
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.WasteEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/data/latest-entry [get]
func (h *EntryHandler) Latest(c *fiber.Ctx) error {
	out, err := h.entryUC.LatestEntry(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no hay entradas registradas"})
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte de entradas por rango de fechas
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        startDate  query  string  true   "YYYY-MM-DD"
// @Param        endDate    query  string  true   "YYYY-MM-DD"
// @Param        wasteType  query  string  false  "filtro por tipo"
// @Param        zone       query  string  false  "filtro por zona"
// @Param        status     query  string  false  "filtro por estado"
// @Success      200        {object}  dto.ReportResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      403        {object}  dto.ErrorResponse
// @Router       /api/data/reports [get]
func (h *EntryHandler) Report(c *fiber.Ctx) error {
	start, end, filters, err := reportParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.entryUC.BuildReport(c.Context(), start, end, filters, GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ReportPDF godoc
// @Summary      Reporte de entradas en PDF
// @Tags         reports
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        startDate  query  string  true  "YYYY-MM-DD"
// @Param        endDate    query  string  true  "YYYY-MM-DD"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/data/reports/pdf [get]
func (h *EntryHandler) ReportPDF(c *fiber.Ctx) error {
	start, end, filters, err := reportParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	data, err := h.reportUC.GeneratePDF(c.Context(), start, end, filters, GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	filename := fmt.Sprintf("reporte-residuos-%s-%s.pdf", start.Format("20060102"), end.Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

func reportParams(c *fiber.Ctx) (start, end time.Time, filters repository.EntryFilters, err error) {
	start, err = time.Parse("2006-01-02", c.Query("startDate"))
	if err != nil {
		return start, end, filters, fmt.Errorf("startDate inválida (YYYY-MM-DD)")
	}
	end, err = time.Parse("2006-01-02", c.Query("endDate"))
	if err != nil {
		return start, end, filters, fmt.Errorf("endDate inválida (YYYY-MM-DD)")
	}
	if end.Before(start) {
		return start, end, filters, fmt.Errorf("endDate anterior a startDate")
	}
	filters = repository.EntryFilters{
		WasteType: c.Query("wasteType"),
		Zone:      c.Query("zone"),
		Status:    c.Query("status"),
	}
	return start, end, filters, nil
}
