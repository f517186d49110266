// Package reports arma el reporte PDF de entradas por rango de fechas.
package reports

import (
	"context"
	"time"

	"github.com/ecogestion/raee-api/internal/application/dto"
	"github.com/ecogestion/raee-api/internal/domain/repository"
	"github.com/ecogestion/raee-api/pkg/logger"
)

// ReportBuilder produce el reporte tabular (lo implementa entries.UseCase).
type ReportBuilder interface {
	BuildReport(ctx context.Context, start, end time.Time, filters repository.EntryFilters, actorRole string) (*dto.ReportResponse, error)
}

// PDFGenerator renderiza el reporte como PDF.
type PDFGenerator interface {
	Generate(report *dto.ReportResponse, start, end time.Time) ([]byte, error)
}

// UseCase genera el documento PDF del reporte.
type UseCase struct {
	builder ReportBuilder
	pdf     PDFGenerator
	log     *logger.Logger
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(builder ReportBuilder, pdf PDFGenerator, log *logger.Logger) *UseCase {
	return &UseCase{builder: builder, pdf: pdf, log: log}
}

// GeneratePDF arma el reporte del rango y lo renderiza. Las reglas de
// permisos y de rango son las mismas del reporte tabular.
func (uc *UseCase) GeneratePDF(ctx context.Context, start, end time.Time, filters repository.EntryFilters, actorRole string) ([]byte, error) {
	report, err := uc.builder.BuildReport(ctx, start, end, filters, actorRole)
	if err != nil {
		return nil, err
	}
	data, err := uc.pdf.Generate(report, start, end)
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Time("start", start).
		Time("end", end).
		Int("entries", report.Summary.TotalEntries).
		Msg("reporte PDF generado")
	return data, nil
}
