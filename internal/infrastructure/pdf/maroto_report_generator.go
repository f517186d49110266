// Package pdf genera el reporte imprimible de entradas de residuos con
// Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Relleno Sanitario  │  Rango del reporte            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Entradas / Tonelaje / por tipo / por zona          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Placa | Tipo | Zona | Neto (t) | Estado      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/ecogestion/raee-api/internal/application/dto"
	"github.com/ecogestion/raee-api/internal/application/reports"
	"github.com/ecogestion/raee-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 27, Green: 94, Blue: 32}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ reports.PDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa reports.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// Generate genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) Generate(report *dto.ReportResponse, start, end time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Entradas de Residuos", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(start, end))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(report.Summary)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(report.Entries) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y rango de fechas (der).
func headerRow(start, end time.Time) core.Row {
	rango := fmt.Sprintf("%s — %s", start.Format("02/01/2006"), end.Format("02/01/2006"))
	return row.New(16).Add(
		col.New(7).Add(
			text.New("Relleno Sanitario — Sistema RAEE", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de entradas de residuos", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PERÍODO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(rango, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
			text.New("Generado: "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// summaryRows: totales y desglose por tipo y zona en orden fijo de enum.
func summaryRows(s dto.ReportSummary) []core.Row {
	rows := []core.Row{
		row.New(10).Add(
			col.New(6).Add(
				text.New("RESUMEN", props.Text{
					Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
				}),
				text.New(fmt.Sprintf("Entradas: %d   |   Tonelaje total: %s t",
					s.TotalEntries, s.TotalTonnage.StringFixed(1)),
					props.Text{Size: 9, Top: 6}),
			),
		),
	}

	var typeLine string
	for _, t := range entity.WasteTypes {
		g := s.ByType[t]
		if typeLine != "" {
			typeLine += "   |   "
		}
		typeLine += fmt.Sprintf("%s: %d (%s t)", t, g.Count, g.Tonnage.StringFixed(1))
	}
	var zoneLine string
	for _, z := range entity.Zones {
		g := s.ByZone[z]
		if zoneLine != "" {
			zoneLine += "   |   "
		}
		zoneLine += fmt.Sprintf("%s: %d (%s t)", z, g.Count, g.Tonnage.StringFixed(1))
	}

	rows = append(rows,
		row.New(6).Add(col.New(12).Add(
			text.New("Por tipo:  "+typeLine, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)),
		row.New(6).Add(col.New(12).Add(
			text.New("Por zona:  "+zoneLine, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)),
	)
	return rows
}

// tableHeaderRow: cabecera de la tabla de entradas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Placa", 2, align.Left),
		h("Tipo", 2, align.Left),
		h("Zona", 2, align.Left),
		h("Neto (t)", 2, align.Right),
		h("Estado", 2, align.Center),
	)
}

// tableRows: una fila por entrada del rango.
func tableRows(entries []dto.WasteEntryResponse) []core.Row {
	result := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(
				e.CreatedAt.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				e.TransporterPlate,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				e.WasteType,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				e.Zone,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				e.NetWeight.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				e.Status,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
		))
	}
	return result
}
