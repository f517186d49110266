// Package analytics contiene los casos de uso de agregación para el dashboard
// y las vistas de estadísticas: capacidad por zona, distribución por tipo,
// series semanales y resúmenes diarios/mensuales.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ecogestion/raee-api/internal/application/dto"
	"github.com/ecogestion/raee-api/internal/domain/capacity"
	"github.com/ecogestion/raee-api/internal/domain/entity"
	"github.com/ecogestion/raee-api/internal/domain/repository"
)

// AlertLister alertas activas para el dashboard (lo implementa alerts.UseCase).
type AlertLister interface {
	DashboardAlerts(ctx context.Context) ([]dto.AlertResponse, error)
}

// EntryReader última entrada para el dashboard (lo implementa entries.UseCase).
type EntryReader interface {
	LatestEntry(ctx context.Context) (*dto.WasteEntryResponse, error)
}

// UseCase agregaciones de solo lectura.
type UseCase struct {
	entryRepo     repository.WasteEntryRepository
	indicatorRepo repository.IndicatorRepository
	alertLister   AlertLister
	entryReader   EntryReader
	zoneMax       decimal.Decimal
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	entryRepo repository.WasteEntryRepository,
	indicatorRepo repository.IndicatorRepository,
	alertLister AlertLister,
	entryReader EntryReader,
	zoneMax decimal.Decimal,
) *UseCase {
	return &UseCase{
		entryRepo:     entryRepo,
		indicatorRepo: indicatorRepo,
		alertLister:   alertLister,
		entryReader:   entryReader,
		zoneMax:       zoneMax,
	}
}

// CapacityByZone ocupación de las 4 zonas fijas, incondicionalmente: las zonas
// sin entradas completed reportan current = 0. La etiqueta de estado sale de
// la misma tabla de bandas que la generación de alertas.
func (uc *UseCase) CapacityByZone(ctx context.Context) ([]dto.ZoneCapacityDTO, error) {
	usage, err := uc.entryRepo.UsageByZone(ctx)
	if err != nil {
		return nil, fmt.Errorf("capacidad por zona: %w", err)
	}
	byZone := make(map[string]decimal.Decimal, len(usage))
	for _, u := range usage {
		byZone[u.Zone] = u.Tonnage
	}

	out := make([]dto.ZoneCapacityDTO, 0, len(entity.Zones))
	for _, zone := range entity.Zones {
		current := byZone[zone]
		pct := capacity.Percentage(current, uc.zoneMax)
		out = append(out, dto.ZoneCapacityDTO{
			Zone:       zone,
			Current:    current.Round(1),
			Maximum:    uc.zoneMax,
			Percentage: pct,
			Status:     bandLabel(capacity.BandFor(pct)),
		})
	}
	return out, nil
}

// WasteDistribution distribución por tipo de residuo, opcionalmente filtrada
// por rango de fechas. Los porcentajes se redondean de forma independiente:
// la suma puede no dar exactamente 100 y eso es una deriva aceptada.
func (uc *UseCase) WasteDistribution(ctx context.Context, start, end *time.Time) ([]dto.WasteDistributionDTO, error) {
	groups, err := uc.entryRepo.Distribution(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("distribución de residuos: %w", err)
	}
	total := decimal.Zero
	for _, g := range groups {
		total = total.Add(g.Tonnage)
	}

	out := make([]dto.WasteDistributionDTO, 0, len(groups))
	for _, g := range groups {
		pct := 0
		if total.GreaterThan(decimal.Zero) {
			pct = int(g.Tonnage.Div(total).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
		}
		out = append(out, dto.WasteDistributionDTO{
			Type:       g.WasteType,
			Count:      g.Count,
			Tonnage:    g.Tonnage.Round(1),
			Percentage: pct,
		})
	}
	return out, nil
}

// TodayStats entradas, tonelaje, promedio y hora pico del día en curso
// (todas las entradas, no solo completed).
func (uc *UseCase) TodayStats(ctx context.Context) (*dto.TodayStatsDTO, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)

	list, err := uc.entryRepo.FindByDateRange(ctx, dayStart, dayEnd, repository.EntryFilters{})
	if err != nil {
		return nil, fmt.Errorf("estadísticas de hoy: %w", err)
	}

	total := decimal.Zero
	hourCounts := map[int]int{}
	for i := range list {
		total = total.Add(list[i].NetWeight())
		hourCounts[list[i].CreatedAt.Hour()]++
	}
	average := decimal.Zero
	if len(list) > 0 {
		average = total.Div(decimal.NewFromInt(int64(len(list))))
	}
	// Sin entradas no hay hora pico; "00:00" sería un pico real de medianoche
	peakHour := "N/A"
	if len(list) > 0 {
		peak := 0
		for hour, count := range hourCounts {
			if count > hourCounts[peak] || (count == hourCounts[peak] && hour < peak) {
				peak = hour
			}
		}
		peakHour = fmt.Sprintf("%02d:00", peak)
	}

	return &dto.TodayStatsDTO{
		TotalEntries:  len(list),
		TotalTonnage:  total.Round(1),
		AverageWeight: average.Round(1),
		PeakHour:      peakHour,
	}, nil
}

// WeeklyWaste tonelaje diario de entradas completed de los últimos 7 días.
func (uc *UseCase) WeeklyWaste(ctx context.Context) ([]dto.WeeklyDayDTO, error) {
	now := time.Now()
	out := make([]dto.WeeklyDayDTO, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)

		list, err := uc.entryRepo.FindByDateRange(ctx, dayStart, dayEnd, repository.EntryFilters{Status: entity.StatusCompleted})
		if err != nil {
			return nil, fmt.Errorf("serie semanal: %w", err)
		}
		total := decimal.Zero
		for j := range list {
			total = total.Add(list[j].NetWeight())
		}
		out = append(out, dto.WeeklyDayDTO{
			Day:     weekdayAbbrES(dayStart.Weekday()),
			Date:    dayStart.Format("2006-01-02"),
			Tonnage: total.Round(1),
			Entries: len(list),
		})
	}
	return out, nil
}

// MonthlyData totales y promedio diario de los últimos 30 días (completed).
func (uc *UseCase) MonthlyData(ctx context.Context) (*dto.MonthlyDataDTO, error) {
	now := time.Now()
	monthAgo := now.AddDate(0, -1, 0)

	list, err := uc.entryRepo.FindByDateRange(ctx, monthAgo, now, repository.EntryFilters{Status: entity.StatusCompleted})
	if err != nil {
		return nil, fmt.Errorf("datos mensuales: %w", err)
	}
	total := decimal.Zero
	for i := range list {
		total = total.Add(list[i].NetWeight())
	}
	return &dto.MonthlyDataDTO{
		TotalTonnage: total.Round(1),
		TotalEntries: len(list),
		AverageDaily: total.Div(decimal.NewFromInt(30)).Round(1),
		Period:       "30 días",
	}, nil
}

// TotalProcessed tonelaje neto total de entradas completed.
func (uc *UseCase) TotalProcessed(ctx context.Context) (decimal.Decimal, error) {
	total, err := uc.entryRepo.TotalProcessedTonnes(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total procesado: %w", err)
	}
	return total.Round(1), nil
}

// EnvironmentalSummary última lectura activa por tipo de indicador.
func (uc *UseCase) EnvironmentalSummary(ctx context.Context) ([]dto.IndicatorResponse, error) {
	list, err := uc.indicatorRepo.CurrentSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("resumen ambiental: %w", err)
	}
	out := make([]dto.IndicatorResponse, 0, len(list))
	for i := range list {
		out = append(out, toIndicatorResponse(&list[i]))
	}
	return out, nil
}

// Dashboard arma el payload completo del dashboard. Las consultas
// independientes se lanzan en paralelo; la primera que falle aborta.
func (uc *UseCase) Dashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	type result struct {
		apply func(*dto.DashboardDTO)
		err   error
	}
	ch := make(chan result, 8)

	go func() {
		v, err := uc.WeeklyWaste(ctx)
		ch <- result{func(d *dto.DashboardDTO) { d.WeeklyWaste = v }, err}
	}()
	go func() {
		v, err := uc.MonthlyData(ctx)
		ch <- result{func(d *dto.DashboardDTO) { d.MonthlyData = *v }, err}
	}()
	go func() {
		v, err := uc.WasteDistribution(ctx, nil, nil)
		ch <- result{func(d *dto.DashboardDTO) { d.WasteDistribution = v }, err}
	}()
	go func() {
		v, err := uc.CapacityByZone(ctx)
		ch <- result{func(d *dto.DashboardDTO) { d.Capacity = v }, err}
	}()
	go func() {
		v, err := uc.EnvironmentalSummary(ctx)
		ch <- result{func(d *dto.DashboardDTO) { d.EnvironmentalIndicators = v }, err}
	}()
	go func() {
		v, err := uc.alertLister.DashboardAlerts(ctx)
		ch <- result{func(d *dto.DashboardDTO) { d.Alerts = v }, err}
	}()
	go func() {
		v, err := uc.TodayStats(ctx)
		ch <- result{func(d *dto.DashboardDTO) { d.TodayStats = *v }, err}
	}()
	go func() {
		v, err := uc.entryReader.LatestEntry(ctx)
		ch <- result{func(d *dto.DashboardDTO) { d.LatestEntry = v }, err}
	}()

	dash := &dto.DashboardDTO{}
	for i := 0; i < 8; i++ {
		r := <-ch
		if r.err != nil {
			return nil, r.err
		}
		r.apply(dash)
	}

	total, err := uc.TotalProcessed(ctx)
	if err != nil {
		return nil, err
	}
	dash.TotalProcessed = total
	dash.MaxCapacity = uc.zoneMax.Mul(decimal.NewFromInt(int64(len(entity.Zones))))
	return dash, nil
}

// StatsSummary resumen para la vista de estadísticas.
func (uc *UseCase) StatsSummary(ctx context.Context) (*dto.StatsSummaryDTO, error) {
	today, err := uc.TodayStats(ctx)
	if err != nil {
		return nil, err
	}
	total, err := uc.TotalProcessed(ctx)
	if err != nil {
		return nil, err
	}
	zones, err := uc.CapacityByZone(ctx)
	if err != nil {
		return nil, err
	}
	dist, err := uc.WasteDistribution(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	maxTotal := uc.zoneMax.Mul(decimal.NewFromInt(int64(len(entity.Zones))))
	return &dto.StatsSummaryDTO{
		Today:              *today,
		TotalProcessed:     total,
		Capacity:           zones,
		WasteDistribution:  dist,
		MaxCapacity:        maxTotal,
		CapacityPercentage: capacity.Percentage(total, maxTotal),
	}, nil
}

// bandLabel etiqueta de estado del dashboard para una banda.
func bandLabel(b capacity.Band) string {
	if b == capacity.BandNone {
		return "normal"
	}
	return string(b)
}

// weekdayAbbrES abreviaturas es-ES de los días de la semana.
func weekdayAbbrES(d time.Weekday) string {
	switch d {
	case time.Monday:
		return "lun"
	case time.Tuesday:
		return "mar"
	case time.Wednesday:
		return "mié"
	case time.Thursday:
		return "jue"
	case time.Friday:
		return "vie"
	case time.Saturday:
		return "sáb"
	default:
		return "dom"
	}
}

func toIndicatorResponse(i *entity.EnvironmentalIndicator) dto.IndicatorResponse {
	return dto.IndicatorResponse{
		ID:                i.ID,
		Name:              i.Name,
		Type:              i.Type,
		Value:             i.Value,
		Unit:              i.Unit,
		Status:            i.Status,
		Zone:              i.Zone,
		WarningThreshold:  i.WarningThreshold,
		CriticalThreshold: i.CriticalThreshold,
		SensorID:          i.SensorID,
		RecordedAt:        i.CreatedAt,
	}
}
