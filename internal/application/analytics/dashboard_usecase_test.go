package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecogestion/raee-api/internal/application/analytics"
	"github.com/ecogestion/raee-api/internal/application/dto"
	"github.com/ecogestion/raee-api/internal/domain"
	"github.com/ecogestion/raee-api/internal/domain/entity"
	"github.com/ecogestion/raee-api/internal/domain/repository"
)

// fakeEntryRepo repositorio de lectura con resultados precargados.
type fakeEntryRepo struct {
	usage        []repository.ZoneUsage
	distribution []repository.TypeAggregate
	byRange      []entity.WasteEntry
	total        decimal.Decimal
}

func (r *fakeEntryRepo) Create(_ context.Context, _ *entity.WasteEntry) error { return nil }
func (r *fakeEntryRepo) Update(_ context.Context, _ *entity.WasteEntry) error { return nil }
func (r *fakeEntryRepo) GetByID(_ context.Context, _ string) (*entity.WasteEntry, error) {
	return nil, domain.ErrNotFound
}
func (r *fakeEntryRepo) Latest(_ context.Context) (*entity.WasteEntry, error) { return nil, nil }
func (r *fakeEntryRepo) ListRecent(_ context.Context, _ int) ([]entity.WasteEntry, error) {
	return nil, nil
}
func (r *fakeEntryRepo) FindByDateRange(_ context.Context, _, _ time.Time, _ repository.EntryFilters) ([]entity.WasteEntry, error) {
	return r.byRange, nil
}
func (r *fakeEntryRepo) SumNetCompletedByZone(_ context.Context, _ string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (r *fakeEntryRepo) UsageByZone(_ context.Context) ([]repository.ZoneUsage, error) {
	return r.usage, nil
}
func (r *fakeEntryRepo) Distribution(_ context.Context, _, _ *time.Time) ([]repository.TypeAggregate, error) {
	return r.distribution, nil
}
func (r *fakeEntryRepo) TotalProcessedTonnes(_ context.Context) (decimal.Decimal, error) {
	return r.total, nil
}

type fakeIndicatorRepo struct {
	summary []entity.EnvironmentalIndicator
}

func (r *fakeIndicatorRepo) Create(_ context.Context, _ *entity.EnvironmentalIndicator) error {
	return nil
}
func (r *fakeIndicatorRepo) CurrentSummary(_ context.Context) ([]entity.EnvironmentalIndicator, error) {
	return r.summary, nil
}
func (r *fakeIndicatorRepo) ListByZone(_ context.Context, _ string) ([]entity.EnvironmentalIndicator, error) {
	return nil, nil
}

type fakeAlertLister struct {
	alerts []dto.AlertResponse
}

func (f *fakeAlertLister) DashboardAlerts(_ context.Context) ([]dto.AlertResponse, error) {
	return f.alerts, nil
}

type fakeEntryReader struct {
	latest *dto.WasteEntryResponse
}

func (f *fakeEntryReader) LatestEntry(_ context.Context) (*dto.WasteEntryResponse, error) {
	return f.latest, nil
}

func newUseCase(repo *fakeEntryRepo) *analytics.UseCase {
	return analytics.NewUseCase(
		repo,
		&fakeIndicatorRepo{},
		&fakeAlertLister{},
		&fakeEntryReader{},
		decimal.NewFromInt(500),
	)
}

// Caso: las 4 zonas aparecen siempre, con cero para las zonas sin entradas y
// la etiqueta de estado derivada de la banda.
func TestCapacityByZone_ZonasCompletas(t *testing.T) {
	uc := newUseCase(&fakeEntryRepo{
		usage: []repository.ZoneUsage{
			{Zone: entity.ZoneA, Tonnage: decimal.RequireFromString("120.5")},
			{Zone: entity.ZoneC, Tonnage: decimal.RequireFromString("460")},
		},
	})

	out, err := uc.CapacityByZone(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 4)

	byZone := map[string]dto.ZoneCapacityDTO{}
	for _, z := range out {
		byZone[z.Zone] = z
	}

	a := byZone[entity.ZoneA]
	assert.True(t, a.Current.Equal(decimal.RequireFromString("120.5")))
	assert.Equal(t, 24, a.Percentage)
	assert.Equal(t, "normal", a.Status)

	// zona sin entradas: reporta cero, no se omite
	b := byZone[entity.ZoneB]
	assert.True(t, b.Current.IsZero())
	assert.Equal(t, 0, b.Percentage)
	assert.Equal(t, "normal", b.Status)

	c := byZone[entity.ZoneC]
	assert.Equal(t, 92, c.Percentage)
	assert.Equal(t, "critical", c.Status)

	for _, z := range out {
		assert.True(t, z.Maximum.Equal(decimal.NewFromInt(500)))
	}
}

// Caso: tres tipos con el mismo tonelaje quedan en 33% cada uno; la suma no
// llega a 100 y es la deriva esperada del redondeo independiente.
func TestWasteDistribution_RedondeoIndependiente(t *testing.T) {
	ten := decimal.NewFromInt(10)
	uc := newUseCase(&fakeEntryRepo{
		distribution: []repository.TypeAggregate{
			{WasteType: entity.WasteTypeOrganic, Count: 4, Tonnage: ten},
			{WasteType: entity.WasteTypeRecyclable, Count: 3, Tonnage: ten},
			{WasteType: entity.WasteTypeGeneral, Count: 2, Tonnage: ten},
		},
	})

	out, err := uc.WasteDistribution(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Len(t, out, 3)

	sum := 0
	for _, d := range out {
		assert.Equal(t, 33, d.Percentage)
		sum += d.Percentage
	}
	assert.Equal(t, 99, sum)
}

// Caso: sin entradas no hay división por cero y los porcentajes quedan en 0.
func TestWasteDistribution_SinDatos(t *testing.T) {
	uc := newUseCase(&fakeEntryRepo{
		distribution: []repository.TypeAggregate{
			{WasteType: entity.WasteTypeDangerous, Count: 0, Tonnage: decimal.Zero},
		},
	})

	out, err := uc.WasteDistribution(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 0, out[0].Percentage)
}

// Caso: estadísticas del día con promedio y hora pico.
func TestTodayStats(t *testing.T) {
	now := time.Now()
	at := func(hour int) time.Time {
		return time.Date(now.Year(), now.Month(), now.Day(), hour, 15, 0, 0, now.Location())
	}
	mk := func(gross, tare string, created time.Time) entity.WasteEntry {
		return entity.WasteEntry{
			GrossWeight: decimal.RequireFromString(gross),
			TareWeight:  decimal.RequireFromString(tare),
			CreatedAt:   created,
		}
	}
	uc := newUseCase(&fakeEntryRepo{
		byRange: []entity.WasteEntry{
			mk("10", "4", at(8)),   // 6 t
			mk("12", "4", at(10)),  // 8 t
			mk("14", "4", at(10)),  // 10 t
		},
	})

	out, err := uc.TodayStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, out.TotalEntries)
	assert.True(t, out.TotalTonnage.Equal(decimal.NewFromInt(24)))
	assert.True(t, out.AverageWeight.Equal(decimal.NewFromInt(8)))
	assert.Equal(t, "10:00", out.PeakHour)
}

// Caso: día sin entradas.
func TestTodayStats_SinEntradas(t *testing.T) {
	uc := newUseCase(&fakeEntryRepo{})

	out, err := uc.TodayStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, out.TotalEntries)
	assert.True(t, out.TotalTonnage.IsZero())
	assert.True(t, out.AverageWeight.IsZero())
	assert.Equal(t, "N/A", out.PeakHour, "sin entradas no se reporta pico de medianoche")
}

// Caso: la serie semanal trae 7 días en orden cronológico terminando hoy.
func TestWeeklyWaste_SieteDias(t *testing.T) {
	uc := newUseCase(&fakeEntryRepo{})

	out, err := uc.WeeklyWaste(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 7)

	today := time.Now().Format("2006-01-02")
	assert.Equal(t, today, out[6].Date)
	for i := 1; i < len(out); i++ {
		assert.Less(t, out[i-1].Date, out[i].Date)
	}
}

// Caso: el resumen de estadísticas combina capacidad total de las 4 zonas.
func TestStatsSummary(t *testing.T) {
	uc := newUseCase(&fakeEntryRepo{
		total: decimal.NewFromInt(400),
	})

	out, err := uc.StatsSummary(context.Background())
	require.NoError(t, err)
	assert.True(t, out.MaxCapacity.Equal(decimal.NewFromInt(2000)), "4 zonas de 500 t")
	assert.Equal(t, 20, out.CapacityPercentage)
	assert.Len(t, out.Capacity, 4)
}

// Caso: el dashboard agrega todas las secciones sin error.
func TestDashboard(t *testing.T) {
	latest := &dto.WasteEntryResponse{ID: "e-1"}
	uc := analytics.NewUseCase(
		&fakeEntryRepo{total: decimal.NewFromInt(100)},
		&fakeIndicatorRepo{summary: []entity.EnvironmentalIndicator{{ID: "i-1", Name: "pH Lixiviados", Type: entity.IndicatorPHLeachate}}},
		&fakeAlertLister{alerts: []dto.AlertResponse{{ID: "a-1"}}},
		&fakeEntryReader{latest: latest},
		decimal.NewFromInt(500),
	)

	out, err := uc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Len(t, out.Capacity, 4)
	assert.Len(t, out.WeeklyWaste, 7)
	assert.Len(t, out.Alerts, 1)
	assert.Len(t, out.EnvironmentalIndicators, 1)
	require.NotNil(t, out.LatestEntry)
	assert.Equal(t, "e-1", out.LatestEntry.ID)
	assert.True(t, out.TotalProcessed.Equal(decimal.NewFromInt(100)))
	assert.True(t, out.MaxCapacity.Equal(decimal.NewFromInt(2000)))
}
