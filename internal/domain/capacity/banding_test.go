package capacity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/ecogestion/raee-api/internal/domain/entity"
)

// La tabla de bandas debe ser única para etiquetas y alertas:
// <70 sin alerta, [70,80) media, [80,90) alta, >=90 crítica.
func TestBandFor_TablaUnificada(t *testing.T) {
	cases := []struct {
		pct  int
		want Band
	}{
		{0, BandNone},
		{65, BandNone},
		{69, BandNone},
		{70, BandMedium},
		{75, BandMedium},
		{79, BandMedium},
		{80, BandHigh},
		{85, BandHigh},
		{89, BandHigh},
		{90, BandCritical},
		{95, BandCritical},
		{120, BandCritical},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, BandFor(c.pct), "porcentaje %d", c.pct)
	}
}

func TestPercentage_Redondeo(t *testing.T) {
	max := decimal.NewFromInt(500)

	// 8.7 / 500 = 1.74% -> 2%
	assert.Equal(t, 2, Percentage(decimal.RequireFromString("8.7"), max))
	// 424.9 / 500 = 84.98% -> 85%
	assert.Equal(t, 85, Percentage(decimal.RequireFromString("424.9"), max))
	// zona vacía
	assert.Equal(t, 0, Percentage(decimal.Zero, max))
	// capacidad no configurada no divide por cero
	assert.Equal(t, 0, Percentage(decimal.NewFromInt(10), decimal.Zero))
}

func TestPriority_PorBanda(t *testing.T) {
	assert.Equal(t, entity.PriorityCritical, BandCritical.Priority())
	assert.Equal(t, entity.PriorityHigh, BandHigh.Priority())
	assert.Equal(t, entity.PriorityMedium, BandMedium.Priority())
	assert.Equal(t, "", BandNone.Priority())
}

func TestAlertContent_IncluyePorcentajeYZona(t *testing.T) {
	title, msg := BandCritical.AlertContent(entity.ZoneA, 95)
	assert.Equal(t, "Capacidad Crítica", title)
	assert.Contains(t, msg, "Zona A")
	assert.Contains(t, msg, "95%")

	title, _ = BandNone.AlertContent(entity.ZoneB, 10)
	assert.Empty(t, title)
}
