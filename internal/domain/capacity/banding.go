// Package capacity contiene la tabla de bandas de utilización por zona y el
// cálculo de porcentaje de ocupación. Es la única fuente de severidad tanto
// para las etiquetas del dashboard como para la generación de alertas.
package capacity

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/ecogestion/raee-api/internal/domain/entity"
)

// Band banda de utilización de una zona.
type Band string

// Bandas: <70 normal (sin alerta), [70,80) media, [80,90) alta, >=90 crítica.
const (
	BandNone     Band = "none"
	BandMedium   Band = "medium"
	BandHigh     Band = "high"
	BandCritical Band = "critical"
)

// Percentage porcentaje de ocupación redondeado al entero más cercano.
// current y maximum en toneladas; maximum <= 0 devuelve 0.
func Percentage(current, maximum decimal.Decimal) int {
	if maximum.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	pct := current.Div(maximum).Mul(decimal.NewFromInt(100))
	return int(pct.Round(0).IntPart())
}

// BandFor devuelve la banda correspondiente a un porcentaje de ocupación.
func BandFor(percentage int) Band {
	switch {
	case percentage >= 90:
		return BandCritical
	case percentage >= 80:
		return BandHigh
	case percentage >= 70:
		return BandMedium
	default:
		return BandNone
	}
}

// Priority traduce la banda a la prioridad de alerta. BandNone no genera alerta.
func (b Band) Priority() string {
	switch b {
	case BandCritical:
		return entity.PriorityCritical
	case BandHigh:
		return entity.PriorityHigh
	case BandMedium:
		return entity.PriorityMedium
	default:
		return ""
	}
}

// AlertContent título y mensaje de la alerta de capacidad para la banda.
func (b Band) AlertContent(zone string, percentage int) (title, message string) {
	switch b {
	case BandCritical:
		return "Capacidad Crítica",
			fmt.Sprintf("¡URGENTE! La zona %s está al %d%% de su capacidad máxima", zone, percentage)
	case BandHigh:
		return "Capacidad Alta",
			fmt.Sprintf("La zona %s está al %d%% de su capacidad. Se requiere atención", zone, percentage)
	case BandMedium:
		return "Capacidad Media",
			fmt.Sprintf("La zona %s está al %d%% de su capacidad", zone, percentage)
	default:
		return "", ""
	}
}
