package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de indicador ambiental monitoreados en el relleno.
const (
	IndicatorMethane     = "methane"
	IndicatorPHLeachate  = "ph_leachate"
	IndicatorTemperature = "temperature"
	IndicatorHumidity    = "humidity"
	IndicatorAirQuality  = "air_quality"
	IndicatorNoiseLevel  = "noise_level"
)

// IndicatorTypes lista cerrada de tipos de indicador.
var IndicatorTypes = []string{
	IndicatorMethane, IndicatorPHLeachate, IndicatorTemperature,
	IndicatorHumidity, IndicatorAirQuality, IndicatorNoiseLevel,
}

// Estados derivados de un indicador según sus umbrales.
const (
	IndicatorNormal   = "normal"
	IndicatorWarning  = "warning"
	IndicatorCritical = "critical"
)

// ValidIndicatorType indica si el tipo pertenece al enum.
func ValidIndicatorType(t string) bool {
	for _, v := range IndicatorTypes {
		if v == t {
			return true
		}
	}
	return false
}

// EnvironmentalIndicator representa una lectura de un sensor o medición manual.
// Status se deriva de Value contra los umbrales al registrar la lectura.
type EnvironmentalIndicator struct {
	ID                string
	Name              string
	Type              string
	Value             decimal.Decimal
	Unit              string
	Status            string // normal, warning, critical
	Zone              string // Zona A..D o General
	WarningThreshold  decimal.Decimal
	CriticalThreshold decimal.Decimal
	SensorID          string
	RecordedBy        string
	Notes             string
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DeriveStatus calcula el estado a partir del valor y los umbrales.
func (i *EnvironmentalIndicator) DeriveStatus() string {
	switch {
	case i.Value.GreaterThanOrEqual(i.CriticalThreshold):
		return IndicatorCritical
	case i.Value.GreaterThanOrEqual(i.WarningThreshold):
		return IndicatorWarning
	default:
		return IndicatorNormal
	}
}
