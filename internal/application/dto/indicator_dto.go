package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordIndicatorRequest body para POST /api/data/environmental.
type RecordIndicatorRequest struct {
	Name              string          `json:"name"`
	Type              string          `json:"type"`
	Value             decimal.Decimal `json:"value"`
	Unit              string          `json:"unit"`
	Zone              string          `json:"zone,omitempty"` // vacío = General
	WarningThreshold  decimal.Decimal `json:"warningThreshold"`
	CriticalThreshold decimal.Decimal `json:"criticalThreshold"`
	SensorID          string          `json:"sensorId,omitempty"`
	Notes             string          `json:"notes,omitempty"`
}

// IndicatorResponse lectura de un indicador ambiental.
type IndicatorResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Type              string          `json:"type"`
	Value             decimal.Decimal `json:"value"`
	Unit              string          `json:"unit"`
	Status            string          `json:"status"`
	Zone              string          `json:"zone"`
	WarningThreshold  decimal.Decimal `json:"warningThreshold"`
	CriticalThreshold decimal.Decimal `json:"criticalThreshold"`
	SensorID          string          `json:"sensorId,omitempty"`
	RecordedAt        time.Time       `json:"recordedAt"`
}
