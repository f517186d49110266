package dto

import "github.com/shopspring/decimal"

// ZoneCapacityDTO ocupación de una zona de disposición.
// Status es la etiqueta de banda unificada: normal, medium, high, critical.
type ZoneCapacityDTO struct {
	Zone       string          `json:"zone"`
	Current    decimal.Decimal `json:"current"` // toneladas, redondeado a 0.1
	Maximum    decimal.Decimal `json:"maximum"`
	Percentage int             `json:"percentage"`
	Status     string          `json:"status"`
}

// WasteDistributionDTO distribución por tipo de residuo.
// Percentage se redondea de forma independiente: la suma puede no dar 100.
type WasteDistributionDTO struct {
	Type       string          `json:"type"`
	Count      int64           `json:"count"`
	Tonnage    decimal.Decimal `json:"tonnage"` // redondeado a 0.1
	Percentage int             `json:"percentage"`
}

// TodayStatsDTO estadísticas del día en curso.
type TodayStatsDTO struct {
	TotalEntries  int             `json:"totalEntries"`
	TotalTonnage  decimal.Decimal `json:"totalTonnage"`
	AverageWeight decimal.Decimal `json:"averageWeight"`
	PeakHour      string          `json:"peakHour"` // "HH:00"
}

// WeeklyDayDTO tonelaje diario de entradas completed de los últimos 7 días.
type WeeklyDayDTO struct {
	Day     string          `json:"day"`  // abreviatura del día de la semana
	Date    string          `json:"date"` // YYYY-MM-DD
	Tonnage decimal.Decimal `json:"tonnage"`
	Entries int             `json:"entries"`
}

// MonthlyDataDTO resumen de los últimos 30 días.
type MonthlyDataDTO struct {
	TotalTonnage decimal.Decimal `json:"totalTonnage"`
	TotalEntries int             `json:"totalEntries"`
	AverageDaily decimal.Decimal `json:"averageDaily"`
	Period       string          `json:"period"`
}

// DashboardDTO payload completo del dashboard.
type DashboardDTO struct {
	WeeklyWaste             []WeeklyDayDTO         `json:"weeklyWaste"`
	MonthlyData             MonthlyDataDTO         `json:"monthlyData"`
	WasteDistribution       []WasteDistributionDTO `json:"wasteDistribution"`
	Capacity                []ZoneCapacityDTO      `json:"capacity"`
	EnvironmentalIndicators []IndicatorResponse    `json:"environmentalIndicators"`
	Alerts                  []AlertResponse        `json:"alerts"` // últimas 5 activas
	TodayStats              TodayStatsDTO          `json:"todayStats"`
	LatestEntry             *WasteEntryResponse    `json:"latestEntry"`
	TotalProcessed          decimal.Decimal        `json:"totalProcessed"`
	MaxCapacity             decimal.Decimal        `json:"maxCapacity"` // suma de máximos de zona
}

// StatsSummaryDTO resumen para la vista de estadísticas.
type StatsSummaryDTO struct {
	Today              TodayStatsDTO          `json:"today"`
	TotalProcessed     decimal.Decimal        `json:"totalProcessed"`
	Capacity           []ZoneCapacityDTO      `json:"capacity"`
	WasteDistribution  []WasteDistributionDTO `json:"wasteDistribution"`
	MaxCapacity        decimal.Decimal        `json:"maxCapacity"`
	CapacityPercentage int                    `json:"capacityPercentage"`
}
