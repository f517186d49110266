package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateWasteEntryRequest body para POST /api/data/waste-entry.
// Pesos en toneladas. Los nombres de campo replican el contrato que consume el SPA.
type CreateWasteEntryRequest struct {
	TransporterPlate   string          `json:"transporterPlate"`
	TransporterCompany string          `json:"transporterCompany"`
	GrossWeight        decimal.Decimal `json:"grossWeight"`
	TareWeight         decimal.Decimal `json:"tareWeight"`
	WasteType          string          `json:"wasteType"`
	Zone               string          `json:"zone"`
	ReceiptPhoto       string          `json:"receiptPhoto,omitempty"`
	Notes              string          `json:"notes,omitempty"`
}

// UpdateEntryStatusRequest body para PUT /api/data/entry/:entryId/status.
type UpdateEntryStatusRequest struct {
	Status         string `json:"status"`
	Notes          string `json:"notes,omitempty"`
	RejectedReason string `json:"rejectedReason,omitempty"`
}

// WasteEntryResponse representación de una entrada con el operador resuelto.
type WasteEntryResponse struct {
	ID                 string          `json:"id"`
	TransporterPlate   string          `json:"transporterPlate"`
	TransporterCompany string          `json:"transporterCompany"`
	GrossWeight        decimal.Decimal `json:"grossWeight"`
	TareWeight         decimal.Decimal `json:"tareWeight"`
	NetWeight          decimal.Decimal `json:"netWeight"`
	WasteType          string          `json:"wasteType"`
	Zone               string          `json:"zone"`
	Status             string          `json:"status"`
	ReceiptPhoto       string          `json:"receiptPhoto,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	RejectedReason     string          `json:"rejectedReason,omitempty"`
	Operator           string          `json:"operator"`
	ProcessedAt        *time.Time      `json:"processedAt,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// StatusHistoryItem un paso del historial de estados de una entrada.
type StatusHistoryItem struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
	Notes     string    `json:"notes,omitempty"`
}

// EntryStatusHistoryResponse historial de una entrada. Se sintetiza desde los
// campos de la propia entrada: no existe tabla de historial.
type EntryStatusHistoryResponse struct {
	EntryID       string              `json:"entryId"`
	CurrentStatus string              `json:"currentStatus"`
	History       []StatusHistoryItem `json:"history"`
}

// ReportGroup conteo y tonelaje de un grupo del reporte.
type ReportGroup struct {
	Count   int             `json:"count"`
	Tonnage decimal.Decimal `json:"tonnage"`
}

// ReportSummary totales del reporte por rango de fechas.
type ReportSummary struct {
	TotalEntries int                    `json:"totalEntries"`
	TotalTonnage decimal.Decimal        `json:"totalTonnage"`
	ByType       map[string]ReportGroup `json:"byType"`
	ByZone       map[string]ReportGroup `json:"byZone"`
	ByStatus     map[string]int         `json:"byStatus"`
}

// ReportResponse reporte de entradas por rango de fechas con filtros opcionales.
type ReportResponse struct {
	Entries []WasteEntryResponse `json:"entries"`
	Summary ReportSummary        `json:"summary"`
}
