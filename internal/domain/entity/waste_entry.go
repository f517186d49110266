package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de residuo aceptados en el relleno sanitario.
const (
	WasteTypeDangerous  = "Peligroso"
	WasteTypeRecyclable = "Reciclable"
	WasteTypeOrganic    = "Orgánico"
	WasteTypeGeneral    = "General"
)

// WasteTypes lista cerrada de tipos válidos.
var WasteTypes = []string{WasteTypeDangerous, WasteTypeRecyclable, WasteTypeOrganic, WasteTypeGeneral}

// Zonas de disposición fijas del relleno.
const (
	ZoneA = "Zona A"
	ZoneB = "Zona B"
	ZoneC = "Zona C"
	ZoneD = "Zona D"
)

// Zones lista cerrada de zonas de disposición.
var Zones = []string{ZoneA, ZoneB, ZoneC, ZoneD}

// Estados de una entrada de residuos. No hay grafo de transición: cualquier
// estado puede pasar a cualquier otro (una entrada completada o rechazada
// puede reabrirse).
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusRejected   = "rejected"
)

// EntryStatuses lista cerrada de estados válidos.
var EntryStatuses = []string{StatusPending, StatusProcessing, StatusCompleted, StatusRejected}

// ValidWasteType indica si el tipo pertenece al enum.
func ValidWasteType(t string) bool {
	for _, v := range WasteTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ValidZone indica si la zona pertenece al enum.
func ValidZone(z string) bool {
	for _, v := range Zones {
		if v == z {
			return true
		}
	}
	return false
}

// ValidEntryStatus indica si el estado pertenece al enum.
func ValidEntryStatus(s string) bool {
	for _, v := range EntryStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// WasteEntry representa una entrada de residuos en báscula.
// Pesos en toneladas; invariante: TareWeight < GrossWeight.
// Nunca se elimina físicamente: el estado es la única mutación.
type WasteEntry struct {
	ID                 string
	TransporterPlate   string // normalizada a mayúsculas
	TransporterCompany string
	GrossWeight        decimal.Decimal // peso bruto (t)
	TareWeight         decimal.Decimal // peso tara (t)
	WasteType          string
	Zone               string
	Status             string
	ReceiptPhoto       string // ruta del comprobante, opcional
	Notes              string
	RejectedReason     string // obligatoria cuando Status = rejected
	OperatorID         string
	OperatorName       string     // resuelto por el repositorio (join), no persistido aquí
	ProcessedAt        *time.Time // se estampa una sola vez, al primer completed
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NetWeight peso neto = bruto − tara. Por el invariante nunca es negativo.
func (e *WasteEntry) NetWeight() decimal.Decimal {
	return e.GrossWeight.Sub(e.TareWeight)
}
