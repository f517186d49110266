package entity

import "time"

// Tipos de alerta.
const (
	AlertTypeCapacity      = "capacity"
	AlertTypeIncident      = "incident"
	AlertTypeEnvironmental = "environmental"
	AlertTypeMaintenance   = "maintenance"
	AlertTypeSecurity      = "security"
)

// AlertTypes lista cerrada de tipos de alerta.
var AlertTypes = []string{AlertTypeCapacity, AlertTypeIncident, AlertTypeEnvironmental, AlertTypeMaintenance, AlertTypeSecurity}

// Prioridades de alerta.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// AlertPriorities lista cerrada de prioridades.
var AlertPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// ZoneGeneral zona comodín para alertas que no aplican a una zona física.
const ZoneGeneral = "General"

// ValidAlertType indica si el tipo pertenece al enum.
func ValidAlertType(t string) bool {
	for _, v := range AlertTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ValidAlertPriority indica si la prioridad pertenece al enum.
func ValidAlertPriority(p string) bool {
	for _, v := range AlertPriorities {
		if v == p {
			return true
		}
	}
	return false
}

// ValidAlertZone indica si la zona es una zona física o "General".
func ValidAlertZone(z string) bool {
	return z == ZoneGeneral || ValidZone(z)
}

// Alert representa una alerta operativa del relleno, automática (capacidad,
// ambiental) o manual. Invariante: a lo sumo una alerta ACTIVA de tipo
// capacity por zona (índice único parcial en la base de datos).
type Alert struct {
	ID              string
	Type            string
	Priority        string
	Title           string
	Message         string
	Zone            string // Zona A..D o General
	IsActive        bool
	IsRead          bool
	ResolvedAt      *time.Time
	ResolvedBy      string
	ResolutionNotes string
	CreatedBy       string
	Metadata        map[string]any
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
