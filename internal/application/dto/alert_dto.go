package dto

import "time"

// CreateAlertRequest body para POST /api/data/alerts (alerta manual).
type CreateAlertRequest struct {
	Type     string         `json:"type"`
	Priority string         `json:"priority"`
	Title    string         `json:"title"`
	Message  string         `json:"message"`
	Zone     string         `json:"zone,omitempty"` // vacío = General
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ResolveAlertRequest body para PUT /api/data/alerts/:id/resolve.
type ResolveAlertRequest struct {
	ResolutionNotes string `json:"resolutionNotes,omitempty"`
}

// AlertResponse representación de una alerta.
type AlertResponse struct {
	ID              string         `json:"id"`
	Type            string         `json:"type"`
	Priority        string         `json:"priority"`
	Title           string         `json:"title"`
	Message         string         `json:"message"`
	Zone            string         `json:"zone"`
	IsActive        bool           `json:"isActive"`
	IsRead          bool           `json:"isRead"`
	ResolvedAt      *time.Time     `json:"resolvedAt,omitempty"`
	ResolvedBy      string         `json:"resolvedBy,omitempty"`
	ResolutionNotes string         `json:"resolutionNotes,omitempty"`
	CreatedBy       string         `json:"createdBy"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
}
