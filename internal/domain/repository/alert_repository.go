package repository

import (
	"context"

	"github.com/ecogestion/raee-api/internal/domain/entity"
)

// AlertRepository persistencia de alertas.
type AlertRepository interface {
	// Create persiste la alerta. Una inserción concurrente que viole el índice
	// único de alerta de capacidad activa por zona devuelve domain.ErrConflict.
	Create(ctx context.Context, alert *entity.Alert) error
	GetByID(ctx context.Context, id string) (*entity.Alert, error)
	// Update persiste isActive, isRead y los metadatos de resolución.
	Update(ctx context.Context, alert *entity.Alert) error
	// ListActive alertas activas ordenadas por prioridad y recencia. limit <= 0 = sin límite.
	ListActive(ctx context.Context, limit int) ([]entity.Alert, error)
	ListActiveByZone(ctx context.Context, zone string) ([]entity.Alert, error)
	// ListCritical alertas activas high o critical.
	ListCritical(ctx context.Context) ([]entity.Alert, error)
	// FindActiveCapacityByZone alerta de capacidad activa de la zona, nil si no hay.
	FindActiveCapacityByZone(ctx context.Context, zone string) (*entity.Alert, error)
}
