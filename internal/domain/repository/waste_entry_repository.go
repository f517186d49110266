package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ecogestion/raee-api/internal/domain/entity"
)

// EntryFilters filtros opcionales para reportes por rango de fechas.
// Campos vacíos no filtran.
type EntryFilters struct {
	WasteType string
	Zone      string
	Status    string
}

// TypeAggregate agregado por tipo de residuo.
type TypeAggregate struct {
	WasteType string
	Count     int64
	Tonnage   decimal.Decimal // suma de peso neto (t)
}

// ZoneUsage ocupación actual de una zona (solo entradas completed).
type ZoneUsage struct {
	Zone    string
	Tonnage decimal.Decimal
}

// WasteEntryRepository persistencia de entradas de residuos.
// Las lecturas resuelven OperatorName con un join a users.
type WasteEntryRepository interface {
	Create(ctx context.Context, entry *entity.WasteEntry) error
	GetByID(ctx context.Context, id string) (*entity.WasteEntry, error)
	// Update persiste status, notes, rejectedReason y processedAt.
	Update(ctx context.Context, entry *entity.WasteEntry) error
	Latest(ctx context.Context) (*entity.WasteEntry, error)
	ListRecent(ctx context.Context, limit int) ([]entity.WasteEntry, error)
	FindByDateRange(ctx context.Context, start, end time.Time, filters EntryFilters) ([]entity.WasteEntry, error)

	// SumNetCompletedByZone suma el peso neto de las entradas completed de la zona.
	SumNetCompletedByZone(ctx context.Context, zone string) (decimal.Decimal, error)
	// UsageByZone ocupación de todas las zonas con entradas completed
	// (las zonas sin uso no aparecen; el caso de uso completa con cero).
	UsageByZone(ctx context.Context) ([]ZoneUsage, error)
	// Distribution agrupa por tipo de residuo; rango opcional (nil = histórico completo).
	Distribution(ctx context.Context, start, end *time.Time) ([]TypeAggregate, error)
	// TotalProcessedTonnes suma el peso neto de todas las entradas completed.
	TotalProcessedTonnes(ctx context.Context) (decimal.Decimal, error)
}
