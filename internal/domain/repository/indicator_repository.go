package repository

import (
	"context"

	"github.com/ecogestion/raee-api/internal/domain/entity"
)

// IndicatorRepository persistencia de indicadores ambientales.
type IndicatorRepository interface {
	Create(ctx context.Context, indicator *entity.EnvironmentalIndicator) error
	// CurrentSummary última lectura activa por tipo de indicador.
	CurrentSummary(ctx context.Context) ([]entity.EnvironmentalIndicator, error)
	ListByZone(ctx context.Context, zone string) ([]entity.EnvironmentalIndicator, error)
}
