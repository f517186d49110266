package alerts

import (
	"context"

	"github.com/ecogestion/raee-api/internal/domain/repository"
)

// AlertTxRunner ejecuta una función dentro de una transacción de BD, pasando
// un repositorio de alertas atado a esa tx. Serializa el check-then-insert de
// la compuerta de deduplicación.
type AlertTxRunner interface {
	Run(ctx context.Context, fn func(alertRepo repository.AlertRepository) error) error
}
