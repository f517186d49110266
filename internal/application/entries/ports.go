package entries

import "context"

// CapacityChecker recalcula la ocupación de una zona y solicita la alerta de
// capacidad si corresponde. Lo implementa el caso de uso de alertas; la
// interfaz evita el acople directo entre entradas y alertas.
type CapacityChecker interface {
	CheckZoneCapacity(ctx context.Context, zone string) error
}
