package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrUserInactive = errors.New("usuario desactivado")
)

// ValidationError agrupa todas las reglas violadas en una validación por lotes
// (creación de entradas). A diferencia del resto de operaciones, que fallan en
// la primera violación, aquí se reporta la lista completa.
type ValidationError struct {
	Rules []string
}

func (e *ValidationError) Error() string {
	return "datos de entrada inválidos: " + strings.Join(e.Rules, "; ")
}

// Is permite errors.Is(err, ErrInvalidInput) sobre errores de validación por lotes.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
