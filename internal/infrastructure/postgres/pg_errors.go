package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolationCode código SQLSTATE de unique_violation. Lo produce, entre
// otros, el índice único parcial de alertas de capacidad activas por zona.
const uniqueViolationCode = "23505"

// isUniqueViolation reconoce una violación de índice único, venga como
// *pgconn.PgError o envuelta en texto por una capa intermedia.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	return strings.Contains(err.Error(), uniqueViolationCode)
}
