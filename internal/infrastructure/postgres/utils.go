package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isConstraintViolation verifica si un error pertenece a la clase 23 (integrity_constraint_violation).
func isConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23")
	}
	return false
}

// wrapErr envuelve el error del driver conservando la cadena para errors.Is/As.
func wrapErr(op string, err error) error {
	if isConstraintViolation(err) {
		var pgErr *pgconn.PgError
		errors.As(err, &pgErr)
		return fmt.Errorf("%s: restricción %s: %w", op, pgErr.ConstraintName, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
