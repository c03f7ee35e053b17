package persistence

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/soportek/helpdesk-service/pkg/util"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// MapError translates storage-layer errors into the domain taxonomy. Absence
// becomes NotFound for the named resource, unique violations become conflicts,
// and foreign-key violations surface as a refused delete/reference conflict.
// Anything else is wrapped as an opaque internal error.
func MapError(err error, resource string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return util.NewNotFound(resource)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return util.NewConflict(resource+" already exists", map[string]any{
				"constraint": pgErr.ConstraintName,
			})
		case pgForeignKeyViolation:
			return util.NewConflict(resource+" is referenced by another entity", map[string]any{
				"constraint": pgErr.ConstraintName,
			})
		}
	}
	return util.NewInternalError(err)
}
