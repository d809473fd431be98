package repository

import (
	"errors"

	"catalog-api/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes the repositories translate into domain errors.
// Concurrent inserts of the same name race on the unique index, so a
// constraint violation is an expected outcome, not a bug.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// translateConstraintError maps a Postgres constraint violation to the
// matching domain error. Returns nil when err is not a constraint violation,
// in which case the caller should treat it as a storage failure.
func translateConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return model.ErrDuplicateName
	case pgForeignKeyViolation:
		return model.ErrUnknownCategory
	case pgCheckViolation:
		return model.NewValidationError("Field value violates a domain constraint")
	}
	return nil
}
