// Package pgerrs maps PostgreSQL failures to the application error kinds.
package pgerrs

import (
	"errors"
	"strings"

	"parcelhub/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	uniqueViolation      = "23505"
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
)

// Translate turns unique-key violations and serialization failures into
// ConflictError. Errors that already carry an application kind pass through;
// every other store failure becomes an UpstreamError.
func Translate(err error, entity, id string) error {
	if err == nil {
		return nil
	}
	if errs.IsValidation(err) || errs.IsNotFound(err) || errs.IsConflict(err) || errs.IsUpstream(err) {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewConflictError(entity, id, "already exists")
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return upstream(err, entity, id)
	}
	switch pgErr.Code {
	case uniqueViolation:
		return errs.NewConflictError(entity, id, "already exists ("+pgErr.ConstraintName+")")
	case serializationFailure, deadlockDetected:
		return errs.NewConflictError(entity, id, "changed concurrently")
	default:
		return upstream(err, entity, id)
	}
}

func upstream(err error, entity, id string) error {
	return errs.NewUpstreamError(strings.TrimSpace(entity+" "+id), err)
}
