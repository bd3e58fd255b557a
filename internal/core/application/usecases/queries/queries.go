// Package queries contains the read operations. Lists served straight from
// the store use raw SQL; reads that feed a financial computation load
// aggregates inside one snapshot transaction so the numbers agree with what a
// command would compute.
package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// SnapshotReader is the unit of work view used by snapshot queries.
type SnapshotReader interface {
	BeginSnapshot(ctx context.Context) error
	Rollback(ctx context.Context) error
	ParcelRepository() ports.ParcelRepository
	UserRepository() ports.UserRepository
	SalaryPaymentRepository() ports.SalaryPaymentRepository
}

type SnapshotReaderFactory interface {
	Create() SnapshotReader
}

// forbidden mirrors the error commands return for a role that may not act.
func forbidden(role user.Role) error {
	return errs.NewValueIsInvalidErrorWithCause("actor",
		fmt.Errorf("role %s may not perform this operation", role))
}

// adminOrSelf loads the actor and allows admins, or the subject reading their own data.
func adminOrSelf(ctx context.Context, users ports.UserRepository, actorID, subjectID kernel.UUID) error {
	actor, err := users.Get(ctx, actorID)
	if err != nil {
		return err
	}
	if actor.Role() == user.RoleAdmin || actor.ID().IsEqual(subjectID) {
		return nil
	}
	return forbidden(actor.Role())
}

// roleOf reads a user's role without loading the aggregate.
func roleOf(ctx context.Context, db *gorm.DB, id kernel.UUID) (user.Role, error) {
	var role string
	err := db.WithContext(ctx).Raw(`SELECT role FROM users WHERE id = ?`, id.Bytes()).Row().Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errs.NewObjectNotFoundError("user", id.String())
	}
	if err != nil {
		return "", errs.NewUpstreamError("load user role", err)
	}
	return user.Role(role), nil
}
