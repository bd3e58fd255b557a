package queries

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/salary"
	"parcelhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrComputeCommissionQueryIsNotConstructed = errors.New(
	"ComputeCommissionQuery must be created via NewComputeCommissionQuery constructor",
)

// ComputeCommissionQuery previews a salary statement without paying it.
type ComputeCommissionQuery struct {
	actorID kernel.UUID
	userID  kernel.UUID
	period  salary.Period

	guard guard.ConstructorGuard
}

func NewComputeCommissionQuery(actorID, userID kernel.UUID, period salary.Period) (ComputeCommissionQuery, error) {
	if err := errors.Join(actorID.Validate(), userID.Validate()); err != nil {
		return ComputeCommissionQuery{}, err
	}
	if _, err := salary.NewPeriod(period.Start, period.End); err != nil {
		return ComputeCommissionQuery{}, err
	}
	return ComputeCommissionQuery{
		actorID: actorID,
		userID:  userID,
		period:  period,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ComputeCommissionQuery) Validate() error {
	return q.guard.Validate(ErrComputeCommissionQueryIsNotConstructed)
}

type ComputeCommissionQueryResponse struct {
	Statement salary.Statement
	Total     decimal.Decimal
	// AlreadyPaid is set when a salary payment exists for the exact period.
	AlreadyPaid bool
}
