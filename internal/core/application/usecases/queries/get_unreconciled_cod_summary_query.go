package queries

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetUnreconciledCODSummaryQueryIsNotConstructed = errors.New(
	"GetUnreconciledCODSummaryQuery must be created via NewGetUnreconciledCODSummaryQuery constructor",
)

// GetUnreconciledCODSummaryQuery totals the cash every driver still holds.
// It is issued by the monitor job, not by a user, so it carries no actor.
type GetUnreconciledCODSummaryQuery struct {
	guard guard.ConstructorGuard
}

func NewGetUnreconciledCODSummaryQuery() GetUnreconciledCODSummaryQuery {
	return GetUnreconciledCODSummaryQuery{guard: guard.NewConstructorGuard()}
}

func (q GetUnreconciledCODSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetUnreconciledCODSummaryQueryIsNotConstructed)
}

type DriverCODBalance struct {
	DriverID   kernel.UUID
	DriverName string
	Parcels    int
	TotalCOD   decimal.Decimal
}
