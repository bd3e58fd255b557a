package queries

import (
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetUnreconciledParcelsQueryIsNotConstructed = errors.New(
	"GetUnreconciledParcelsQuery must be created via NewGetUnreconciledParcelsQuery constructor",
)

// GetUnreconciledParcelsQuery lists the DELIVERED parcels whose cash a driver
// still holds. It is the input list of a COD reconciliation.
type GetUnreconciledParcelsQuery struct {
	actorID  kernel.UUID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetUnreconciledParcelsQuery(actorID, driverID kernel.UUID) (GetUnreconciledParcelsQuery, error) {
	if err := errors.Join(actorID.Validate(), driverID.Validate()); err != nil {
		return GetUnreconciledParcelsQuery{}, err
	}
	return GetUnreconciledParcelsQuery{
		actorID:  actorID,
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetUnreconciledParcelsQuery) Validate() error {
	return q.guard.Validate(ErrGetUnreconciledParcelsQueryIsNotConstructed)
}

type UnreconciledParcel struct {
	ID             kernel.UUID
	TrackingNumber string
	BrandID        kernel.UUID
	RecipientName  string
	City           string
	CODAmount      decimal.Decimal
	DeliveredAt    time.Time
}

type GetUnreconciledParcelsQueryResponse struct {
	DriverID kernel.UUID
	Parcels  []UnreconciledParcel
	TotalCOD decimal.Decimal
}
