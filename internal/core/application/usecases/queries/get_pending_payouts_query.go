package queries

import (
	"errors"

	"parcelhub/internal/core/domain/model/invoice"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetPendingPayoutsQueryIsNotConstructed = errors.New(
	"GetPendingPayoutsQuery must be created via NewGetPendingPayoutsQuery constructor",
)

// GetPendingPayoutsQuery previews what each brand would be invoiced today.
// An admin sees every brand unless brandID narrows it; a brand always sees
// only itself.
type GetPendingPayoutsQuery struct {
	actorID kernel.UUID
	brandID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetPendingPayoutsQuery(actorID kernel.UUID, brandID *kernel.UUID) (GetPendingPayoutsQuery, error) {
	if err := actorID.Validate(); err != nil {
		return GetPendingPayoutsQuery{}, err
	}
	if brandID != nil {
		if err := brandID.Validate(); err != nil {
			return GetPendingPayoutsQuery{}, err
		}
	}
	return GetPendingPayoutsQuery{
		actorID: actorID,
		brandID: brandID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetPendingPayoutsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingPayoutsQueryIsNotConstructed)
}

type PayoutParcel struct {
	ID             kernel.UUID
	TrackingNumber string
	CODAmount      decimal.Decimal
	DeliveryCharge decimal.Decimal
	Tax            decimal.Decimal
}

type PendingPayout struct {
	BrandID   kernel.UUID
	BrandName string
	Parcels   []PayoutParcel
	Totals    invoice.Totals
	NetPayout decimal.Decimal
}
