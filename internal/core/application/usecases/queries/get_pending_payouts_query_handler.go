package queries

import (
	"context"

	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/core/ports"
)

type GetPendingPayoutsQueryHandler struct {
	readers    SnapshotReaderFactory
	calculator services.PayoutCalculator
}

func NewGetPendingPayoutsQueryHandler(readers SnapshotReaderFactory) GetPendingPayoutsQueryHandler {
	return GetPendingPayoutsQueryHandler{readers: readers, calculator: services.NewPayoutCalculator()}
}

func (h GetPendingPayoutsQueryHandler) Handle(ctx context.Context, query GetPendingPayoutsQuery) ([]PendingPayout, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow := h.readers.Create()
	if err := uow.BeginSnapshot(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	actor, err := users.Get(ctx, query.actorID)
	if err != nil {
		return nil, err
	}

	filter := ports.ParcelFilter{
		Statuses:       []parcel.Status{parcel.Delivered},
		OnlyUninvoiced: true,
		BrandID:        query.brandID,
	}
	switch actor.Role() {
	case user.RoleAdmin:
	case user.RoleBrand:
		if query.brandID != nil && !query.brandID.IsEqual(actor.ID()) {
			return nil, forbidden(actor.Role())
		}
		own := actor.ID()
		filter.BrandID = &own
	default:
		return nil, forbidden(actor.Role())
	}

	delivered, err := uow.ParcelRepository().Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	groups := h.calculator.GroupPending(delivered)
	payouts := make([]PendingPayout, 0, len(groups))
	for _, g := range groups {
		brand, err := users.Get(ctx, g.BrandID)
		if err != nil {
			return nil, err
		}

		items := make([]PayoutParcel, 0, len(g.Parcels))
		for _, p := range g.Parcels {
			items = append(items, PayoutParcel{
				ID:             p.ID(),
				TrackingNumber: p.TrackingNumber().String(),
				CODAmount:      p.CODAmount(),
				DeliveryCharge: p.DeliveryCharge(),
				Tax:            p.Tax(),
			})
		}
		payouts = append(payouts, PendingPayout{
			BrandID:   g.BrandID,
			BrandName: brand.Name(),
			Parcels:   items,
			Totals:    g.Totals,
			NetPayout: g.Totals.NetPayout(),
		})
	}
	return payouts, nil
}
