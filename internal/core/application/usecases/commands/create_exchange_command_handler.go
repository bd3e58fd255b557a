package commands

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/core/domain/services"
)

// CreateExchangeCommandHandler stores both legs of an exchange in one
// transaction, so a failure never leaves a half-created pair.
type CreateExchangeCommandHandler struct {
	uowFactory      ParcelUoWFactory
	trackingNumbers TrackingNumberSource
	coordinator     services.ExchangeCoordinator
}

// NewCreateExchangeCommandHandler creates an exchange handler. A nil source
// draws random SD#### numbers for the outbound leg.
func NewCreateExchangeCommandHandler(uowFactory ParcelUoWFactory, trackingNumbers TrackingNumberSource) CreateExchangeCommandHandler {
	if trackingNumbers == nil {
		trackingNumbers = parcel.NewRandomTrackingNumber
	}
	return CreateExchangeCommandHandler{
		uowFactory:      uowFactory,
		trackingNumbers: trackingNumbers,
		coordinator:     services.NewExchangeCoordinator(),
	}
}

// Handle books the outbound leg and its RTN- return leg from a DELIVERED
// original parcel owned by the acting brand.
func (h CreateExchangeCommandHandler) Handle(ctx context.Context, command CreateExchangeCommand) (parcel.ExchangePair, error) {
	if err := command.Validate(); err != nil {
		return parcel.ExchangePair{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return parcel.ExchangePair{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	parcels := uow.ParcelRepository()

	_, actor, err := resolveActor(ctx, users, command.actorID)
	if err != nil {
		return parcel.ExchangePair{}, err
	}
	if err = requireRole(actor, user.RoleBrand, user.RoleAdmin); err != nil {
		return parcel.ExchangePair{}, err
	}

	original, err := parcels.Get(ctx, command.originalID)
	if err != nil {
		return parcel.ExchangePair{}, err
	}
	brand, err := users.Get(ctx, original.BrandID())
	if err != nil {
		return parcel.ExchangePair{}, err
	}

	tn, err := nextTrackingNumber(ctx, parcels, h.trackingNumbers)
	if err != nil {
		return parcel.ExchangePair{}, err
	}

	pair, err := h.coordinator.Create(original, brand, command.order, tn, actor, time.Now().UTC())
	if err != nil {
		return parcel.ExchangePair{}, err
	}

	if err = parcels.Add(ctx, pair.Outbound); err != nil {
		return parcel.ExchangePair{}, err
	}
	if err = parcels.Add(ctx, pair.Return); err != nil {
		return parcel.ExchangePair{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return parcel.ExchangePair{}, err
	}
	return pair, nil
}
