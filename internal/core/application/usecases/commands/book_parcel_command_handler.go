package commands

import (
	"context"
	"fmt"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"
)

// BookParcelCommandHandler prices and stores new parcels.
// The tracking number is drawn from the TrackingNumberSource and checked
// against the store before the parcel is inserted.
//
// Example:
//
//	handler := NewBookParcelCommandHandler(uowFactory, nil)
//	cmd, err := NewBookParcelCommand(actorID, brandID, "Main", recipient, "ORD-1", "kurta", "", codAmount, weight)
//	if err != nil {
//	    return err
//	}
//	p, err := handler.Handle(ctx, cmd)
//	if errs.IsConflict(err) {
//	    log.Println("could not draw a free tracking number")
//	}
type BookParcelCommandHandler struct {
	uowFactory      ParcelUoWFactory
	trackingNumbers TrackingNumberSource
}

// NewBookParcelCommandHandler creates a booking handler. A nil source draws
// random SD#### numbers.
func NewBookParcelCommandHandler(uowFactory ParcelUoWFactory, trackingNumbers TrackingNumberSource) BookParcelCommandHandler {
	if trackingNumbers == nil {
		trackingNumbers = parcel.NewRandomTrackingNumber
	}
	return BookParcelCommandHandler{uowFactory: uowFactory, trackingNumbers: trackingNumbers}
}

// Handle books the parcel. Brands may only book for themselves; admins may book
// on a brand's behalf. The pickup location must be one of the brand's.
func (h BookParcelCommandHandler) Handle(ctx context.Context, command BookParcelCommand) (*parcel.Parcel, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	parcels := uow.ParcelRepository()

	_, actor, err := resolveActor(ctx, users, command.actorID)
	if err != nil {
		return nil, err
	}
	if err = requireRole(actor, user.RoleBrand, user.RoleAdmin); err != nil {
		return nil, err
	}
	if actor.Role == user.RoleBrand && !actor.ID.IsEqual(command.brandID) {
		return nil, errs.NewValueIsInvalidErrorWithCause("brand", fmt.Errorf("%s may only book its own parcels", actor.Name))
	}

	brand, err := users.Get(ctx, command.brandID)
	if err != nil {
		return nil, err
	}
	if brand.Role() != user.RoleBrand {
		return nil, errs.NewObjectNotFoundError("brand", command.brandID.String())
	}
	loc, err := brand.PickupLocation(command.pickupLocation)
	if err != nil {
		return nil, err
	}
	quote, err := brand.Quote(command.weight)
	if err != nil {
		return nil, err
	}

	tn, err := nextTrackingNumber(ctx, parcels, h.trackingNumbers)
	if err != nil {
		return nil, err
	}

	p, err := parcel.Book(parcel.Booking{
		ID:              kernel.NewUUID(),
		TrackingNumber:  tn,
		BrandID:         brand.ID(),
		Recipient:       command.recipient,
		PickupLocation:  loc.Name,
		OrderRef:        command.orderRef,
		ItemDescription: command.itemDescription,
		Instructions:    command.instructions,
		CODAmount:       command.codAmount,
		Quote:           quote,
	}, actor, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = parcels.Add(ctx, p); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return p, nil
}
