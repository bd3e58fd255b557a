package commands

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/ports"
)

// TransitionParcelCommandHandler applies a single lifecycle transition.
// It resolves the acting user and any assigned driver, then lets the parcel
// aggregate check the edge, the role and the required details.
//
// Example:
//
//	handler := NewTransitionParcelCommandHandler(uowFactory)
//	cmd, _ := NewTransitionParcelCommand(warehouseID, parcelID, parcel.AtHub, TransitionInput{Zone: "Gulberg"})
//	p, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrTransitionIsNotAllowed):
//	    log.Printf("rejected: %v", err)
//	case errs.IsConflict(err):
//	    log.Println("parcel changed concurrently, reload and retry")
//	case err != nil:
//	    return err
//	default:
//	    log.Printf("%s is %s", p.TrackingNumber(), p.Status())
//	}
type TransitionParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewTransitionParcelCommandHandler creates a handler for status changes.
func NewTransitionParcelCommandHandler(uowFactory ParcelUoWFactory) TransitionParcelCommandHandler {
	return TransitionParcelCommandHandler{uowFactory: uowFactory}
}

// Handle validates the transition against the parcel's current stored status
// and persists it with its history event. A concurrent change of the same
// parcel makes the update fail with a ConflictError.
func (h TransitionParcelCommandHandler) Handle(ctx context.Context, command TransitionParcelCommand) (*parcel.Parcel, error) {
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

	p, err := parcels.Get(ctx, command.parcelID)
	if err != nil {
		return nil, err
	}

	details, err := resolveDetails(ctx, users, p, command.target, command.input)
	if err != nil {
		return nil, err
	}

	if err = p.Transition(command.target, actor, details, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err = parcels.Update(ctx, p); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// resolveDetails turns caller ids into the records the lifecycle rules check.
func resolveDetails(
	ctx context.Context,
	users ports.UserRepository,
	p *parcel.Parcel,
	target parcel.Status,
	in TransitionInput,
) (parcel.TransitionDetails, error) {
	details := parcel.TransitionDetails{
		Zone:       in.Zone,
		ReasonCode: in.ReasonCode,
		Proof:      in.Proof,
		Notes:      in.Notes,
	}

	if in.DriverID != nil {
		driver, err := users.Get(ctx, *in.DriverID)
		if err != nil {
			return parcel.TransitionDetails{}, err
		}
		details.Driver = driver
	}

	if in.Weight != nil && target == parcel.AtHub {
		brand, err := users.Get(ctx, p.BrandID())
		if err != nil {
			return parcel.TransitionDetails{}, err
		}
		quote, err := brand.Quote(*in.Weight)
		if err != nil {
			return parcel.TransitionDetails{}, err
		}
		details.Quote = &quote
	}
	return details, nil
}
