package commands

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/parcel"
)

// AddRemarkCommandHandler appends a free-text note to a parcel's history
// without changing its status.
type AddRemarkCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewAddRemarkCommandHandler creates a handler for parcel remarks.
func NewAddRemarkCommandHandler(uowFactory ParcelUoWFactory) AddRemarkCommandHandler {
	return AddRemarkCommandHandler{uowFactory: uowFactory}
}

// Handle stores the remark. Brands may only remark on their own parcels.
func (h AddRemarkCommandHandler) Handle(ctx context.Context, command AddRemarkCommand) (*parcel.Parcel, error) {
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

	parcels := uow.ParcelRepository()

	_, actor, err := resolveActor(ctx, uow.UserRepository(), command.actorID)
	if err != nil {
		return nil, err
	}
	p, err := parcels.Get(ctx, command.parcelID)
	if err != nil {
		return nil, err
	}
	if err = p.AddRemark(actor, command.remark, time.Now().UTC()); err != nil {
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
