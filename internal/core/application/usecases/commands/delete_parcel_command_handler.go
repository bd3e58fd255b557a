package commands

import (
	"context"
)

// DeleteParcelCommandHandler hard-deletes BOOKED or CANCELED parcels.
type DeleteParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewDeleteParcelCommandHandler creates a handler for parcel deletion.
func NewDeleteParcelCommandHandler(uowFactory ParcelUoWFactory) DeleteParcelCommandHandler {
	return DeleteParcelCommandHandler{uowFactory: uowFactory}
}

func (h DeleteParcelCommandHandler) Handle(ctx context.Context, command DeleteParcelCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcels := uow.ParcelRepository()

	_, actor, err := resolveActor(ctx, uow.UserRepository(), command.actorID)
	if err != nil {
		return err
	}
	p, err := parcels.Get(ctx, command.parcelID)
	if err != nil {
		return err
	}
	if err = p.EnsureDeletable(actor); err != nil {
		return err
	}
	if err = parcels.Delete(ctx, p); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
