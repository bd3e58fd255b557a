package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrDeleteParcelCommandIsNotConstructed = errors.New(
	"DeleteParcelCommand must be created via NewDeleteParcelCommand constructor",
)

// DeleteParcelCommand removes a BOOKED or CANCELED parcel that was never invoiced.
type DeleteParcelCommand struct {
	actorID  kernel.UUID
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteParcelCommand(actorID, parcelID kernel.UUID) (DeleteParcelCommand, error) {
	if err := errors.Join(actorID.Validate(), parcelID.Validate()); err != nil {
		return DeleteParcelCommand{}, err
	}
	return DeleteParcelCommand{actorID: actorID, parcelID: parcelID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c DeleteParcelCommand) Validate() error {
	return c.guard.Validate(ErrDeleteParcelCommandIsNotConstructed)
}
