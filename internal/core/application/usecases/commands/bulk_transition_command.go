package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrBulkTransitionCommandIsNotConstructed = errors.New(
	"BulkTransitionCommand must be created via NewBulkTransitionCommand constructor",
)

// BulkTransitionCommand applies one target status to many parcels under a
// shared remark. It is not atomic: every parcel gets its own outcome.
type BulkTransitionCommand struct {
	actorID   kernel.UUID
	parcelIDs []kernel.UUID
	target    parcel.Status
	input     TransitionInput

	guard guard.ConstructorGuard
}

func NewBulkTransitionCommand(
	actorID kernel.UUID,
	parcelIDs []kernel.UUID,
	target parcel.Status,
	input TransitionInput,
) (BulkTransitionCommand, error) {
	if err := errors.Join(actorID.Validate(), target.Validate()); err != nil {
		return BulkTransitionCommand{}, err
	}
	if len(parcelIDs) == 0 {
		return BulkTransitionCommand{}, errs.NewValueIsRequiredError("parcel ids")
	}

	return BulkTransitionCommand{
		actorID:   actorID,
		parcelIDs: append([]kernel.UUID(nil), parcelIDs...),
		target:    target,
		input:     input,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c BulkTransitionCommand) ParcelIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.parcelIDs...)
}

func (c BulkTransitionCommand) Target() parcel.Status {
	return c.target
}

func (c BulkTransitionCommand) Validate() error {
	return c.guard.Validate(ErrBulkTransitionCommandIsNotConstructed)
}
