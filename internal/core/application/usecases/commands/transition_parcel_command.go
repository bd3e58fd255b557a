package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrTransitionParcelCommandIsNotConstructed = errors.New(
	"TransitionParcelCommand must be created via NewTransitionParcelCommand constructor",
)

// TransitionInput carries the optional details of a status change as received
// from the caller. Ids are resolved to records by the handler.
type TransitionInput struct {
	Zone     string
	DriverID *kernel.UUID
	// Weight is the verified hub weight; when set on AT_HUB the parcel is re-priced.
	Weight     *decimal.Decimal
	ReasonCode string
	Proof      string
	Notes      string
}

// TransitionParcelCommand moves one parcel to a target status.
type TransitionParcelCommand struct {
	actorID  kernel.UUID
	parcelID kernel.UUID
	target   parcel.Status
	input    TransitionInput

	guard guard.ConstructorGuard
}

func NewTransitionParcelCommand(actorID, parcelID kernel.UUID, target parcel.Status, input TransitionInput) (TransitionParcelCommand, error) {
	if err := errors.Join(actorID.Validate(), parcelID.Validate(), target.Validate()); err != nil {
		return TransitionParcelCommand{}, err
	}
	if input.DriverID != nil {
		if err := input.DriverID.Validate(); err != nil {
			return TransitionParcelCommand{}, err
		}
	}
	if input.Weight != nil && !input.Weight.IsPositive() {
		return TransitionParcelCommand{}, errs.NewValueIsInvalidError("weight")
	}

	return TransitionParcelCommand{
		actorID:  actorID,
		parcelID: parcelID,
		target:   target,
		input:    input,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionParcelCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c TransitionParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c TransitionParcelCommand) Target() parcel.Status {
	return c.target
}

func (c TransitionParcelCommand) Input() TransitionInput {
	return c.input
}

func (c TransitionParcelCommand) Validate() error {
	return c.guard.Validate(ErrTransitionParcelCommandIsNotConstructed)
}
