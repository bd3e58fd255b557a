package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrSetDriverDutyCommandIsNotConstructed = errors.New(
	"SetDriverDutyCommand must be created via NewSetDriverDutyCommand constructor",
)

type SetDriverDutyCommand struct {
	actorID  kernel.UUID
	driverID kernel.UUID
	onDuty   bool

	guard guard.ConstructorGuard
}

func NewSetDriverDutyCommand(actorID, driverID kernel.UUID, onDuty bool) (SetDriverDutyCommand, error) {
	if err := errors.Join(actorID.Validate(), driverID.Validate()); err != nil {
		return SetDriverDutyCommand{}, err
	}
	return SetDriverDutyCommand{actorID: actorID, driverID: driverID, onDuty: onDuty, guard: guard.NewConstructorGuard()}, nil
}

func (c SetDriverDutyCommand) OnDuty() bool {
	return c.onDuty
}

func (c SetDriverDutyCommand) Validate() error {
	return c.guard.Validate(ErrSetDriverDutyCommandIsNotConstructed)
}
