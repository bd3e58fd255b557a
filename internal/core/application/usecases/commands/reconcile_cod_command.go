package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrReconcileCODCommandIsNotConstructed = errors.New(
	"ReconcileCODCommand must be created via NewReconcileCODCommand constructor",
)

// ReconcileCODCommand settles a driver's handed-over money against a chosen
// batch of that driver's delivered parcels.
type ReconcileCODCommand struct {
	actorID    kernel.UUID
	driverID   kernel.UUID
	parcelIDs  []kernel.UUID
	settlement services.Settlement

	guard guard.ConstructorGuard
}

func NewReconcileCODCommand(
	actorID, driverID kernel.UUID,
	parcelIDs []kernel.UUID,
	settlement services.Settlement,
) (ReconcileCODCommand, error) {
	if err := errors.Join(actorID.Validate(), driverID.Validate()); err != nil {
		return ReconcileCODCommand{}, err
	}
	if len(parcelIDs) == 0 {
		return ReconcileCODCommand{}, errs.NewValueIsRequiredError("parcel ids")
	}
	settlement.Transfers = append([]services.Transfer(nil), settlement.Transfers...)

	return ReconcileCODCommand{
		actorID:    actorID,
		driverID:   driverID,
		parcelIDs:  append([]kernel.UUID(nil), parcelIDs...),
		settlement: settlement,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ReconcileCODCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c ReconcileCODCommand) Settlement() services.Settlement {
	return c.settlement
}

func (c ReconcileCODCommand) Validate() error {
	return c.guard.Validate(ErrReconcileCODCommandIsNotConstructed)
}
