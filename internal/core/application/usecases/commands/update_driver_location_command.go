package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrUpdateDriverLocationCommandIsNotConstructed = errors.New(
	"UpdateDriverLocationCommand must be created via NewUpdateDriverLocationCommand constructor",
)

// UpdateDriverLocationCommand records a driver's reported position. Drivers
// report only their own position.
type UpdateDriverLocationCommand struct {
	driverID kernel.UUID
	location kernel.GeoPoint

	guard guard.ConstructorGuard
}

func NewUpdateDriverLocationCommand(actorID, driverID kernel.UUID, lat, lng float64) (UpdateDriverLocationCommand, error) {
	if err := errors.Join(actorID.Validate(), driverID.Validate()); err != nil {
		return UpdateDriverLocationCommand{}, err
	}
	if !actorID.IsEqual(driverID) {
		return UpdateDriverLocationCommand{}, errs.NewValueIsInvalidErrorWithCause("actor",
			errors.New("drivers may only report their own location"))
	}
	loc, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return UpdateDriverLocationCommand{}, err
	}
	return UpdateDriverLocationCommand{driverID: driverID, location: loc, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateDriverLocationCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c UpdateDriverLocationCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c UpdateDriverLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDriverLocationCommandIsNotConstructed)
}
