package commands

import (
	"context"
	"time"
)

// UpdateDriverLocationCommandHandler is the high-frequency path: one column
// write outside an explicit transaction, no aggregate load and no change event.
type UpdateDriverLocationCommandHandler struct {
	uowFactory UserUoWFactory
}

// NewUpdateDriverLocationCommandHandler creates a handler for location pings.
func NewUpdateDriverLocationCommandHandler(uowFactory UserUoWFactory) UpdateDriverLocationCommandHandler {
	return UpdateDriverLocationCommandHandler{uowFactory: uowFactory}
}

// Handle overwrites the last known position. Drivers may only report their own.
func (h UpdateDriverLocationCommandHandler) Handle(ctx context.Context, command UpdateDriverLocationCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	return h.uowFactory.Create().UserRepository().
		UpdateLocation(ctx, command.driverID, command.location, time.Now().UTC())
}
