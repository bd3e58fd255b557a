package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrCompleteExchangeCommandIsNotConstructed = errors.New(
	"CompleteExchangeCommand must be created via NewCompleteExchangeCommand constructor",
)

// CompleteExchangeCommand is "delivered & exchange collected" for an outbound exchange parcel.
type CompleteExchangeCommand struct {
	actorID    kernel.UUID
	outboundID kernel.UUID
	notes      string

	guard guard.ConstructorGuard
}

func NewCompleteExchangeCommand(actorID, outboundID kernel.UUID, notes string) (CompleteExchangeCommand, error) {
	if err := errors.Join(actorID.Validate(), outboundID.Validate()); err != nil {
		return CompleteExchangeCommand{}, err
	}
	return CompleteExchangeCommand{
		actorID:    actorID,
		outboundID: outboundID,
		notes:      notes,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteExchangeCommand) OutboundID() kernel.UUID {
	return c.outboundID
}

func (c CompleteExchangeCommand) Validate() error {
	return c.guard.Validate(ErrCompleteExchangeCommandIsNotConstructed)
}
