package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/guard"
)

var ErrCreateExchangeCommandIsNotConstructed = errors.New(
	"CreateExchangeCommand must be created via NewCreateExchangeCommand constructor",
)

// CreateExchangeCommand ships a replacement for a delivered parcel and books
// the return leg that collects the original goods.
type CreateExchangeCommand struct {
	actorID    kernel.UUID
	originalID kernel.UUID
	order      parcel.ExchangeOrder

	guard guard.ConstructorGuard
}

func NewCreateExchangeCommand(actorID, originalID kernel.UUID, order parcel.ExchangeOrder) (CreateExchangeCommand, error) {
	if err := errors.Join(actorID.Validate(), originalID.Validate()); err != nil {
		return CreateExchangeCommand{}, err
	}
	if len(order.ReturnItems) == 0 {
		return CreateExchangeCommand{}, parcel.ErrReturnItemsAreRequired
	}
	order.ReturnItems = append([]parcel.ReturnItem(nil), order.ReturnItems...)

	return CreateExchangeCommand{
		actorID:    actorID,
		originalID: originalID,
		order:      order,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateExchangeCommand) OriginalID() kernel.UUID {
	return c.originalID
}

func (c CreateExchangeCommand) Validate() error {
	return c.guard.Validate(ErrCreateExchangeCommandIsNotConstructed)
}
