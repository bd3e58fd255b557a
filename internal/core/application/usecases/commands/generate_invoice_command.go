package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/invoice"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrGenerateInvoiceCommandIsNotConstructed = errors.New(
	"GenerateInvoiceCommand must be created via NewGenerateInvoiceCommand constructor",
)

// GenerateInvoiceCommand issues a payout invoice over chosen parcels of one brand.
type GenerateInvoiceCommand struct {
	actorID   kernel.UUID
	brandID   kernel.UUID
	parcelIDs []kernel.UUID

	guard guard.ConstructorGuard
}

func NewGenerateInvoiceCommand(actorID, brandID kernel.UUID, parcelIDs []kernel.UUID) (GenerateInvoiceCommand, error) {
	if err := errors.Join(actorID.Validate(), brandID.Validate()); err != nil {
		return GenerateInvoiceCommand{}, err
	}
	if len(parcelIDs) == 0 {
		return GenerateInvoiceCommand{}, invoice.ErrParcelsAreRequired
	}
	return GenerateInvoiceCommand{
		actorID:   actorID,
		brandID:   brandID,
		parcelIDs: append([]kernel.UUID(nil), parcelIDs...),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c GenerateInvoiceCommand) BrandID() kernel.UUID {
	return c.brandID
}

func (c GenerateInvoiceCommand) ParcelIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.parcelIDs...)
}

func (c GenerateInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrGenerateInvoiceCommandIsNotConstructed)
}
