package commands

import (
	"errors"
	"fmt"
	"strings"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrBookParcelCommandIsNotConstructed = errors.New(
	"BookParcelCommand must be created via NewBookParcelCommand constructor",
)

// BookParcelCommand books a new parcel for a brand from one of its pickup locations.
//
// Example:
//
//	cmd, err := NewBookParcelCommand(actorID, brandID, "Main", recipient, "ORD-1", "kurta", "", cod, weight)
//	p, err := handler.Handle(ctx, cmd)
type BookParcelCommand struct {
	actorID         kernel.UUID
	brandID         kernel.UUID
	pickupLocation  string
	recipient       parcel.Recipient
	orderRef        string
	itemDescription string
	instructions    string
	codAmount       decimal.Decimal
	weight          decimal.Decimal

	guard guard.ConstructorGuard
}

func NewBookParcelCommand(
	actorID kernel.UUID,
	brandID kernel.UUID,
	pickupLocation string,
	recipient parcel.Recipient,
	orderRef string,
	itemDescription string,
	instructions string,
	codAmount decimal.Decimal,
	weight decimal.Decimal,
) (BookParcelCommand, error) {
	if err := errors.Join(actorID.Validate(), brandID.Validate()); err != nil {
		return BookParcelCommand{}, err
	}
	if strings.TrimSpace(pickupLocation) == "" {
		return BookParcelCommand{}, errs.NewValueIsRequiredError("pickup location")
	}
	if codAmount.IsNegative() {
		return BookParcelCommand{}, errs.NewValueIsInvalidErrorWithCause("cod amount", fmt.Errorf("%s is negative", codAmount))
	}
	if !weight.IsPositive() {
		return BookParcelCommand{}, errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%s is not greater than 0", weight))
	}

	return BookParcelCommand{
		actorID:         actorID,
		brandID:         brandID,
		pickupLocation:  strings.TrimSpace(pickupLocation),
		recipient:       recipient,
		orderRef:        orderRef,
		itemDescription: itemDescription,
		instructions:    instructions,
		codAmount:       codAmount,
		weight:          weight,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c BookParcelCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c BookParcelCommand) BrandID() kernel.UUID {
	return c.brandID
}

func (c BookParcelCommand) PickupLocation() string {
	return c.pickupLocation
}

func (c BookParcelCommand) Recipient() parcel.Recipient {
	return c.recipient
}

func (c BookParcelCommand) CODAmount() decimal.Decimal {
	return c.codAmount
}

func (c BookParcelCommand) Weight() decimal.Decimal {
	return c.weight
}

func (c BookParcelCommand) Validate() error {
	return c.guard.Validate(ErrBookParcelCommandIsNotConstructed)
}
