package parcel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/pricing"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrReturnItemsAreRequired = errs.NewValueIsRequiredError("return items")

// ExchangeOrder is the replacement order shipped in place of a delivered parcel.
type ExchangeOrder struct {
	OrderRef        string
	ItemDescription string
	CODAmount       decimal.Decimal
	Instructions    string
	ReturnItems     []ReturnItem
}

func (o ExchangeOrder) validate() error {
	if o.CODAmount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("cod amount", fmt.Errorf("%s is negative", o.CODAmount))
	}
	if len(o.ReturnItems) == 0 {
		return ErrReturnItemsAreRequired
	}
	for _, it := range o.ReturnItems {
		if strings.TrimSpace(it.Name) == "" {
			return errs.NewValueIsRequiredError("return item name")
		}
		if it.Quantity <= 0 {
			return errs.NewValueIsOutOfRangeError("return item quantity", it.Quantity, 1, "unbounded")
		}
	}
	return nil
}

// ExchangePair is the outbound replacement and its companion return leg.
type ExchangePair struct {
	Outbound *Parcel
	Return   *Parcel
}

// NewExchangePair books a replacement for a DELIVERED parcel and the return
// leg that brings the original goods back to the brand.
//
// The outbound parcel enters the normal BOOKED pipeline priced by quote. The
// return parcel starts PENDING_EXCHANGE_PICKUP, carries no cash and is created
// already reconciled. Both store each other's id.
func NewExchangePair(
	original *Parcel,
	brand *user.User,
	order ExchangeOrder,
	quote pricing.Quote,
	outboundTrackingNumber TrackingNumber,
	actor Actor,
	at time.Time,
) (ExchangePair, error) {
	if err := errors.Join(original.Validate(), brand.Validate(), actor.Validate()); err != nil {
		return ExchangePair{}, err
	}
	if original.status != Delivered {
		return ExchangePair{}, errs.NewValueIsInvalidErrorWithCause("parcel",
			fmt.Errorf("%s is %s, only DELIVERED parcels can be exchanged", original.trackingNumber, original.status))
	}
	if !brand.ID().IsEqual(original.brandID) {
		return ExchangePair{}, errs.NewValueIsInvalidErrorWithCause("brand",
			fmt.Errorf("%s does not own parcel %s", brand.Name(), original.trackingNumber))
	}
	if actor.Role == user.RoleBrand && !actor.ID.IsEqual(original.brandID) {
		return ExchangePair{}, errs.NewTransitionIsNotAllowedError(original.trackingNumber.String(),
			original.status.String(), PendingExchangePickup.String(), "brand does not own this parcel")
	}
	if err := order.validate(); err != nil {
		return ExchangePair{}, err
	}

	outbound, err := Book(Booking{
		ID:              kernel.NewUUID(),
		TrackingNumber:  outboundTrackingNumber,
		BrandID:         original.brandID,
		Recipient:       original.recipient,
		PickupLocation:  original.pickupLocation,
		OrderRef:        order.OrderRef,
		ItemDescription: order.ItemDescription,
		Instructions:    order.Instructions,
		CODAmount:       order.CODAmount,
		Quote:           quote,
		IsExchange:      true,
	}, actor, at)
	if err != nil {
		return ExchangePair{}, err
	}

	brandAddress, err := brand.PickupLocation(original.pickupLocation)
	if err != nil {
		return ExchangePair{}, err
	}

	ret := &Parcel{
		id:             kernel.NewUUID(),
		trackingNumber: ReturnTrackingNumber(outboundTrackingNumber),
		brandID:        original.brandID,
		recipient: Recipient{
			Name:    brand.Name(),
			Phone:   brandAddress.Phone,
			Address: brandAddress.Address,
			City:    brandAddress.City,
		},
		pickupLocation:  original.pickupLocation,
		orderRef:        order.OrderRef,
		itemDescription: describeReturnItems(order.ReturnItems),
		instructions:    fmt.Sprintf("collect from %s, %s", original.recipient.Name, original.recipient.Address),
		status:          PendingExchangePickup,
		codAmount:       decimal.Zero,
		deliveryCharge:  decimal.Zero,
		tax:             decimal.Zero,
		weight:          quote.Weight,
		isCodReconciled: true,
		isExchange:      true,
		returnItems:     append([]ReturnItem(nil), order.ReturnItems...),
		createdAt:       at,
		updatedAt:       at,
		guard:           guard.NewConstructorGuard(),
	}
	ret.appendHistory(actor, at, HistoryEvent{
		Status: PendingExchangePickup,
		Notes:  fmt.Sprintf("exchange return leg of %s", outbound.trackingNumber),
	})

	outboundID, returnID := outbound.id, ret.id
	outbound.linkedParcelID = &returnID
	ret.linkedParcelID = &outboundID

	return ExchangePair{Outbound: outbound, Return: ret}, nil
}

// CompleteExchange is the composite "delivered & exchange collected" step: the
// outbound leg becomes DELIVERED and the linked return leg PICKED_UP by the same
// driver. Neither parcel is modified unless both halves are valid.
func CompleteExchange(outbound, ret *Parcel, actor Actor, notes string, at time.Time) error {
	if err := errors.Join(outbound.Validate(), ret.Validate(), actor.Validate()); err != nil {
		return err
	}
	if !outbound.isExchange || outbound.linkedParcelID == nil || !outbound.linkedParcelID.IsEqual(ret.id) ||
		ret.linkedParcelID == nil || !ret.linkedParcelID.IsEqual(outbound.id) {
		return errs.NewValueIsInvalidErrorWithCause("exchange pair",
			fmt.Errorf("%s and %s are not linked", outbound.trackingNumber, ret.trackingNumber))
	}
	if outbound.status != OutForDelivery {
		return outbound.notAllowed(Delivered, "exchange outbound leg is not out for delivery")
	}
	if ret.status != PendingExchangePickup {
		return ret.notAllowed(PickedUp, "return leg is not pending exchange pickup")
	}
	if outbound.deliveryDriverID == nil {
		return outbound.notAllowed(Delivered, "no delivery driver assigned")
	}
	if actor.Role != user.RoleAdmin && actor.Role != user.RoleDriver {
		return outbound.notAllowed(Delivered, fmt.Sprintf("role %s may not complete an exchange", actor.Role))
	}
	if actor.Role == user.RoleDriver && !actor.ID.IsEqualPtr(outbound.deliveryDriverID) {
		return outbound.notAllowed(Delivered, "driver is not assigned to this parcel")
	}

	driverID := *outbound.deliveryDriverID
	outbound.status = Delivered
	outbound.appendHistory(actor, at, HistoryEvent{Status: Delivered, Notes: joinNotes("delivered & exchange collected", notes)})

	ret.pickupDriverID = &driverID
	ret.status = PickedUp
	ret.appendHistory(actor, at, HistoryEvent{
		Status: PickedUp,
		Notes:  joinNotes(fmt.Sprintf("collected on delivery of %s", outbound.trackingNumber), notes),
	})
	return nil
}

func describeReturnItems(items []ReturnItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%d x %s", it.Quantity, it.Name))
	}
	return "return: " + strings.Join(parts, ", ")
}

func joinNotes(base, extra string) string {
	if strings.TrimSpace(extra) == "" {
		return base
	}
	return base + ": " + extra
}
