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

var (
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via Book or RestoreParcel constructor")
	ErrRemarkIsRequired       = errs.NewValueIsRequiredError("remark")
)

// Recipient is who the parcel is delivered to.
type Recipient struct {
	Name    string
	Phone   string
	Address string
	City    string
}

func (r Recipient) validate() error {
	var missing []error
	if strings.TrimSpace(r.Name) == "" {
		missing = append(missing, errs.NewValueIsRequiredError("recipient name"))
	}
	if strings.TrimSpace(r.Phone) == "" {
		missing = append(missing, errs.NewValueIsRequiredError("recipient phone"))
	}
	if strings.TrimSpace(r.Address) == "" {
		missing = append(missing, errs.NewValueIsRequiredError("recipient address"))
	}
	return errors.Join(missing...)
}

// ReturnItem is one line of goods collected back on an exchange.
type ReturnItem struct {
	Name     string
	Quantity int
}

// Parcel is the aggregate root of the delivery lifecycle.
//
// Invariants:
//   - history is never empty and history[len-1].Status == status
//   - invoiceID is set at most once; afterwards codAmount, deliveryCharge and tax never change
//   - status only changes through Transition, CompleteExchange or Book
type Parcel struct {
	id              kernel.UUID
	trackingNumber  TrackingNumber
	brandID         kernel.UUID
	recipient       Recipient
	pickupLocation  string
	orderRef        string
	itemDescription string
	instructions    string

	status Status

	codAmount      decimal.Decimal
	deliveryCharge decimal.Decimal
	tax            decimal.Decimal
	weight         decimal.Decimal
	zone           string

	pickupDriverID   *kernel.UUID
	deliveryDriverID *kernel.UUID

	isCodReconciled bool
	invoiceID       *kernel.UUID

	isExchange     bool
	linkedParcelID *kernel.UUID
	returnItems    []ReturnItem

	history []HistoryEvent

	createdAt time.Time
	updatedAt time.Time
	// version is the optimistic concurrency token read from the store.
	version int

	guard guard.ConstructorGuard
}

// Booking holds the brand-supplied data of a new parcel.
type Booking struct {
	ID              kernel.UUID
	TrackingNumber  TrackingNumber
	BrandID         kernel.UUID
	Recipient       Recipient
	PickupLocation  string
	OrderRef        string
	ItemDescription string
	Instructions    string
	CODAmount       decimal.Decimal
	Quote           pricing.Quote
	IsExchange      bool
}

// Book creates a BOOKED parcel priced by quote (computed from the declared weight).
func Book(b Booking, actor Actor, at time.Time) (*Parcel, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	if b.CODAmount.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("cod amount", fmt.Errorf("%s is negative", b.CODAmount))
	}
	if !b.Quote.Weight.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%s is not greater than 0", b.Quote.Weight))
	}

	if err := errors.Join(
		b.ID.Validate(),
		b.TrackingNumber.Validate(),
		b.BrandID.Validate(),
		b.Recipient.validate(),
	); err != nil {
		return nil, err
	}

	p := &Parcel{
		id:              b.ID,
		trackingNumber:  b.TrackingNumber,
		brandID:         b.BrandID,
		recipient:       b.Recipient,
		pickupLocation:  b.PickupLocation,
		orderRef:        b.OrderRef,
		itemDescription: b.ItemDescription,
		instructions:    b.Instructions,
		status:          Booked,
		codAmount:       b.CODAmount,
		deliveryCharge:  b.Quote.DeliveryCharge,
		tax:             b.Quote.Tax,
		weight:          b.Quote.Weight,
		isExchange:      b.IsExchange,
		createdAt:       at,
		updatedAt:       at,
		guard:           guard.NewConstructorGuard(),
	}
	p.appendHistory(actor, at, HistoryEvent{Status: Booked, Notes: "parcel booked"})
	return p, nil
}

// RestoreParams carries the persisted state of a parcel.
type RestoreParams struct {
	ID               kernel.UUID
	TrackingNumber   TrackingNumber
	BrandID          kernel.UUID
	Recipient        Recipient
	PickupLocation   string
	OrderRef         string
	ItemDescription  string
	Instructions     string
	Status           Status
	CODAmount        decimal.Decimal
	DeliveryCharge   decimal.Decimal
	Tax              decimal.Decimal
	Weight           decimal.Decimal
	Zone             string
	PickupDriverID   *kernel.UUID
	DeliveryDriverID *kernel.UUID
	IsCODReconciled  bool
	InvoiceID        *kernel.UUID
	IsExchange       bool
	LinkedParcelID   *kernel.UUID
	ReturnItems      []ReturnItem
	History          []HistoryEvent
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Version          int
}

// RestoreParcel rebuilds a parcel loaded from the store and checks the
// history/status invariant.
func RestoreParcel(p RestoreParams) (*Parcel, error) {
	if err := errors.Join(p.ID.Validate(), p.BrandID.Validate(), p.Status.Validate()); err != nil {
		return nil, err
	}
	if len(p.History) == 0 {
		return nil, errs.NewValueIsRequiredError("parcel history")
	}
	if last := p.History[len(p.History)-1]; last.Status != p.Status {
		return nil, errs.NewValueIsInvalidErrorWithCause("parcel history",
			fmt.Errorf("last event is %s but status is %s", last.Status, p.Status))
	}

	return &Parcel{
		id:               p.ID,
		trackingNumber:   p.TrackingNumber,
		brandID:          p.BrandID,
		recipient:        p.Recipient,
		pickupLocation:   p.PickupLocation,
		orderRef:         p.OrderRef,
		itemDescription:  p.ItemDescription,
		instructions:     p.Instructions,
		status:           p.Status,
		codAmount:        p.CODAmount,
		deliveryCharge:   p.DeliveryCharge,
		tax:              p.Tax,
		weight:           p.Weight,
		zone:             p.Zone,
		pickupDriverID:   p.PickupDriverID,
		deliveryDriverID: p.DeliveryDriverID,
		isCodReconciled:  p.IsCODReconciled,
		invoiceID:        p.InvoiceID,
		isExchange:       p.IsExchange,
		linkedParcelID:   p.LinkedParcelID,
		returnItems:      append([]ReturnItem(nil), p.ReturnItems...),
		history:          append([]HistoryEvent(nil), p.History...),
		createdAt:        p.CreatedAt,
		updatedAt:        p.UpdatedAt,
		version:          p.Version,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

func (p *Parcel) ID() kernel.UUID {
	return p.id
}

func (p *Parcel) TrackingNumber() TrackingNumber {
	return p.trackingNumber
}

func (p *Parcel) BrandID() kernel.UUID {
	return p.brandID
}

func (p *Parcel) Recipient() Recipient {
	return p.recipient
}

func (p *Parcel) PickupLocation() string {
	return p.pickupLocation
}

func (p *Parcel) OrderRef() string {
	return p.orderRef
}

func (p *Parcel) ItemDescription() string {
	return p.itemDescription
}

func (p *Parcel) Instructions() string {
	return p.instructions
}

func (p *Parcel) Status() Status {
	return p.status
}

func (p *Parcel) CODAmount() decimal.Decimal {
	return p.codAmount
}

func (p *Parcel) DeliveryCharge() decimal.Decimal {
	return p.deliveryCharge
}

func (p *Parcel) Tax() decimal.Decimal {
	return p.tax
}

func (p *Parcel) Weight() decimal.Decimal {
	return p.weight
}

func (p *Parcel) Zone() string {
	return p.zone
}

// PickupDriverID returns the driver who collected the parcel, nil before pickup.
func (p *Parcel) PickupDriverID() *kernel.UUID {
	return p.pickupDriverID
}

// DeliveryDriverID returns the driver currently assigned for delivery or return.
func (p *Parcel) DeliveryDriverID() *kernel.UUID {
	return p.deliveryDriverID
}

func (p *Parcel) IsCODReconciled() bool {
	return p.isCodReconciled
}

func (p *Parcel) InvoiceID() *kernel.UUID {
	return p.invoiceID
}

// IsInvoiced reports whether the parcel is stamped with an invoice id.
func (p *Parcel) IsInvoiced() bool {
	return p.invoiceID != nil
}

func (p *Parcel) IsExchange() bool {
	return p.isExchange
}

// isExchangeOutbound reports whether p is the leg delivered to the customer.
// The return leg travels back to the brand through the ordinary edges.
func (p *Parcel) isExchangeOutbound() bool {
	return p.isExchange && !p.trackingNumber.IsReturnLeg()
}

func (p *Parcel) LinkedParcelID() *kernel.UUID {
	return p.linkedParcelID
}

func (p *Parcel) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Parcel) UpdatedAt() time.Time {
	return p.updatedAt
}

// Version is the optimistic concurrency token read from the store.
func (p *Parcel) Version() int {
	return p.version
}

// Charges is what the brand owes for this parcel: delivery charge plus tax.
func (p *Parcel) Charges() decimal.Decimal {
	return p.deliveryCharge.Add(p.tax)
}

func (p *Parcel) ReturnItems() []ReturnItem {
	return append([]ReturnItem(nil), p.returnItems...)
}

func (p *Parcel) History() []HistoryEvent {
	return append([]HistoryEvent(nil), p.history...)
}

// LastEvent returns the most recent history entry.
func (p *Parcel) LastEvent() HistoryEvent {
	return p.history[len(p.history)-1]
}

// Transition moves the parcel to target on behalf of actor.
//
// It checks, in order: target is a legal successor of the current status, the
// actor's role may perform the edge, the target-specific details are present,
// then applies the edge's field writes and appends one history event.
// On error the parcel is left unchanged.
func (p *Parcel) Transition(target Status, actor Actor, details TransitionDetails, at time.Time) error {
	if err := errors.Join(p.Validate(), actor.Validate()); err != nil {
		return err
	}

	r, ok := transitionTable[p.status][target]
	if !ok {
		return p.notAllowed(target, "not a legal successor")
	}
	if p.isExchangeOutbound() && p.status == OutForDelivery && target == Delivered {
		return p.notAllowed(target, "exchange parcels complete via delivered & exchange collected")
	}
	if err := p.authorize(r, target, actor); err != nil {
		return err
	}
	if err := p.checkDetails(r, target, actor, details); err != nil {
		return err
	}

	p.applyEffects(target, actor, details)
	p.status = target
	p.appendHistory(actor, at, HistoryEvent{
		Status:     target,
		Notes:      details.Notes,
		ReasonCode: details.ReasonCode,
		Proof:      details.Proof,
	})
	return nil
}

// AddRemark appends a note without changing the status.
func (p *Parcel) AddRemark(actor Actor, remark string, at time.Time) error {
	if err := errors.Join(p.Validate(), actor.Validate()); err != nil {
		return err
	}
	if strings.TrimSpace(remark) == "" {
		return ErrRemarkIsRequired
	}
	if actor.Role == user.RoleBrand && !actor.ID.IsEqual(p.brandID) {
		return p.notAllowed(p.status, "brand does not own this parcel")
	}
	p.appendHistory(actor, at, HistoryEvent{Status: p.status, Notes: remark})
	return nil
}

// MarkCODReconciled flags a delivered parcel's cash as settled.
func (p *Parcel) MarkCODReconciled(actor Actor, note string, at time.Time) error {
	if err := errors.Join(p.Validate(), actor.Validate()); err != nil {
		return err
	}
	if p.status != Delivered {
		return errs.NewValueIsInvalidErrorWithCause("parcel",
			fmt.Errorf("%s is %s, only DELIVERED parcels can be reconciled", p.trackingNumber, p.status))
	}
	if p.isCodReconciled {
		return errs.NewConflictError("parcel", p.trackingNumber.String(), "cash already reconciled")
	}
	p.isCodReconciled = true
	p.appendHistory(actor, at, HistoryEvent{Status: p.status, Notes: note})
	return nil
}

// AssignInvoice stamps the invoice id. It succeeds at most once per parcel.
func (p *Parcel) AssignInvoice(invoiceID kernel.UUID, at time.Time) error {
	if err := errors.Join(p.Validate(), invoiceID.Validate()); err != nil {
		return err
	}
	if p.invoiceID != nil {
		return errs.NewConflictError("parcel", p.trackingNumber.String(),
			fmt.Sprintf("already invoiced on %s", p.invoiceID))
	}
	if p.status != Delivered {
		return errs.NewValueIsInvalidErrorWithCause("parcel",
			fmt.Errorf("%s is %s, only DELIVERED parcels can be invoiced", p.trackingNumber, p.status))
	}
	p.invoiceID = &invoiceID
	p.updatedAt = at
	return nil
}

// EnsureDeletable checks that actor may hard-delete the parcel: only BOOKED or
// CANCELED, never invoiced, never part of an exchange pair.
func (p *Parcel) EnsureDeletable(actor Actor) error {
	if err := errors.Join(p.Validate(), actor.Validate()); err != nil {
		return err
	}
	switch {
	case actor.Role != user.RoleAdmin && actor.Role != user.RoleBrand:
		return errs.NewValueIsInvalidErrorWithCause("actor", fmt.Errorf("%s may not delete parcels", actor.Role))
	case actor.Role == user.RoleBrand && !actor.ID.IsEqual(p.brandID):
		return errs.NewValueIsInvalidErrorWithCause("actor", errors.New("brand does not own this parcel"))
	case p.status != Booked && p.status != Canceled:
		return errs.NewValueIsInvalidErrorWithCause("parcel",
			fmt.Errorf("%s is %s, only BOOKED or CANCELED parcels can be deleted", p.trackingNumber, p.status))
	case p.invoiceID != nil:
		return errs.NewConflictError("parcel", p.trackingNumber.String(), "invoiced parcels cannot be deleted")
	case p.linkedParcelID != nil:
		return errs.NewValueIsInvalidErrorWithCause("parcel",
			fmt.Errorf("%s is part of an exchange pair", p.trackingNumber))
	}
	return nil
}

func (p *Parcel) authorize(r rule, target Status, actor Actor) error {
	if !r.allows(actor.Role) {
		return p.notAllowed(target, fmt.Sprintf("role %s may not perform this transition", actor.Role))
	}
	if r.ownerOnly && actor.Role == user.RoleBrand && !actor.ID.IsEqual(p.brandID) {
		return p.notAllowed(target, "brand does not own this parcel")
	}
	if r.assignedDriverOnly && actor.Role == user.RoleDriver && !actor.ID.IsEqualPtr(p.deliveryDriverID) {
		return p.notAllowed(target, "driver is not assigned to this parcel")
	}
	return nil
}

func (p *Parcel) checkDetails(r rule, target Status, actor Actor, d TransitionDetails) error {
	var missing []error
	if r.has(needsZone) && strings.TrimSpace(d.Zone) == "" {
		missing = append(missing, errs.NewValueIsRequiredError("zone"))
	}
	if r.has(needsReason) && strings.TrimSpace(d.ReasonCode) == "" {
		missing = append(missing, errs.NewValueIsRequiredError("reason code"))
	}
	if r.has(needsProof) && strings.TrimSpace(d.Proof) == "" {
		missing = append(missing, errs.NewValueIsRequiredError("proof"))
	}
	needDriver := r.has(needsDriver) || (r.has(needsDriverUnlessSelf) && actor.Role != user.RoleDriver)
	if needDriver && d.Driver == nil {
		missing = append(missing, errs.NewValueIsRequiredError("driver"))
	}
	if err := errors.Join(missing...); err != nil {
		return err
	}

	if !r.has(needsDriver) && !r.has(needsDriverUnlessSelf) {
		return nil
	}
	if d.Driver == nil {
		if actor.Inactive {
			return errs.NewValueIsInvalidErrorWithCause("driver", fmt.Errorf("%s is inactive", actor.Name))
		}
		return nil
	}
	if actor.Role == user.RoleDriver && !actor.ID.IsEqual(d.Driver.ID()) {
		return p.notAllowed(target, "drivers may only assign themselves")
	}
	return p.checkDriverEligible(target, d.Driver)
}

// checkDriverEligible requires an ACTIVE driver, covering the parcel's zone when
// dispatching for delivery.
func (p *Parcel) checkDriverEligible(target Status, driver *user.User) error {
	if err := driver.Validate(); err != nil {
		return err
	}
	if driver.Role() != user.RoleDriver {
		return errs.NewValueIsInvalidErrorWithCause("driver", fmt.Errorf("%s is a %s", driver.ID(), driver.Role()))
	}
	if !driver.IsActive() {
		return errs.NewValueIsInvalidErrorWithCause("driver", fmt.Errorf("%s is inactive", driver.Name()))
	}
	if target == OutForDelivery && !driver.CoversZone(p.zone) {
		return errs.NewValueIsInvalidErrorWithCause("driver",
			fmt.Errorf("%s does not cover zone %q", driver.Name(), p.zone))
	}
	return nil
}

func (p *Parcel) applyEffects(target Status, actor Actor, d TransitionDetails) {
	driverID := func() *kernel.UUID {
		if d.Driver != nil {
			id := d.Driver.ID()
			return &id
		}
		id := actor.ID
		return &id
	}

	switch target {
	case PickedUp:
		p.pickupDriverID = driverID()
	case AtHub:
		p.zone = strings.ToUpper(strings.TrimSpace(d.Zone))
		if d.Quote != nil {
			p.applyQuote(*d.Quote)
		}
	case OutForDelivery, OutForReturn:
		p.deliveryDriverID = driverID()
	default:
	}
}

// applyQuote records the verified weight and re-derives money fields unless invoiced.
func (p *Parcel) applyQuote(q pricing.Quote) {
	p.weight = q.Weight
	if p.invoiceID != nil {
		return
	}
	p.deliveryCharge = q.DeliveryCharge
	p.tax = q.Tax
}

func (p *Parcel) appendHistory(actor Actor, at time.Time, e HistoryEvent) {
	e.ID = kernel.NewUUID()
	e.At = at
	e.ActorID = actor.ID
	e.ActorName = actor.Name
	p.history = append(p.history, e)
	p.updatedAt = at
}

func (p *Parcel) notAllowed(target Status, reason string) error {
	return errs.NewTransitionIsNotAllowedError(p.trackingNumber.String(), p.status.String(), target.String(), reason)
}
