package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrNothingToReconcile = errs.NewValueIsRequiredError("parcels to reconcile")

// Transfer is one online payment a driver made towards the settlement.
type Transfer struct {
	Amount    decimal.Decimal
	Reference string
}

// Settlement is the money a driver hands over: cash and/or transfers.
type Settlement struct {
	Cash      decimal.Decimal
	Transfers []Transfer
}

// Total is cash plus every transfer.
func (s Settlement) Total() decimal.Decimal {
	total := s.Cash
	for _, t := range s.Transfers {
		total = total.Add(t.Amount)
	}
	return total
}

func (s Settlement) validate() error {
	if s.Cash.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("cash", fmt.Errorf("%s is negative", s.Cash))
	}
	for i, t := range s.Transfers {
		if !t.Amount.IsPositive() {
			return errs.NewValueIsInvalidErrorWithCause("transfer", fmt.Errorf("#%d amount %s is not positive", i+1, t.Amount))
		}
	}
	return nil
}

// Describe renders the method and breakdown recorded on every reconciled parcel.
func (s Settlement) Describe() string {
	var parts []string
	if s.Cash.IsPositive() {
		parts = append(parts, "cash "+kernel.FormatMoney(s.Cash))
	}
	for _, t := range s.Transfers {
		p := "transfer " + kernel.FormatMoney(t.Amount)
		if t.Reference != "" {
			p += " (ref " + t.Reference + ")"
		}
		parts = append(parts, p)
	}
	if len(parts) == 0 {
		return "nothing collected"
	}
	return strings.Join(parts, " + ")
}

// Method is "cash", "online" or "mixed".
func (s Settlement) Method() string {
	switch {
	case len(s.Transfers) == 0:
		return "cash"
	case s.Cash.IsZero():
		return "online"
	default:
		return "mixed"
	}
}

// ReconciliationResult summarises an accepted batch.
type ReconciliationResult struct {
	DriverID kernel.UUID
	Parcels  []*parcel.Parcel
	Expected decimal.Decimal
	Entered  decimal.Decimal
	Method   string
}

// CODReconciler matches a driver's handed-over money against a chosen batch of
// that driver's delivered, unreconciled parcels.
type CODReconciler struct{}

func NewCODReconciler() CODReconciler {
	return CODReconciler{}
}

// Reconcile accepts the batch only when the entered total matches the COD sum
// within the settlement tolerance. On any error no parcel is modified.
func (CODReconciler) Reconcile(
	driverID kernel.UUID,
	parcels []*parcel.Parcel,
	settlement Settlement,
	actor parcel.Actor,
	at time.Time,
) (ReconciliationResult, error) {
	if err := errors.Join(driverID.Validate(), actor.Validate(), settlement.validate()); err != nil {
		return ReconciliationResult{}, err
	}
	if len(parcels) == 0 {
		return ReconciliationResult{}, ErrNothingToReconcile
	}

	seen := make(map[kernel.UUID]struct{}, len(parcels))
	amounts := make([]decimal.Decimal, 0, len(parcels))
	for _, p := range parcels {
		if err := eligibleForReconciliation(driverID, p); err != nil {
			return ReconciliationResult{}, err
		}
		if _, dup := seen[p.ID()]; dup {
			return ReconciliationResult{}, errs.NewValueIsInvalidErrorWithCause("parcels",
				fmt.Errorf("%s selected twice", p.TrackingNumber()))
		}
		seen[p.ID()] = struct{}{}
		amounts = append(amounts, p.CODAmount())
	}

	expected := kernel.SumAmounts(amounts...)
	entered := settlement.Total()
	if !kernel.AmountsMatch(expected, entered) {
		return ReconciliationResult{}, errs.NewAmountMismatchError(kernel.Currency, expected, entered)
	}

	note := fmt.Sprintf("COD reconciled (%s): %s; batch of %d parcels totalling %s",
		settlement.Method(), settlement.Describe(), len(parcels), kernel.FormatMoney(expected))
	for _, p := range parcels {
		if err := p.MarkCODReconciled(actor, note, at); err != nil {
			return ReconciliationResult{}, err
		}
	}

	return ReconciliationResult{
		DriverID: driverID,
		Parcels:  parcels,
		Expected: expected,
		Entered:  entered,
		Method:   settlement.Method(),
	}, nil
}

func eligibleForReconciliation(driverID kernel.UUID, p *parcel.Parcel) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if !driverID.IsEqualPtr(p.DeliveryDriverID()) {
		return errs.NewValueIsInvalidErrorWithCause("parcel",
			fmt.Errorf("%s was not delivered by driver %s", p.TrackingNumber(), driverID))
	}
	if p.Status() != parcel.Delivered {
		return errs.NewValueIsInvalidErrorWithCause("parcel",
			fmt.Errorf("%s is %s, only DELIVERED parcels can be reconciled", p.TrackingNumber(), p.Status()))
	}
	if p.IsCODReconciled() {
		return errs.NewConflictError("parcel", p.TrackingNumber().String(), "cash already reconciled")
	}
	return nil
}
