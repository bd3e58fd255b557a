package invoice

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice or RestoreInvoice constructor")
	ErrParcelsAreRequired      = errs.NewValueIsRequiredError("invoice parcels")
	ErrTransactionRefRequired  = errs.NewValueIsRequiredError("transaction reference")
)

// Totals is the money summary of the parcels an invoice covers.
type Totals struct {
	COD     decimal.Decimal
	Charges decimal.Decimal
	Tax     decimal.Decimal
}

// NetPayout is what the brand is owed: collected cash minus charges and tax.
func (t Totals) NetPayout() decimal.Decimal {
	return t.COD.Sub(t.Charges).Sub(t.Tax)
}

// Add accumulates one parcel's amounts.
func (t Totals) Add(cod, charge, tax decimal.Decimal) Totals {
	return Totals{COD: t.COD.Add(cod), Charges: t.Charges.Add(charge), Tax: t.Tax.Add(tax)}
}

// Invoice is the brand settlement aggregate.
type Invoice struct {
	id        kernel.UUID
	brandID   kernel.UUID
	parcelIDs []kernel.UUID
	totals    Totals
	status    Status

	transactionRef string
	createdBy      kernel.UUID
	createdAt      time.Time
	paidBy         *kernel.UUID
	paidAt         *time.Time

	guard guard.ConstructorGuard
}

// NewInvoice issues a PENDING invoice. Parcel ids must be distinct.
func NewInvoice(id, brandID kernel.UUID, parcelIDs []kernel.UUID, totals Totals, createdBy kernel.UUID, at time.Time) (*Invoice, error) {
	if err := errors.Join(id.Validate(), brandID.Validate(), createdBy.Validate()); err != nil {
		return nil, err
	}
	if len(parcelIDs) == 0 {
		return nil, ErrParcelsAreRequired
	}
	seen := make(map[kernel.UUID]struct{}, len(parcelIDs))
	for _, pid := range parcelIDs {
		if _, dup := seen[pid]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("invoice parcels", fmt.Errorf("%s listed twice", pid))
		}
		seen[pid] = struct{}{}
	}

	return &Invoice{
		id:        id,
		brandID:   brandID,
		parcelIDs: append([]kernel.UUID(nil), parcelIDs...),
		totals:    totals,
		status:    StatusPending,
		createdBy: createdBy,
		createdAt: at,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

type RestoreParams struct {
	ID             kernel.UUID
	BrandID        kernel.UUID
	ParcelIDs      []kernel.UUID
	Totals         Totals
	Status         Status
	TransactionRef string
	CreatedBy      kernel.UUID
	CreatedAt      time.Time
	PaidBy         *kernel.UUID
	PaidAt         *time.Time
}

func RestoreInvoice(p RestoreParams) (*Invoice, error) {
	if err := errors.Join(p.ID.Validate(), p.BrandID.Validate(), p.Status.Validate()); err != nil {
		return nil, err
	}
	return &Invoice{
		id:             p.ID,
		brandID:        p.BrandID,
		parcelIDs:      append([]kernel.UUID(nil), p.ParcelIDs...),
		totals:         p.Totals,
		status:         p.Status,
		transactionRef: p.TransactionRef,
		createdBy:      p.CreatedBy,
		createdAt:      p.CreatedAt,
		paidBy:         p.PaidBy,
		paidAt:         p.PaidAt,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (i *Invoice) Validate() error {
	if i == nil {
		return ErrInvoiceIsNotConstructed
	}
	return i.guard.Validate(ErrInvoiceIsNotConstructed)
}

func (i *Invoice) ID() kernel.UUID {
	return i.id
}

func (i *Invoice) BrandID() kernel.UUID {
	return i.brandID
}

func (i *Invoice) ParcelIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), i.parcelIDs...)
}

func (i *Invoice) Totals() Totals {
	return i.totals
}

func (i *Invoice) NetPayout() decimal.Decimal {
	return i.totals.NetPayout()
}

func (i *Invoice) Status() Status {
	return i.status
}

func (i *Invoice) TransactionRef() string {
	return i.transactionRef
}

func (i *Invoice) CreatedBy() kernel.UUID {
	return i.createdBy
}

func (i *Invoice) CreatedAt() time.Time {
	return i.createdAt
}

func (i *Invoice) PaidBy() *kernel.UUID {
	return i.paidBy
}

func (i *Invoice) PaidAt() *time.Time {
	return i.paidAt
}

// MarkPaid settles the invoice. It is one-way: a PAID invoice never changes again.
func (i *Invoice) MarkPaid(transactionRef string, paidBy kernel.UUID, at time.Time) error {
	if err := errors.Join(i.Validate(), paidBy.Validate()); err != nil {
		return err
	}
	transactionRef = strings.TrimSpace(transactionRef)
	if transactionRef == "" {
		return ErrTransactionRefRequired
	}
	if i.status == StatusPaid {
		return errs.NewConflictError("invoice", i.id.String(),
			fmt.Sprintf("already paid with reference %s", i.transactionRef))
	}

	i.status = StatusPaid
	i.transactionRef = transactionRef
	i.paidBy = &paidBy
	i.paidAt = &at
	return nil
}
