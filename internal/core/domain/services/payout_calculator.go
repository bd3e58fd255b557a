package services

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"parcelhub/internal/core/domain/model/invoice"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"
)

// BrandPayout is one brand's group of delivered, not yet invoiced parcels.
type BrandPayout struct {
	BrandID kernel.UUID
	Parcels []*parcel.Parcel
	Totals  invoice.Totals
}

// PayoutCalculator groups payable parcels and issues invoices over them.
type PayoutCalculator struct{}

func NewPayoutCalculator() PayoutCalculator {
	return PayoutCalculator{}
}

// Totals sums COD, charges and tax over parcels.
func (PayoutCalculator) Totals(parcels []*parcel.Parcel) invoice.Totals {
	var t invoice.Totals
	for _, p := range parcels {
		t = t.Add(p.CODAmount(), p.DeliveryCharge(), p.Tax())
	}
	return t
}

// GroupPending keeps the DELIVERED, un-invoiced parcels and groups them by
// brand. Groups are ordered by brand id so output is stable.
func (c PayoutCalculator) GroupPending(parcels []*parcel.Parcel) []BrandPayout {
	byBrand := map[kernel.UUID][]*parcel.Parcel{}
	var order []kernel.UUID
	for _, p := range parcels {
		if p.Status() != parcel.Delivered || p.IsInvoiced() {
			continue
		}
		if _, ok := byBrand[p.BrandID()]; !ok {
			order = append(order, p.BrandID())
		}
		byBrand[p.BrandID()] = append(byBrand[p.BrandID()], p)
	}

	slices.SortFunc(order, func(a, b kernel.UUID) int {
		return cmp.Compare(a.String(), b.String())
	})

	out := make([]BrandPayout, 0, len(order))
	for _, id := range order {
		out = append(out, BrandPayout{BrandID: id, Parcels: byBrand[id], Totals: c.Totals(byBrand[id])})
	}
	return out
}

// Generate issues a PENDING invoice for the chosen parcels of one brand and
// stamps its id on each of them. Any parcel that is not the brand's, not
// DELIVERED or already invoiced rejects the whole invoice.
func (c PayoutCalculator) Generate(
	invoiceID kernel.UUID,
	brandID kernel.UUID,
	parcels []*parcel.Parcel,
	actor parcel.Actor,
	at time.Time,
) (*invoice.Invoice, error) {
	if err := errors.Join(invoiceID.Validate(), brandID.Validate(), actor.Validate()); err != nil {
		return nil, err
	}
	if len(parcels) == 0 {
		return nil, invoice.ErrParcelsAreRequired
	}

	ids := make([]kernel.UUID, 0, len(parcels))
	for _, p := range parcels {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if !p.BrandID().IsEqual(brandID) {
			return nil, errs.NewValueIsInvalidErrorWithCause("parcel",
				fmt.Errorf("%s belongs to another brand", p.TrackingNumber()))
		}
		if p.IsInvoiced() {
			return nil, errs.NewConflictError("parcel", p.TrackingNumber().String(),
				fmt.Sprintf("already invoiced on %s", p.InvoiceID()))
		}
		if p.Status() != parcel.Delivered {
			return nil, errs.NewValueIsInvalidErrorWithCause("parcel",
				fmt.Errorf("%s is %s, only DELIVERED parcels can be invoiced", p.TrackingNumber(), p.Status()))
		}
		ids = append(ids, p.ID())
	}

	inv, err := invoice.NewInvoice(invoiceID, brandID, ids, c.Totals(parcels), actor.ID, at)
	if err != nil {
		return nil, err
	}
	for _, p := range parcels {
		if err = p.AssignInvoice(invoiceID, at); err != nil {
			return nil, err
		}
	}
	return inv, nil
}
