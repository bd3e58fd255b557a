package services

import (
	"fmt"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/salary"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CommissionCalculator computes a salaried user's pay over a period.
//
// Only parcels created inside the period count. The caller may pass a superset;
// the calculator applies the role's own selection:
//   - sales manager: parcels of each managed brand, pct of Σ(charge+tax)
//   - driver: pickups that ended PICKED_UP or RETURNED, deliveries that ended DELIVERED
//   - direct sales: every parcel, personal pct of Σ(charge+tax)
//
// Other salaried roles earn the base salary only.
type CommissionCalculator struct{}

func NewCommissionCalculator() CommissionCalculator {
	return CommissionCalculator{}
}

func (c CommissionCalculator) Compute(u *user.User, period salary.Period, parcels []*parcel.Parcel) (salary.Statement, error) {
	if err := u.Validate(); err != nil {
		return salary.Statement{}, err
	}
	if !u.Role().IsSalaried() {
		return salary.Statement{}, errs.NewValueIsInvalidErrorWithCause("user",
			fmt.Errorf("%s is a %s and has no salary", u.Name(), u.Role()))
	}

	inWindow := make([]*parcel.Parcel, 0, len(parcels))
	for _, p := range parcels {
		if period.Contains(p.CreatedAt()) {
			inWindow = append(inWindow, p)
		}
	}

	comp := u.Compensation()
	var lines []salary.CommissionLine
	switch u.Role() {
	case user.RoleSalesManager:
		lines = c.salesManagerLines(comp, inWindow)
	case user.RoleDriver:
		lines = c.driverLines(u.ID(), comp, inWindow)
	case user.RoleDirectSales:
		basis := sumCharges(inWindow)
		lines = []salary.CommissionLine{{
			Label:  "company parcels",
			Basis:  basis,
			Rate:   comp.PersonalCommissionPct,
			Amount: basis.Mul(comp.PersonalCommissionPct).Div(hundred),
		}}
	default:
	}

	commission := decimal.Zero
	for _, l := range lines {
		commission = commission.Add(l.Amount)
	}

	return salary.Statement{
		UserID:     u.ID(),
		Period:     period,
		BaseSalary: comp.BaseSalary,
		Commission: commission,
		Lines:      lines,
	}, nil
}

func (CommissionCalculator) salesManagerLines(comp user.Compensation, parcels []*parcel.Parcel) []salary.CommissionLine {
	lines := make([]salary.CommissionLine, 0, len(comp.BrandCommissions))
	for _, bc := range comp.BrandCommissions {
		var own []*parcel.Parcel
		for _, p := range parcels {
			if p.BrandID().IsEqual(bc.BrandID) {
				own = append(own, p)
			}
		}
		basis := sumCharges(own)
		lines = append(lines, salary.CommissionLine{
			Label:  "brand " + bc.BrandID.String(),
			Basis:  basis,
			Rate:   bc.Pct,
			Amount: basis.Mul(bc.Pct).Div(hundred),
		})
	}
	return lines
}

func (CommissionCalculator) driverLines(driverID kernel.UUID, comp user.Compensation, parcels []*parcel.Parcel) []salary.CommissionLine {
	var pickups, deliveries int64
	for _, p := range parcels {
		if driverID.IsEqualPtr(p.PickupDriverID()) && (p.Status() == parcel.PickedUp || p.Status() == parcel.Returned) {
			pickups++
		}
		if driverID.IsEqualPtr(p.DeliveryDriverID()) && p.Status() == parcel.Delivered {
			deliveries++
		}
	}
	return []salary.CommissionLine{
		{
			Label:  "pickups",
			Basis:  decimal.NewFromInt(pickups),
			Rate:   comp.PerPickupRate,
			Amount: decimal.NewFromInt(pickups).Mul(comp.PerPickupRate),
		},
		{
			Label:  "deliveries",
			Basis:  decimal.NewFromInt(deliveries),
			Rate:   comp.PerDeliveryRate,
			Amount: decimal.NewFromInt(deliveries).Mul(comp.PerDeliveryRate),
		},
	}
}

func sumCharges(parcels []*parcel.Parcel) decimal.Decimal {
	total := decimal.Zero
	for _, p := range parcels {
		total = total.Add(p.Charges())
	}
	return total
}
