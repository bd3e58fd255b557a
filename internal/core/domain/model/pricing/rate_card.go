// Package pricing computes delivery charges from a brand's weight-tiered rate card.
//
// A quote is derived as:
//
//	tier           = smallest threshold >= weight, or the largest threshold
//	charge         = rate(tier)
//	surcharge      = charge * fuelSurchargePct / 100
//	deliveryCharge = charge + surcharge
//	tax            = deliveryCharge * 0.16
//
// The calculator is pure: it is invoked at booking with the declared weight and
// again at hub check-in with the verified weight.
package pricing

import (
	"errors"
	"fmt"
	"sort"

	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// TaxRate is fixed and not configurable per brand.
	TaxRate = decimal.RequireFromString("0.16")

	ErrRateCardIsNotConstructed = errors.New("RateCard must be created via NewRateCard constructor")
	ErrRateCardHasNoTiers       = errs.NewValueIsRequiredError("rate card tiers")

	hundred = decimal.NewFromInt(100)
)

// Tier maps a weight threshold (kg) to a flat charge.
type Tier struct {
	MaxWeight decimal.Decimal
	Charge    decimal.Decimal
}

// RateCard is a brand's price list: ascending tiers plus a fuel surcharge percentage.
type RateCard struct {
	tiers            []Tier
	fuelSurchargePct decimal.Decimal
	guard            guard.ConstructorGuard
}

// NewRateCard sorts the tiers by threshold and validates them. Thresholds must be
// positive and distinct, charges and the surcharge must not be negative.
func NewRateCard(tiers []Tier, fuelSurchargePct decimal.Decimal) (RateCard, error) {
	if len(tiers) == 0 {
		return RateCard{}, ErrRateCardHasNoTiers
	}
	if fuelSurchargePct.IsNegative() {
		return RateCard{}, errs.NewValueIsInvalidErrorWithCause("fuel surcharge",
			fmt.Errorf("%s is negative", fuelSurchargePct))
	}

	sorted := make([]Tier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MaxWeight.LessThan(sorted[j].MaxWeight)
	})

	for i, t := range sorted {
		if !t.MaxWeight.IsPositive() {
			return RateCard{}, errs.NewValueIsInvalidErrorWithCause("tier weight",
				fmt.Errorf("%s is not greater than 0", t.MaxWeight))
		}
		if t.Charge.IsNegative() {
			return RateCard{}, errs.NewValueIsInvalidErrorWithCause("tier charge",
				fmt.Errorf("%s is negative", t.Charge))
		}
		if i > 0 && t.MaxWeight.Equal(sorted[i-1].MaxWeight) {
			return RateCard{}, errs.NewValueIsInvalidErrorWithCause("tier weight",
				fmt.Errorf("duplicate threshold %s", t.MaxWeight))
		}
	}

	return RateCard{
		tiers:            sorted,
		fuelSurchargePct: fuelSurchargePct,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (r RateCard) Validate() error {
	return r.guard.Validate(ErrRateCardIsNotConstructed)
}

// Tiers returns a copy of the tiers in ascending order.
func (r RateCard) Tiers() []Tier {
	out := make([]Tier, len(r.tiers))
	copy(out, r.tiers)
	return out
}

func (r RateCard) FuelSurchargePct() decimal.Decimal {
	return r.fuelSurchargePct
}

// Quote prices a parcel of the given weight.
func (r RateCard) Quote(weight decimal.Decimal) (Quote, error) {
	if err := r.Validate(); err != nil {
		return Quote{}, err
	}
	if !weight.IsPositive() {
		return Quote{}, errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%s is not greater than 0", weight))
	}

	tier := r.selectTier(weight)
	surcharge := tier.Charge.Mul(r.fuelSurchargePct).Div(hundred)
	deliveryCharge := tier.Charge.Add(surcharge)

	return Quote{
		Weight:         weight,
		TierWeight:     tier.MaxWeight,
		Charge:         tier.Charge,
		Surcharge:      surcharge,
		DeliveryCharge: deliveryCharge,
		Tax:            deliveryCharge.Mul(TaxRate),
	}, nil
}

func (r RateCard) selectTier(weight decimal.Decimal) Tier {
	for _, t := range r.tiers {
		if t.MaxWeight.GreaterThanOrEqual(weight) {
			return t
		}
	}
	return r.tiers[len(r.tiers)-1]
}
