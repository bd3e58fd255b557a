// Package salary holds salary statements and the SalaryPayment record whose
// existence marks a (user, period) as already paid.
package salary

import (
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment or RestorePayment constructor")

// Statement is the computed pay of one user over one period.
type Statement struct {
	UserID     kernel.UUID
	Period     Period
	BaseSalary decimal.Decimal
	Commission decimal.Decimal
	// Lines explains how Commission was derived, one entry per source.
	Lines []CommissionLine
}

// CommissionLine is one component of a commission, e.g. one managed brand.
type CommissionLine struct {
	Label  string
	Basis  decimal.Decimal
	Rate   decimal.Decimal
	Amount decimal.Decimal
}

// Total is base salary plus commission.
func (s Statement) Total() decimal.Decimal {
	return s.BaseSalary.Add(s.Commission)
}

// Payment records that a statement was paid out.
type Payment struct {
	id         kernel.UUID
	userID     kernel.UUID
	period     Period
	baseSalary decimal.Decimal
	commission decimal.Decimal
	paidBy     kernel.UUID
	paidAt     time.Time

	guard guard.ConstructorGuard
}

func NewPayment(id kernel.UUID, s Statement, paidBy kernel.UUID, at time.Time) (*Payment, error) {
	if err := errors.Join(id.Validate(), s.UserID.Validate(), paidBy.Validate()); err != nil {
		return nil, err
	}
	if _, err := NewPeriod(s.Period.Start, s.Period.End); err != nil {
		return nil, err
	}
	return &Payment{
		id:         id,
		userID:     s.UserID,
		period:     s.Period,
		baseSalary: s.BaseSalary,
		commission: s.Commission,
		paidBy:     paidBy,
		paidAt:     at,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

type RestoreParams struct {
	ID         kernel.UUID
	UserID     kernel.UUID
	Period     Period
	BaseSalary decimal.Decimal
	Commission decimal.Decimal
	PaidBy     kernel.UUID
	PaidAt     time.Time
}

func RestorePayment(p RestoreParams) (*Payment, error) {
	return NewPayment(p.ID, Statement{
		UserID:     p.UserID,
		Period:     p.Period,
		BaseSalary: p.BaseSalary,
		Commission: p.Commission,
	}, p.PaidBy, p.PaidAt)
}

func (p *Payment) Validate() error {
	if p == nil {
		return ErrPaymentIsNotConstructed
	}
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

func (p *Payment) ID() kernel.UUID {
	return p.id
}

func (p *Payment) UserID() kernel.UUID {
	return p.userID
}

func (p *Payment) Period() Period {
	return p.period
}

func (p *Payment) BaseSalary() decimal.Decimal {
	return p.baseSalary
}

func (p *Payment) Commission() decimal.Decimal {
	return p.commission
}

func (p *Payment) Total() decimal.Decimal {
	return p.baseSalary.Add(p.commission)
}

func (p *Payment) PaidBy() kernel.UUID {
	return p.paidBy
}

func (p *Payment) PaidAt() time.Time {
	return p.paidAt
}
