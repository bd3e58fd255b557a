// Package salaryrepo persists salary payments, one per user and period.
package salaryrepo

import (
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/salary"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SalaryPaymentDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_salary_payments_period"`
	PeriodStart time.Time       `gorm:"not null;uniqueIndex:idx_salary_payments_period"`
	PeriodEnd   time.Time       `gorm:"not null;uniqueIndex:idx_salary_payments_period"`
	BaseSalary  decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	Commission  decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	PaidBy      uuid.UUID       `gorm:"type:uuid;not null"`
	PaidAt      time.Time       `gorm:"not null"`
}

func (SalaryPaymentDTO) TableName() string {
	return "salary_payments"
}

func fromDomain(p *salary.Payment) SalaryPaymentDTO {
	return SalaryPaymentDTO{
		ID:          p.ID().Bytes(),
		UserID:      p.UserID().Bytes(),
		PeriodStart: p.Period().Start,
		PeriodEnd:   p.Period().End,
		BaseSalary:  p.BaseSalary(),
		Commission:  p.Commission(),
		PaidBy:      p.PaidBy().Bytes(),
		PaidAt:      p.PaidAt(),
	}
}

func toDomain(dto SalaryPaymentDTO) (*salary.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	paidBy, err := kernel.UUIDFromBytes(dto.PaidBy[:])
	if err != nil {
		return nil, err
	}
	period, err := salary.NewPeriod(dto.PeriodStart, dto.PeriodEnd)
	if err != nil {
		return nil, err
	}

	return salary.RestorePayment(salary.RestoreParams{
		ID:         id,
		UserID:     userID,
		Period:     period,
		BaseSalary: dto.BaseSalary,
		Commission: dto.Commission,
		PaidBy:     paidBy,
		PaidAt:     dto.PaidAt.UTC(),
	})
}
