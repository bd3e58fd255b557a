package salaryrepo

import (
	"context"
	"errors"

	"parcelhub/internal/adapters/out/postgres/pgerrs"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/salary"
	"parcelhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSalaryPaymentRepository implements ports.SalaryPaymentRepository using GORM.
type GormSalaryPaymentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormSalaryPaymentRepository(db *gorm.DB, tracker aggregateTracker) *GormSalaryPaymentRepository {
	return &GormSalaryPaymentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add stores the payment; the (user, period) unique index rejects a second one.
func (r *GormSalaryPaymentRepository) Add(ctx context.Context, payment *salary.Payment) error {
	if err := payment.Validate(); err != nil {
		return err
	}

	dto := fromDomain(payment)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		err = pgerrs.Translate(err, "salary payment", payment.UserID().String())
		if errors.Is(err, errs.ErrConflict) {
			return errs.NewConflictError("salary payment", payment.UserID().String(),
				"period "+payment.Period().String()+" already paid")
		}
		return err
	}

	r.tracker.TrackAggregate(payment.ID(), payment)
	return nil
}

func (r *GormSalaryPaymentRepository) Find(ctx context.Context, userID kernel.UUID, period salary.Period) (*salary.Payment, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dto SalaryPaymentDTO
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND period_start = ? AND period_end = ?", userID.Bytes(), period.Start, period.End).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("salary payment", userID.String()+" "+period.String())
		}
		return nil, pgerrs.Translate(err, "salary payment", userID.String())
	}

	return toDomain(dto)
}
