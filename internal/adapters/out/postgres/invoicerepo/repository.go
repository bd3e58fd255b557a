package invoicerepo

import (
	"context"
	"errors"

	"parcelhub/internal/adapters/out/postgres/pgerrs"
	"parcelhub/internal/core/domain/model/invoice"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInvoiceRepository implements ports.InvoiceRepository using GORM.
type GormInvoiceRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormInvoiceRepository(db *gorm.DB, tracker aggregateTracker) *GormInvoiceRepository {
	return &GormInvoiceRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add stores the invoice with its parcel links. A parcel already linked to
// another invoice violates the unique parcel index and yields a ConflictError.
func (r *GormInvoiceRepository) Add(ctx context.Context, aggregate *invoice.Invoice) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrs.Translate(err, "invoice", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists a payment. The row must still be PENDING in the store.
func (r *GormInvoiceRepository) Update(ctx context.Context, aggregate *invoice.Invoice) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&InvoiceDTO{}).
		Where("id = ? AND status = ?", dto.ID, string(invoice.StatusPending)).
		Updates(map[string]any{
			"status":          dto.Status,
			"transaction_ref": dto.TransactionRef,
			"paid_by":         dto.PaidBy,
			"paid_at":         dto.PaidAt,
		})
	if result.Error != nil {
		return pgerrs.Translate(result.Error, "invoice", aggregate.ID().String())
	}
	if result.RowsAffected == 0 {
		if _, err := r.Get(ctx, aggregate.ID()); err != nil {
			return err
		}
		return errs.NewConflictError("invoice", aggregate.ID().String(), "invoice is already paid")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormInvoiceRepository) Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto InvoiceDTO
	err := r.db.WithContext(ctx).
		Preload("Parcels", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("invoice", id.String())
		}
		return nil, pgerrs.Translate(err, "invoice", id.String())
	}

	return toDomain(dto)
}
