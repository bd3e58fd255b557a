package parcelrepo

import (
	"context"
	"errors"

	"parcelhub/internal/adapters/out/postgres/pgerrs"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormParcelRepository implements ports.ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// Deleted is tracked in place of the aggregate when a parcel is removed.
type Deleted struct {
	Parcel *parcel.Parcel
}

func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the parcel with its history and return items.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrs.Translate(err, "parcel", dto.TrackingNumber)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the parcel row only if its version still matches the one it
// was loaded with, then appends history events the store does not hold yet.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loaded := dto.Version
	dto.Version = loaded + 1

	db := r.db.WithContext(ctx)
	result := db.Model(&ParcelDTO{}).
		Where("id = ? AND version = ?", dto.ID, loaded).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return pgerrs.Translate(result.Error, "parcel", aggregate.ID().String())
	}
	if result.RowsAffected == 0 {
		return r.missingOrChanged(ctx, aggregate.ID())
	}

	if len(dto.History) > 0 {
		err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.History).Error
		if err != nil {
			return pgerrs.Translate(err, "parcel", aggregate.ID().String())
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Delete removes the parcel and its child rows.
func (r *GormParcelRepository) Delete(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID().Bytes()
	db := r.db.WithContext(ctx)
	if err := db.Where("parcel_id = ?", id).Delete(&HistoryDTO{}).Error; err != nil {
		return pgerrs.Translate(err, "parcel", aggregate.ID().String())
	}
	if err := db.Where("parcel_id = ?", id).Delete(&ReturnItemDTO{}).Error; err != nil {
		return pgerrs.Translate(err, "parcel", aggregate.ID().String())
	}
	result := db.Where("id = ? AND version = ?", id, aggregate.Version()).Delete(&ParcelDTO{})
	if result.Error != nil {
		return pgerrs.Translate(result.Error, "parcel", aggregate.ID().String())
	}
	if result.RowsAffected == 0 {
		return r.missingOrChanged(ctx, aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), Deleted{Parcel: aggregate})
	return nil
}

// Get retrieves a parcel by ID.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.withChildren(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		return nil, pgerrs.Translate(err, "parcel", id.String())
	}

	return toDomain(dto)
}

// GetMany retrieves the listed parcels in request order.
func (r *GormParcelRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*parcel.Parcel, error) {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}
	if len(raw) == 0 {
		return []*parcel.Parcel{}, nil
	}

	var dtos []ParcelDTO
	if err := r.withChildren(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, pgerrs.Translate(err, "parcels", "")
	}

	byID := make(map[uuid.UUID]ParcelDTO, len(dtos))
	for _, dto := range dtos {
		byID[dto.ID] = dto
	}

	parcels := make([]*parcel.Parcel, 0, len(ids))
	for i, id := range ids {
		dto, ok := byID[raw[i]]
		if !ok {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}
	return parcels, nil
}

func (r *GormParcelRepository) TrackingNumberExists(ctx context.Context, tn parcel.TrackingNumber) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ParcelDTO{}).Where("tracking_number = ?", string(tn)).Count(&count).Error
	if err != nil {
		return false, pgerrs.Translate(err, "parcel", string(tn))
	}
	return count > 0, nil
}

// Find scans parcels matching the filter, oldest first.
//
// Example:
//
//	driverID := driver.ID()
//	parcels, err := repo.Find(ctx, ports.ParcelFilter{
//		Statuses:         []parcel.Status{parcel.Delivered},
//		DeliveryDriverID: &driverID,
//		OnlyUnreconciled: true,
//	})
func (r *GormParcelRepository) Find(ctx context.Context, filter ports.ParcelFilter) ([]*parcel.Parcel, error) {
	q := r.withChildren(ctx)

	if len(filter.Statuses) > 0 {
		names := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			names = append(names, s.String())
		}
		q = q.Where("status IN ?", names)
	}
	if filter.BrandID != nil {
		q = q.Where("brand_id = ?", filter.BrandID.Bytes())
	}
	if filter.DeliveryDriverID != nil {
		q = q.Where("delivery_driver_id = ?", filter.DeliveryDriverID.Bytes())
	}
	if filter.OnlyUnreconciled {
		q = q.Where("is_cod_reconciled = ?", false)
	}
	if filter.OnlyUninvoiced {
		q = q.Where("invoice_id IS NULL")
	}
	if filter.UpdatedSince != nil {
		q = q.Where("updated_at >= ?", *filter.UpdatedSince)
	}
	if filter.CreatedFrom != nil {
		q = q.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		q = q.Where("created_at <= ?", *filter.CreatedTo)
	}

	var dtos []ParcelDTO
	if err := q.Order("created_at, id").Find(&dtos).Error; err != nil {
		return nil, pgerrs.Translate(err, "parcels", "")
	}

	parcels := make([]*parcel.Parcel, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}
	return parcels, nil
}

func (r *GormParcelRepository) withChildren(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq")
		}).
		Preload("ReturnItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		})
}

func (r *GormParcelRepository) missingOrChanged(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ParcelDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return pgerrs.Translate(err, "parcel", id.String())
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("parcel", id.String())
	}
	return errs.NewConflictError("parcel", id.String(), "parcel changed concurrently")
}
