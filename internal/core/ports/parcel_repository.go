// Package ports defines the contracts between the core and its adapters:
// repositories, the unit of work and the change-feed publisher.
package ports

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
)

// ParcelFilter narrows a parcel scan. Zero fields do not filter.
type ParcelFilter struct {
	Statuses         []parcel.Status
	BrandID          *kernel.UUID
	DeliveryDriverID *kernel.UUID
	// OnlyUnreconciled keeps parcels whose cash is not yet reconciled.
	OnlyUnreconciled bool
	// OnlyUninvoiced keeps parcels without an invoice id.
	OnlyUninvoiced bool
	UpdatedSince   *time.Time
	CreatedFrom    *time.Time
	CreatedTo      *time.Time
}

// ParcelRepository persists parcel aggregates with their history and return items.
type ParcelRepository interface {
	// Add inserts a new parcel. A duplicate tracking number yields a ConflictError.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update writes the parcel and its new history events. The write is
	// conditional on the version the parcel was loaded with; a concurrent
	// change yields a ConflictError and nothing is written.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Delete removes the parcel and its child rows.
	Delete(ctx context.Context, aggregate *parcel.Parcel) error

	// Get loads one parcel or returns ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetMany loads every listed parcel, in the given order. A missing id
	// yields ObjectNotFoundError.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*parcel.Parcel, error)

	// TrackingNumberExists reports whether a tracking number is already taken.
	TrackingNumberExists(ctx context.Context, tn parcel.TrackingNumber) (bool, error)

	// Find scans parcels matching filter, oldest first.
	Find(ctx context.Context, filter ParcelFilter) ([]*parcel.Parcel, error)
}
