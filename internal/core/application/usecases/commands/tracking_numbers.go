package commands

import (
	"context"

	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"
)

// trackingNumberAttempts bounds the draws before booking gives up.
const trackingNumberAttempts = 5

// TrackingNumberSource draws a candidate primary tracking number.
type TrackingNumberSource func() parcel.TrackingNumber

// nextTrackingNumber draws numbers until one is unused in the store. The unique
// index on parcels.tracking_number still guards the insert itself.
func nextTrackingNumber(ctx context.Context, repo ports.ParcelRepository, draw TrackingNumberSource) (parcel.TrackingNumber, error) {
	for range trackingNumberAttempts {
		tn := draw()
		taken, err := repo.TrackingNumberExists(ctx, tn)
		if err != nil {
			return "", err
		}
		if !taken {
			return tn, nil
		}
	}
	return "", errs.NewConflictError("tracking number", "", "no free tracking number after 5 attempts")
}
