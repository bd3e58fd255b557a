package services_test

import (
	"testing"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/user"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newUser(t *testing.T, name string, role user.Role) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), name, role)
	require.NoError(t, err)
	return u
}

type stored struct {
	brandID     kernel.UUID
	status      parcel.Status
	cod         string
	charge      string
	tax         string
	pickupBy    *kernel.UUID
	deliveredBy *kernel.UUID
	reconciled  bool
	invoiceID   *kernel.UUID
	createdAt   time.Time
}

// restored builds a parcel in an arbitrary persisted state.
func restored(t *testing.T, s stored) *parcel.Parcel {
	t.Helper()
	if s.brandID.Validate() != nil {
		s.brandID = kernel.NewUUID()
	}
	if s.cod == "" {
		s.cod = "0"
	}
	if s.charge == "" {
		s.charge = "0"
	}
	if s.tax == "" {
		s.tax = "0"
	}
	if s.createdAt.IsZero() {
		s.createdAt = now
	}
	p, err := parcel.RestoreParcel(parcel.RestoreParams{
		ID:               kernel.NewUUID(),
		TrackingNumber:   parcel.NewRandomTrackingNumber(),
		BrandID:          s.brandID,
		Status:           s.status,
		CODAmount:        d(s.cod),
		DeliveryCharge:   d(s.charge),
		Tax:              d(s.tax),
		Weight:           d("1"),
		PickupDriverID:   s.pickupBy,
		DeliveryDriverID: s.deliveredBy,
		IsCODReconciled:  s.reconciled,
		InvoiceID:        s.invoiceID,
		History: []parcel.HistoryEvent{
			{ID: kernel.NewUUID(), Status: s.status, At: s.createdAt, ActorID: kernel.NewUUID(), ActorName: "seed"},
		},
		CreatedAt: s.createdAt,
		UpdatedAt: s.createdAt,
	})
	require.NoError(t, err)
	return p
}

func ptr(id kernel.UUID) *kernel.UUID {
	return &id
}
