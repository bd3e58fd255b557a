package commands_test

import (
	"testing"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/pricing"
	"parcelhub/internal/core/domain/model/user"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}

type cast struct {
	brand     *user.User
	driver    *user.User
	warehouse *user.User
	admin     *user.User
}

func newCast(t *testing.T) cast {
	t.Helper()

	brand, err := user.NewUser(kernel.NewUUID(), "Acme Apparel", user.RoleBrand)
	require.NoError(t, err)
	card, err := pricing.NewRateCard([]pricing.Tier{
		{MaxWeight: d("0.5"), Charge: d("100")},
		{MaxWeight: d("1.0"), Charge: d("150")},
	}, d("10"))
	require.NoError(t, err)
	require.NoError(t, brand.SetRateCard(card))
	require.NoError(t, brand.AddPickupLocation(user.PickupLocation{
		Name: "Main", Phone: "0300-1111111", Address: "12 Mall Road", City: "Lahore",
	}))

	driver, err := user.NewUser(kernel.NewUUID(), "Bilal", user.RoleDriver)
	require.NoError(t, err)
	require.NoError(t, driver.SetZones([]string{"gulberg"}))
	require.NoError(t, driver.SetCompensation(user.Compensation{
		BaseSalary:      d("30000"),
		PerPickupRate:   d("20"),
		PerDeliveryRate: d("30"),
	}))

	warehouse, err := user.NewUser(kernel.NewUUID(), "Hub Desk", user.RoleWarehouse)
	require.NoError(t, err)

	admin, err := user.NewUser(kernel.NewUUID(), "Ops Admin", user.RoleAdmin)
	require.NoError(t, err)

	return cast{brand: brand, driver: driver, warehouse: warehouse, admin: admin}
}

func recipient() parcel.Recipient {
	return parcel.Recipient{Name: "Sara", Phone: "0321-5555555", Address: "7 Canal View", City: "Lahore"}
}

// booked returns a freshly booked parcel of c.brand.
func booked(t *testing.T, c cast, cod string) *parcel.Parcel {
	t.Helper()
	q, err := c.brand.Quote(d("0.7"))
	require.NoError(t, err)

	p, err := parcel.Book(parcel.Booking{
		ID:              kernel.NewUUID(),
		TrackingNumber:  parcel.NewRandomTrackingNumber(),
		BrandID:         c.brand.ID(),
		Recipient:       recipient(),
		PickupLocation:  "Main",
		ItemDescription: "kurta",
		CODAmount:       d(cod),
		Quote:           q,
	}, parcel.ActorFromUser(c.brand), time.Now().UTC())
	require.NoError(t, err)
	return p
}

// walk drives p through the given statuses with details that satisfy every rule.
func walk(t *testing.T, c cast, p *parcel.Parcel, to ...parcel.Status) {
	t.Helper()
	for _, s := range to {
		details := parcel.TransitionDetails{Zone: "Gulberg", Driver: c.driver}
		require.NoError(t, p.Transition(s, parcel.ActorFromUser(c.admin), details, time.Now().UTC()))
	}
}

func delivered(t *testing.T, c cast, cod string) *parcel.Parcel {
	t.Helper()
	p := booked(t, c, cod)
	walk(t, c, p, parcel.PickedUp, parcel.AtHub, parcel.OutForDelivery, parcel.Delivered)
	return p
}
