package parcel_test

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

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type cast struct {
	brand     *user.User
	other     *user.User
	driver    *user.User
	driver2   *user.User
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

	other, err := user.NewUser(kernel.NewUUID(), "Other Brand", user.RoleBrand)
	require.NoError(t, err)

	driver, err := user.NewUser(kernel.NewUUID(), "Bilal", user.RoleDriver)
	require.NoError(t, err)
	require.NoError(t, driver.SetZones([]string{"gulberg", "dha"}))

	driver2, err := user.NewUser(kernel.NewUUID(), "Kamran", user.RoleDriver)
	require.NoError(t, err)
	require.NoError(t, driver2.SetZones([]string{"cantt"}))

	warehouse, err := user.NewUser(kernel.NewUUID(), "Hub Desk", user.RoleWarehouse)
	require.NoError(t, err)

	admin, err := user.NewUser(kernel.NewUUID(), "Ops Admin", user.RoleAdmin)
	require.NoError(t, err)

	return cast{brand: brand, other: other, driver: driver, driver2: driver2, warehouse: warehouse, admin: admin}
}

func as(u *user.User) parcel.Actor {
	return parcel.ActorFromUser(u)
}

func book(t *testing.T, c cast, cod string) *parcel.Parcel {
	t.Helper()
	q, err := c.brand.Quote(d("0.7"))
	require.NoError(t, err)

	p, err := parcel.Book(parcel.Booking{
		ID:             kernel.NewUUID(),
		TrackingNumber: "SD0042",
		BrandID:        c.brand.ID(),
		Recipient: parcel.Recipient{
			Name: "Sara", Phone: "0321-5555555", Address: "7 Canal View", City: "Lahore",
		},
		PickupLocation:  "Main",
		OrderRef:        "ORD-1",
		ItemDescription: "kurta",
		CODAmount:       d(cod),
		Quote:           q,
	}, as(c.brand), now)
	require.NoError(t, err)
	return p
}

// advance drives a booked parcel to OUT_FOR_DELIVERY with c.driver assigned.
func advance(t *testing.T, c cast, p *parcel.Parcel) {
	t.Helper()
	require.NoError(t, p.Transition(parcel.PickedUp, as(c.driver), parcel.TransitionDetails{}, now))
	require.NoError(t, p.Transition(parcel.AtHub, as(c.warehouse), parcel.TransitionDetails{Zone: "Gulberg"}, now))
	require.NoError(t, p.Transition(parcel.OutForDelivery, as(c.warehouse), parcel.TransitionDetails{Driver: c.driver}, now))
}

func deliver(t *testing.T, c cast, p *parcel.Parcel) {
	t.Helper()
	advance(t, c, p)
	require.NoError(t, p.Transition(parcel.Delivered, as(c.driver), parcel.TransitionDetails{}, now))
}
