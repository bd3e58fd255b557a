package queries_test

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

type cast struct {
	brand  *user.User
	driver *user.User
	admin  *user.User
}

func newCast(t *testing.T) cast {
	t.Helper()

	brand, err := user.NewUser(kernel.NewUUID(), "Acme Apparel", user.RoleBrand)
	require.NoError(t, err)
	card, err := pricing.NewRateCard([]pricing.Tier{{MaxWeight: d("1"), Charge: d("150")}}, d("10"))
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

	admin, err := user.NewUser(kernel.NewUUID(), "Ops Admin", user.RoleAdmin)
	require.NoError(t, err)

	return cast{brand: brand, driver: driver, admin: admin}
}

// delivered books a 0.7 kg parcel (charge 165, tax 26.4) and walks it to DELIVERED by c.driver.
func delivered(t *testing.T, c cast, tn parcel.TrackingNumber, cod string) *parcel.Parcel {
	t.Helper()
	q, err := c.brand.Quote(d("0.7"))
	require.NoError(t, err)

	p, err := parcel.Book(parcel.Booking{
		ID:             kernel.NewUUID(),
		TrackingNumber: tn,
		BrandID:        c.brand.ID(),
		Recipient: parcel.Recipient{
			Name: "Sara", Phone: "0321-5555555", Address: "7 Canal View", City: "Lahore",
		},
		PickupLocation: "Main",
		CODAmount:      d(cod),
		Quote:          q,
	}, parcel.ActorFromUser(c.brand), time.Now().UTC())
	require.NoError(t, err)

	for _, s := range []parcel.Status{parcel.PickedUp, parcel.AtHub, parcel.OutForDelivery, parcel.Delivered} {
		details := parcel.TransitionDetails{Zone: "Gulberg", Driver: c.driver}
		require.NoError(t, p.Transition(s, parcel.ActorFromUser(c.admin), details, time.Now().UTC()))
	}
	return p
}
