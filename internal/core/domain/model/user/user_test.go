package user

import (
	"testing"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/pricing"
	"parcelhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewUser(t *testing.T) {
	tests := []struct {
		name    string
		id      kernel.UUID
		uname   string
		role    Role
		wantErr error
	}{
		{name: "valid brand", id: kernel.NewUUID(), uname: "Acme", role: RoleBrand},
		{name: "blank name", id: kernel.NewUUID(), uname: "  ", role: RoleDriver, wantErr: errs.ErrValueIsRequired},
		{name: "unknown role", id: kernel.NewUUID(), uname: "Bob", role: Role("PILOT"), wantErr: errs.ErrValueIsInvalid},
		{name: "zero id", id: kernel.UUID{}, uname: "Bob", role: RoleAdmin, wantErr: errs.ErrValueIsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := NewUser(tt.id, tt.uname, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, u)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StatusActive, u.Status())
			assert.True(t, u.IsActive())
			assert.NoError(t, u.Validate())
		})
	}
}

func TestUser_ZeroValueIsNotConstructed(t *testing.T) {
	var u *User
	assert.ErrorIs(t, u.Validate(), ErrUserIsNotConstructed)
	assert.ErrorIs(t, (&User{}).Validate(), ErrUserIsNotConstructed)
}

func TestUser_ActivateDeactivate(t *testing.T) {
	u, err := NewUser(kernel.NewUUID(), "Bilal", RoleDriver)
	require.NoError(t, err)

	u.Deactivate()
	assert.False(t, u.IsActive())
	u.Activate()
	assert.True(t, u.IsActive())
}

func TestUser_BrandProfile(t *testing.T) {
	brand, err := NewUser(kernel.NewUUID(), "Acme", RoleBrand)
	require.NoError(t, err)

	_, err = brand.Quote(d("1"))
	assert.ErrorIs(t, err, ErrRateCardIsMissing)

	card, err := pricing.NewRateCard([]pricing.Tier{
		{MaxWeight: d("0.5"), Charge: d("100")},
		{MaxWeight: d("1"), Charge: d("150")},
	}, d("10"))
	require.NoError(t, err)
	require.NoError(t, brand.SetRateCard(card))

	q, err := brand.Quote(d("0.7"))
	require.NoError(t, err)
	assert.True(t, q.DeliveryCharge.Equal(d("165")), q.DeliveryCharge.String())
	assert.True(t, q.Tax.Equal(d("26.4")), q.Tax.String())

	require.NoError(t, brand.AddPickupLocation(PickupLocation{Name: " Main ", City: "Lahore"}))
	assert.ErrorIs(t, brand.AddPickupLocation(PickupLocation{Name: "main"}), errs.ErrValueIsInvalid)
	assert.ErrorIs(t, brand.AddPickupLocation(PickupLocation{Name: ""}), errs.ErrValueIsRequired)

	loc, err := brand.PickupLocation("MAIN")
	require.NoError(t, err)
	assert.Equal(t, "Lahore", loc.City)

	_, err = brand.PickupLocation("Warehouse 9")
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestUser_ProfileMutatorsCheckRole(t *testing.T) {
	driver, err := NewUser(kernel.NewUUID(), "Bilal", RoleDriver)
	require.NoError(t, err)
	brand, err := NewUser(kernel.NewUUID(), "Acme", RoleBrand)
	require.NoError(t, err)

	assert.ErrorIs(t, driver.AddPickupLocation(PickupLocation{Name: "Main"}), errs.ErrValueIsInvalid)
	assert.ErrorIs(t, brand.SetZones([]string{"gulberg"}), errs.ErrValueIsInvalid)
	_, err = brand.SetDuty(true, time.Now())
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.ErrorIs(t, brand.SetCompensation(Compensation{BaseSalary: d("1000")}), errs.ErrValueIsInvalid)
}

func TestUser_Zones(t *testing.T) {
	driver, err := NewUser(kernel.NewUUID(), "Bilal", RoleDriver)
	require.NoError(t, err)

	require.NoError(t, driver.SetZones([]string{" gulberg", "GULBERG", "", "dha"}))

	assert.Equal(t, []string{"GULBERG", "DHA"}, driver.Zones())
	assert.True(t, driver.CoversZone("Gulberg "))
	assert.False(t, driver.CoversZone("johar town"))
	assert.False(t, driver.CoversZone(""))
}

func TestUser_SetDuty(t *testing.T) {
	driver, err := NewUser(kernel.NewUUID(), "Bilal", RoleDriver)
	require.NoError(t, err)
	at := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	entry, err := driver.SetDuty(true, at)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.True(t, entry.OnDuty)
	assert.Equal(t, at, entry.At)
	assert.True(t, driver.OnDuty())

	entry, err = driver.SetDuty(true, at.Add(time.Hour))
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestUser_SetCompensation(t *testing.T) {
	manager, err := NewUser(kernel.NewUUID(), "Hina", RoleSalesManager)
	require.NoError(t, err)
	brandID := kernel.NewUUID()

	comp := Compensation{
		BaseSalary:       d("50000"),
		BrandCommissions: []BrandCommission{{BrandID: brandID, Pct: d("5")}},
	}
	require.NoError(t, manager.SetCompensation(comp))
	comp.BrandCommissions[0].Pct = d("99")
	assert.True(t, manager.Compensation().BrandCommissions[0].Pct.Equal(d("5")))

	err = manager.SetCompensation(Compensation{BaseSalary: d("-1")})
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	err = manager.SetCompensation(Compensation{BrandCommissions: []BrandCommission{{BrandID: brandID, Pct: d("-2")}}})
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestRestoreUser(t *testing.T) {
	loc, err := kernel.NewGeoPoint(31.52, 74.35)
	require.NoError(t, err)

	u, err := RestoreUser(RestoreParams{
		ID:       kernel.NewUUID(),
		Name:     "Bilal",
		Role:     RoleDriver,
		Status:   StatusInactive,
		Zones:    []string{"dha"},
		OnDuty:   true,
		Location: &loc,
	})
	require.NoError(t, err)
	assert.False(t, u.IsActive())
	assert.Equal(t, []string{"DHA"}, u.Zones())
	require.NotNil(t, u.Location())
	assert.InDelta(t, 31.52, u.Location().Lat(), 1e-9)

	_, err = RestoreUser(RestoreParams{ID: kernel.NewUUID(), Name: "X", Role: RoleDriver, Status: Status("GONE")})
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
