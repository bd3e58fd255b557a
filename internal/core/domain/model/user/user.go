package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/pricing"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser constructor")
	ErrNameIsRequired       = errs.NewValueIsRequiredError("name")
	ErrRateCardIsMissing    = errs.NewValueIsRequiredError("brand rate card")
)

// User is the aggregate root for every actor of the system.
//
// Invariants:
//   - id, name and role are always valid
//   - profile mutators reject users whose role does not own that profile
//   - zones are stored upper-cased and de-duplicated
type User struct {
	id     kernel.UUID
	name   string
	role   Role
	status Status

	// brand
	pickupLocations []PickupLocation
	rateCard        *pricing.RateCard

	// driver
	zones    []string
	onDuty   bool
	location *kernel.GeoPoint

	compensation Compensation

	guard guard.ConstructorGuard
}

// NewUser creates an ACTIVE user with an empty profile.
func NewUser(id kernel.UUID, name string, role Role) (*User, error) {
	u := &User{
		status: StatusActive,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	u.compensation = Compensation{
		BaseSalary:            decimal.Zero,
		PerPickupRate:         decimal.Zero,
		PerDeliveryRate:       decimal.Zero,
		PersonalCommissionPct: decimal.Zero,
	}
	return u, nil
}

// RestoreParams carries the persisted state of a user.
type RestoreParams struct {
	ID              kernel.UUID
	Name            string
	Role            Role
	Status          Status
	PickupLocations []PickupLocation
	RateCard        *pricing.RateCard
	Zones           []string
	OnDuty          bool
	Location        *kernel.GeoPoint
	Compensation    Compensation
}

// RestoreUser rebuilds a user loaded from the store.
func RestoreUser(p RestoreParams) (*User, error) {
	u, err := NewUser(p.ID, p.Name, p.Role)
	if err != nil {
		return nil, err
	}
	if err = p.Status.Validate(); err != nil {
		return nil, err
	}

	u.status = p.Status
	u.pickupLocations = append([]PickupLocation(nil), p.PickupLocations...)
	u.rateCard = p.RateCard
	u.zones = normalizeZones(p.Zones)
	u.onDuty = p.OnDuty
	u.location = p.Location
	u.compensation = p.Compensation
	return u, nil
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) ID() kernel.UUID {
	return u.id
}

func (u *User) Name() string {
	return u.name
}

func (u *User) Role() Role {
	return u.role
}

func (u *User) Status() Status {
	return u.status
}

func (u *User) IsActive() bool {
	return u.status == StatusActive
}

func (u *User) PickupLocations() []PickupLocation {
	return append([]PickupLocation(nil), u.pickupLocations...)
}

func (u *User) RateCard() *pricing.RateCard {
	return u.rateCard
}

func (u *User) Zones() []string {
	return append([]string(nil), u.zones...)
}

func (u *User) OnDuty() bool {
	return u.onDuty
}

func (u *User) Location() *kernel.GeoPoint {
	return u.location
}

func (u *User) Compensation() Compensation {
	c := u.compensation
	c.BrandCommissions = append([]BrandCommission(nil), u.compensation.BrandCommissions...)
	return c
}

// Activate and Deactivate toggle assignability to new work.
func (u *User) Activate() {
	u.status = StatusActive
}

func (u *User) Deactivate() {
	u.status = StatusInactive
}

// SetRateCard stores a brand's price list.
func (u *User) SetRateCard(card pricing.RateCard) error {
	if err := u.requireRole(RoleBrand); err != nil {
		return err
	}
	if err := card.Validate(); err != nil {
		return err
	}
	u.rateCard = &card
	return nil
}

// Quote prices a parcel with the brand's rate card.
func (u *User) Quote(weight decimal.Decimal) (pricing.Quote, error) {
	if err := u.requireRole(RoleBrand); err != nil {
		return pricing.Quote{}, err
	}
	if u.rateCard == nil {
		return pricing.Quote{}, ErrRateCardIsMissing
	}
	return u.rateCard.Quote(weight)
}

// AddPickupLocation registers a brand pickup address. Names are unique per brand.
func (u *User) AddPickupLocation(loc PickupLocation) error {
	if err := u.requireRole(RoleBrand); err != nil {
		return err
	}
	loc.Name = strings.TrimSpace(loc.Name)
	if loc.Name == "" {
		return errs.NewValueIsRequiredError("pickup location name")
	}
	if _, err := u.PickupLocation(loc.Name); err == nil {
		return errs.NewValueIsInvalidErrorWithCause("pickup location", fmt.Errorf("%q already exists", loc.Name))
	}
	u.pickupLocations = append(u.pickupLocations, loc)
	return nil
}

// PickupLocation finds a brand pickup location by name (case-insensitive).
func (u *User) PickupLocation(name string) (PickupLocation, error) {
	for _, loc := range u.pickupLocations {
		if strings.EqualFold(loc.Name, strings.TrimSpace(name)) {
			return loc, nil
		}
	}
	return PickupLocation{}, errs.NewObjectNotFoundError("pickup location", name)
}

// SetZones replaces the zones a driver covers.
func (u *User) SetZones(zones []string) error {
	if err := u.requireRole(RoleDriver); err != nil {
		return err
	}
	u.zones = normalizeZones(zones)
	return nil
}

// CoversZone reports whether a driver serves the given zone.
func (u *User) CoversZone(zone string) bool {
	z := normalizeZone(zone)
	if z == "" {
		return false
	}
	for _, covered := range u.zones {
		if covered == z {
			return true
		}
	}
	return false
}

// SetDuty switches a driver on or off duty and returns the log entry to persist.
// Setting the current state again is a no-op and returns nil.
func (u *User) SetDuty(onDuty bool, at time.Time) (*DutyLogEntry, error) {
	if err := u.requireRole(RoleDriver); err != nil {
		return nil, err
	}
	if u.onDuty == onDuty {
		return nil, nil
	}
	u.onDuty = onDuty
	return &DutyLogEntry{DriverID: u.id, OnDuty: onDuty, At: at}, nil
}

// SetCompensation stores the pay parameters.
func (u *User) SetCompensation(c Compensation) error {
	if !u.role.IsSalaried() {
		return errs.NewValueIsInvalidErrorWithCause("compensation",
			fmt.Errorf("%s is not a salaried role", u.role))
	}
	for _, v := range []decimal.Decimal{c.BaseSalary, c.PerPickupRate, c.PerDeliveryRate, c.PersonalCommissionPct} {
		if v.IsNegative() {
			return errs.NewValueIsInvalidErrorWithCause("compensation", fmt.Errorf("%s is negative", v))
		}
	}
	for _, bc := range c.BrandCommissions {
		if err := bc.BrandID.Validate(); err != nil {
			return err
		}
		if bc.Pct.IsNegative() {
			return errs.NewValueIsInvalidErrorWithCause("brand commission", fmt.Errorf("%s is negative", bc.Pct))
		}
	}
	c.BrandCommissions = append([]BrandCommission(nil), c.BrandCommissions...)
	u.compensation = c
	return nil
}

func (u *User) requireRole(role Role) error {
	if u.role != role {
		return errs.NewValueIsInvalidErrorWithCause("user role",
			fmt.Errorf("%s %s is not a %s", u.role, u.id, role))
	}
	return nil
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	u.name = name
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}

func normalizeZones(zones []string) []string {
	seen := make(map[string]struct{}, len(zones))
	out := make([]string, 0, len(zones))
	for _, z := range zones {
		n := normalizeZone(z)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
