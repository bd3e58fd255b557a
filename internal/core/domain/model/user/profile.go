package user

import (
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// PickupLocation is a named address a brand hands parcels over at.
type PickupLocation struct {
	Name    string
	Phone   string
	Address string
	City    string
}

// BrandCommission is a sales manager's percentage on one managed brand.
type BrandCommission struct {
	BrandID kernel.UUID
	Pct     decimal.Decimal
}

// Compensation holds the pay parameters relevant to the user's role.
type Compensation struct {
	BaseSalary            decimal.Decimal
	PerPickupRate         decimal.Decimal
	PerDeliveryRate       decimal.Decimal
	PersonalCommissionPct decimal.Decimal
	BrandCommissions      []BrandCommission
}

// DutyLogEntry records a driver going on or off duty.
type DutyLogEntry struct {
	DriverID kernel.UUID
	OnDuty   bool
	At       time.Time
}

func normalizeZone(zone string) string {
	return strings.ToUpper(strings.TrimSpace(zone))
}
