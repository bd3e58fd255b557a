// Package userrepo persists users with their role profile and the driver duty log.
package userrepo

import (
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/pricing"
	"parcelhub/internal/core/domain/model/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserDTO is the users table row. Profile parts that are only read whole are
// stored as JSON columns.
type UserDTO struct {
	ID              uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Name            string              `gorm:"type:varchar(255);not null"`
	Role            string              `gorm:"type:varchar(32);not null;index"`
	Status          string              `gorm:"type:varchar(16);not null"`
	PickupLocations []PickupLocationDTO `gorm:"type:jsonb;serializer:json"`
	RateCard        *RateCardDTO        `gorm:"type:jsonb;serializer:json"`
	Zones           []string            `gorm:"type:jsonb;serializer:json"`
	OnDuty          bool                `gorm:"not null;default:false"`
	Compensation    CompensationDTO     `gorm:"type:jsonb;serializer:json"`
	Location        LocationDTO         `gorm:"embedded;embeddedPrefix:location_"`
}

func (UserDTO) TableName() string {
	return "users"
}

// LocationDTO is the last reported driver position.
type LocationDTO struct {
	Lat    *float64
	Lng    *float64
	SeenAt *time.Time
}

type PickupLocationDTO struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
}

type TierDTO struct {
	MaxWeight decimal.Decimal `json:"max_weight"`
	Charge    decimal.Decimal `json:"charge"`
}

type RateCardDTO struct {
	Tiers            []TierDTO       `json:"tiers"`
	FuelSurchargePct decimal.Decimal `json:"fuel_surcharge_pct"`
}

type BrandCommissionDTO struct {
	BrandID string          `json:"brand_id"`
	Pct     decimal.Decimal `json:"pct"`
}

type CompensationDTO struct {
	BaseSalary            decimal.Decimal      `json:"base_salary"`
	PerPickupRate         decimal.Decimal      `json:"per_pickup_rate"`
	PerDeliveryRate       decimal.Decimal      `json:"per_delivery_rate"`
	PersonalCommissionPct decimal.Decimal      `json:"personal_commission_pct"`
	BrandCommissions      []BrandCommissionDTO `json:"brand_commissions"`
}

// DutyLogDTO is one driver_duty_log row.
type DutyLogDTO struct {
	ID       uint      `gorm:"primaryKey"`
	DriverID uuid.UUID `gorm:"type:uuid;not null;index"`
	OnDuty   bool      `gorm:"not null"`
	At       time.Time `gorm:"not null"`
}

func (DutyLogDTO) TableName() string {
	return "driver_duty_log"
}

func fromDomain(u *user.User) UserDTO {
	locations := make([]PickupLocationDTO, 0, len(u.PickupLocations()))
	for _, l := range u.PickupLocations() {
		locations = append(locations, PickupLocationDTO{Name: l.Name, Phone: l.Phone, Address: l.Address, City: l.City})
	}

	var card *RateCardDTO
	if rc := u.RateCard(); rc != nil {
		card = &RateCardDTO{FuelSurchargePct: rc.FuelSurchargePct()}
		for _, t := range rc.Tiers() {
			card.Tiers = append(card.Tiers, TierDTO{MaxWeight: t.MaxWeight, Charge: t.Charge})
		}
	}

	comp := u.Compensation()
	commissions := make([]BrandCommissionDTO, 0, len(comp.BrandCommissions))
	for _, bc := range comp.BrandCommissions {
		commissions = append(commissions, BrandCommissionDTO{BrandID: bc.BrandID.String(), Pct: bc.Pct})
	}

	var loc LocationDTO
	if p := u.Location(); p != nil {
		lat, lng := p.Lat(), p.Lng()
		loc = LocationDTO{Lat: &lat, Lng: &lng}
	}

	return UserDTO{
		ID:              u.ID().Bytes(),
		Name:            u.Name(),
		Role:            u.Role().String(),
		Status:          string(u.Status()),
		PickupLocations: locations,
		RateCard:        card,
		Zones:           u.Zones(),
		OnDuty:          u.OnDuty(),
		Compensation: CompensationDTO{
			BaseSalary:            comp.BaseSalary,
			PerPickupRate:         comp.PerPickupRate,
			PerDeliveryRate:       comp.PerDeliveryRate,
			PersonalCommissionPct: comp.PersonalCommissionPct,
			BrandCommissions:      commissions,
		},
		Location: loc,
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	locations := make([]user.PickupLocation, 0, len(dto.PickupLocations))
	for _, l := range dto.PickupLocations {
		locations = append(locations, user.PickupLocation{Name: l.Name, Phone: l.Phone, Address: l.Address, City: l.City})
	}

	var card *pricing.RateCard
	if dto.RateCard != nil {
		tiers := make([]pricing.Tier, 0, len(dto.RateCard.Tiers))
		for _, t := range dto.RateCard.Tiers {
			tiers = append(tiers, pricing.Tier{MaxWeight: t.MaxWeight, Charge: t.Charge})
		}
		rc, rcErr := pricing.NewRateCard(tiers, dto.RateCard.FuelSurchargePct)
		if rcErr != nil {
			return nil, rcErr
		}
		card = &rc
	}

	commissions := make([]user.BrandCommission, 0, len(dto.Compensation.BrandCommissions))
	for _, bc := range dto.Compensation.BrandCommissions {
		brandID, idErr := kernel.UUIDFromString(bc.BrandID)
		if idErr != nil {
			return nil, idErr
		}
		commissions = append(commissions, user.BrandCommission{BrandID: brandID, Pct: bc.Pct})
	}

	var location *kernel.GeoPoint
	if dto.Location.Lat != nil && dto.Location.Lng != nil {
		p, locErr := kernel.NewGeoPoint(*dto.Location.Lat, *dto.Location.Lng)
		if locErr != nil {
			return nil, locErr
		}
		location = &p
	}

	return user.RestoreUser(user.RestoreParams{
		ID:              id,
		Name:            dto.Name,
		Role:            user.Role(dto.Role),
		Status:          user.Status(dto.Status),
		PickupLocations: locations,
		RateCard:        card,
		Zones:           dto.Zones,
		OnDuty:          dto.OnDuty,
		Location:        location,
		Compensation: user.Compensation{
			BaseSalary:            dto.Compensation.BaseSalary,
			PerPickupRate:         dto.Compensation.PerPickupRate,
			PerDeliveryRate:       dto.Compensation.PerDeliveryRate,
			PersonalCommissionPct: dto.Compensation.PersonalCommissionPct,
			BrandCommissions:      commissions,
		},
	})
}
