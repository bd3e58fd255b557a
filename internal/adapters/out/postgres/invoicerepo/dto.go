// Package invoicerepo persists brand payout invoices and the parcels each covers.
package invoicerepo

import (
	"time"

	"parcelhub/internal/core/domain/model/invoice"
	"parcelhub/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InvoiceDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BrandID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	TotalCOD       decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	TotalCharges   decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	TotalTax       decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	Status         string          `gorm:"type:varchar(16);not null;index"`
	TransactionRef string          `gorm:"type:varchar(255)"`
	CreatedBy      uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt      time.Time       `gorm:"not null;autoCreateTime:false"`
	PaidBy         *uuid.UUID      `gorm:"type:uuid"`
	PaidAt         *time.Time

	Parcels []InvoiceParcelDTO `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

func (InvoiceDTO) TableName() string {
	return "invoices"
}

// InvoiceParcelDTO links a parcel to the single invoice that covers it.
type InvoiceParcelDTO struct {
	InvoiceID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID  uuid.UUID `gorm:"type:uuid;primaryKey;uniqueIndex"`
	Position  int       `gorm:"not null"`
}

func (InvoiceParcelDTO) TableName() string {
	return "invoice_parcels"
}

func fromDomain(inv *invoice.Invoice) InvoiceDTO {
	id := inv.ID().Bytes()
	parcels := make([]InvoiceParcelDTO, 0, len(inv.ParcelIDs()))
	for i, pid := range inv.ParcelIDs() {
		parcels = append(parcels, InvoiceParcelDTO{InvoiceID: id, ParcelID: pid.Bytes(), Position: i})
	}

	var paidBy *uuid.UUID
	if inv.PaidBy() != nil {
		raw := inv.PaidBy().Bytes()
		paidBy = &raw
	}

	totals := inv.Totals()
	return InvoiceDTO{
		ID:             id,
		BrandID:        inv.BrandID().Bytes(),
		TotalCOD:       totals.COD,
		TotalCharges:   totals.Charges,
		TotalTax:       totals.Tax,
		Status:         string(inv.Status()),
		TransactionRef: inv.TransactionRef(),
		CreatedBy:      inv.CreatedBy().Bytes(),
		CreatedAt:      inv.CreatedAt(),
		PaidBy:         paidBy,
		PaidAt:         inv.PaidAt(),
		Parcels:        parcels,
	}
}

func toDomain(dto InvoiceDTO) (*invoice.Invoice, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	brandID, err := kernel.UUIDFromBytes(dto.BrandID[:])
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	parcelIDs := make([]kernel.UUID, 0, len(dto.Parcels))
	for _, p := range dto.Parcels {
		pid, pErr := kernel.UUIDFromBytes(p.ParcelID[:])
		if pErr != nil {
			return nil, pErr
		}
		parcelIDs = append(parcelIDs, pid)
	}

	var paidBy *kernel.UUID
	if dto.PaidBy != nil {
		pb, pbErr := kernel.UUIDFromBytes((*dto.PaidBy)[:])
		if pbErr != nil {
			return nil, pbErr
		}
		paidBy = &pb
	}

	var paidAt *time.Time
	if dto.PaidAt != nil {
		at := dto.PaidAt.UTC()
		paidAt = &at
	}

	return invoice.RestoreInvoice(invoice.RestoreParams{
		ID:        id,
		BrandID:   brandID,
		ParcelIDs: parcelIDs,
		Totals: invoice.Totals{
			COD:     dto.TotalCOD,
			Charges: dto.TotalCharges,
			Tax:     dto.TotalTax,
		},
		Status:         invoice.Status(dto.Status),
		TransactionRef: dto.TransactionRef,
		CreatedBy:      createdBy,
		CreatedAt:      dto.CreatedAt.UTC(),
		PaidBy:         paidBy,
		PaidAt:         paidAt,
	})
}
