// Package parcelrepo persists parcel aggregates: the parcel row, its
// append-only history and the return items of exchange return legs.
package parcelrepo

import (
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParcelDTO is the parcels table row.
type ParcelDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TrackingNumber   string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	BrandID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Recipient        RecipientDTO    `gorm:"embedded;embeddedPrefix:recipient_"`
	PickupLocation   string          `gorm:"type:varchar(255);not null"`
	OrderRef         string          `gorm:"type:varchar(255)"`
	ItemDescription  string          `gorm:"type:text"`
	Instructions     string          `gorm:"type:text"`
	Status           string          `gorm:"type:varchar(32);not null;index"`
	CODAmount        decimal.Decimal `gorm:"column:cod_amount;type:numeric(14,4);not null"`
	DeliveryCharge   decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	Tax              decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	Weight           decimal.Decimal `gorm:"type:numeric(10,3);not null"`
	Zone             string          `gorm:"type:varchar(64)"`
	PickupDriverID   *uuid.UUID      `gorm:"type:uuid;index"`
	DeliveryDriverID *uuid.UUID      `gorm:"type:uuid;index"`
	IsCODReconciled  bool            `gorm:"column:is_cod_reconciled;not null;default:false"`
	InvoiceID        *uuid.UUID      `gorm:"type:uuid;index"`
	IsExchange       bool            `gorm:"not null;default:false"`
	LinkedParcelID   *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt        time.Time       `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt        time.Time       `gorm:"not null;index;autoUpdateTime:false"`
	Version          int             `gorm:"not null"`

	History     []HistoryDTO    `gorm:"foreignKey:ParcelID;constraint:OnDelete:CASCADE"`
	ReturnItems []ReturnItemDTO `gorm:"foreignKey:ParcelID;constraint:OnDelete:CASCADE"`
}

func (ParcelDTO) TableName() string {
	return "parcels"
}

type RecipientDTO struct {
	Name    string `gorm:"type:varchar(255);not null"`
	Phone   string `gorm:"type:varchar(32);not null"`
	Address string `gorm:"type:text;not null"`
	City    string `gorm:"type:varchar(128)"`
}

// HistoryDTO is one parcel_history row. Seq keeps events in append order when
// timestamps collide.
type HistoryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_parcel_history_seq"`
	Seq        int       `gorm:"not null;uniqueIndex:idx_parcel_history_seq"`
	Status     string    `gorm:"type:varchar(32);not null"`
	At         time.Time `gorm:"not null"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null"`
	ActorName  string    `gorm:"type:varchar(255);not null"`
	Notes      string    `gorm:"type:text"`
	ReasonCode string    `gorm:"type:varchar(64)"`
	Proof      string    `gorm:"type:text"`
}

func (HistoryDTO) TableName() string {
	return "parcel_history"
}

type ReturnItemDTO struct {
	ParcelID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position int       `gorm:"primaryKey;autoIncrement:false"`
	Name     string    `gorm:"type:varchar(255);not null"`
	Quantity int       `gorm:"not null"`
}

func (ReturnItemDTO) TableName() string {
	return "parcel_return_items"
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	id := p.ID().Bytes()
	r := p.Recipient()

	history := make([]HistoryDTO, 0, len(p.History()))
	for i, e := range p.History() {
		history = append(history, HistoryDTO{
			ID:         e.ID.Bytes(),
			ParcelID:   id,
			Seq:        i,
			Status:     e.Status.String(),
			At:         e.At,
			ActorID:    e.ActorID.Bytes(),
			ActorName:  e.ActorName,
			Notes:      e.Notes,
			ReasonCode: e.ReasonCode,
			Proof:      e.Proof,
		})
	}

	items := make([]ReturnItemDTO, 0, len(p.ReturnItems()))
	for i, it := range p.ReturnItems() {
		items = append(items, ReturnItemDTO{ParcelID: id, Position: i, Name: it.Name, Quantity: it.Quantity})
	}

	return ParcelDTO{
		ID:               id,
		TrackingNumber:   string(p.TrackingNumber()),
		BrandID:          p.BrandID().Bytes(),
		Recipient:        RecipientDTO{Name: r.Name, Phone: r.Phone, Address: r.Address, City: r.City},
		PickupLocation:   p.PickupLocation(),
		OrderRef:         p.OrderRef(),
		ItemDescription:  p.ItemDescription(),
		Instructions:     p.Instructions(),
		Status:           p.Status().String(),
		CODAmount:        p.CODAmount(),
		DeliveryCharge:   p.DeliveryCharge(),
		Tax:              p.Tax(),
		Weight:           p.Weight(),
		Zone:             p.Zone(),
		PickupDriverID:   rawID(p.PickupDriverID()),
		DeliveryDriverID: rawID(p.DeliveryDriverID()),
		IsCODReconciled:  p.IsCODReconciled(),
		InvoiceID:        rawID(p.InvoiceID()),
		IsExchange:       p.IsExchange(),
		LinkedParcelID:   rawID(p.LinkedParcelID()),
		CreatedAt:        p.CreatedAt(),
		UpdatedAt:        p.UpdatedAt(),
		Version:          p.Version(),
		History:          history,
		ReturnItems:      items,
	}
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	brandID, err := kernel.UUIDFromBytes(dto.BrandID[:])
	if err != nil {
		return nil, err
	}
	status, err := parcel.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	history := make([]parcel.HistoryEvent, 0, len(dto.History))
	for _, h := range dto.History {
		e, hErr := historyToDomain(h)
		if hErr != nil {
			return nil, hErr
		}
		history = append(history, e)
	}

	items := make([]parcel.ReturnItem, 0, len(dto.ReturnItems))
	for _, it := range dto.ReturnItems {
		items = append(items, parcel.ReturnItem{Name: it.Name, Quantity: it.Quantity})
	}

	pickupDriverID, err := domainID(dto.PickupDriverID)
	if err != nil {
		return nil, err
	}
	deliveryDriverID, err := domainID(dto.DeliveryDriverID)
	if err != nil {
		return nil, err
	}
	invoiceID, err := domainID(dto.InvoiceID)
	if err != nil {
		return nil, err
	}
	linkedID, err := domainID(dto.LinkedParcelID)
	if err != nil {
		return nil, err
	}

	return parcel.RestoreParcel(parcel.RestoreParams{
		ID:             id,
		TrackingNumber: parcel.TrackingNumber(dto.TrackingNumber),
		BrandID:        brandID,
		Recipient: parcel.Recipient{
			Name:    dto.Recipient.Name,
			Phone:   dto.Recipient.Phone,
			Address: dto.Recipient.Address,
			City:    dto.Recipient.City,
		},
		PickupLocation:   dto.PickupLocation,
		OrderRef:         dto.OrderRef,
		ItemDescription:  dto.ItemDescription,
		Instructions:     dto.Instructions,
		Status:           status,
		CODAmount:        dto.CODAmount,
		DeliveryCharge:   dto.DeliveryCharge,
		Tax:              dto.Tax,
		Weight:           dto.Weight,
		Zone:             dto.Zone,
		PickupDriverID:   pickupDriverID,
		DeliveryDriverID: deliveryDriverID,
		IsCODReconciled:  dto.IsCODReconciled,
		InvoiceID:        invoiceID,
		IsExchange:       dto.IsExchange,
		LinkedParcelID:   linkedID,
		ReturnItems:      items,
		History:          history,
		CreatedAt:        dto.CreatedAt.UTC(),
		UpdatedAt:        dto.UpdatedAt.UTC(),
		Version:          dto.Version,
	})
}

func historyToDomain(dto HistoryDTO) (parcel.HistoryEvent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return parcel.HistoryEvent{}, err
	}
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return parcel.HistoryEvent{}, err
	}
	status, err := parcel.ParseStatus(dto.Status)
	if err != nil {
		return parcel.HistoryEvent{}, err
	}
	return parcel.HistoryEvent{
		ID:         id,
		Status:     status,
		At:         dto.At.UTC(),
		ActorID:    actorID,
		ActorName:  dto.ActorName,
		Notes:      dto.Notes,
		ReasonCode: dto.ReasonCode,
		Proof:      dto.Proof,
	}, nil
}

func rawID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func domainID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
