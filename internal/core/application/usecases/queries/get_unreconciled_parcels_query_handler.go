package queries

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetUnreconciledParcelsQueryHandler reads straight from the parcels table.
// Admins may read any driver; a driver may read only their own list.
type GetUnreconciledParcelsQueryHandler struct {
	db *gorm.DB
}

func NewGetUnreconciledParcelsQueryHandler(db *gorm.DB) GetUnreconciledParcelsQueryHandler {
	return GetUnreconciledParcelsQueryHandler{db: db}
}

func (h GetUnreconciledParcelsQueryHandler) Handle(
	ctx context.Context,
	query GetUnreconciledParcelsQuery,
) (GetUnreconciledParcelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetUnreconciledParcelsQueryResponse{}, err
	}

	actorRole, err := roleOf(ctx, h.db, query.actorID)
	if err != nil {
		return GetUnreconciledParcelsQueryResponse{}, err
	}
	if actorRole != user.RoleAdmin && !query.actorID.IsEqual(query.driverID) {
		return GetUnreconciledParcelsQueryResponse{}, forbidden(actorRole)
	}
	driverRole, err := roleOf(ctx, h.db, query.driverID)
	if err != nil {
		return GetUnreconciledParcelsQueryResponse{}, err
	}
	if driverRole != user.RoleDriver {
		return GetUnreconciledParcelsQueryResponse{}, errs.NewObjectNotFoundError("driver", query.driverID.String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_number,
			brand_id,
			recipient_name,
			recipient_city,
			cod_amount,
			updated_at
		FROM parcels
		WHERE delivery_driver_id = ?
			AND status = 'DELIVERED'
			AND is_cod_reconciled = false
		ORDER BY updated_at, id
	`, query.driverID.Bytes()).Rows()
	if err != nil {
		return GetUnreconciledParcelsQueryResponse{}, errs.NewUpstreamError("list unreconciled parcels", err)
	}
	defer rows.Close()

	response := GetUnreconciledParcelsQueryResponse{
		DriverID: query.driverID,
		Parcels:  make([]UnreconciledParcel, 0),
		TotalCOD: decimal.Zero,
	}
	for rows.Next() {
		var p UnreconciledParcel
		var id, brandID uuid.UUID

		if err = rows.Scan(&id, &p.TrackingNumber, &brandID, &p.RecipientName, &p.City, &p.CODAmount, &p.DeliveredAt); err != nil {
			return GetUnreconciledParcelsQueryResponse{}, errs.NewUpstreamError("list unreconciled parcels", err)
		}
		if p.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return GetUnreconciledParcelsQueryResponse{}, err
		}
		if p.BrandID, err = kernel.UUIDFromBytes(brandID[:]); err != nil {
			return GetUnreconciledParcelsQueryResponse{}, err
		}
		p.DeliveredAt = p.DeliveredAt.UTC()

		response.Parcels = append(response.Parcels, p)
		response.TotalCOD = response.TotalCOD.Add(p.CODAmount)
	}
	if err = rows.Err(); err != nil {
		return GetUnreconciledParcelsQueryResponse{}, errs.NewUpstreamError("list unreconciled parcels", err)
	}

	return response, nil
}
