package queries

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetUnreconciledCODSummaryQueryHandler struct {
	db *gorm.DB
}

func NewGetUnreconciledCODSummaryQueryHandler(db *gorm.DB) GetUnreconciledCODSummaryQueryHandler {
	return GetUnreconciledCODSummaryQueryHandler{db: db}
}

// Handle returns one row per driver holding cash, largest balance first.
// Drivers with nothing outstanding are omitted.
func (h GetUnreconciledCODSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetUnreconciledCODSummaryQuery,
) ([]DriverCODBalance, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			u.id,
			u.name,
			COUNT(p.id),
			COALESCE(SUM(p.cod_amount), 0)
		FROM parcels p
		JOIN users u ON u.id = p.delivery_driver_id
		WHERE p.status = 'DELIVERED'
			AND p.is_cod_reconciled = false
		GROUP BY u.id, u.name
		HAVING SUM(p.cod_amount) > 0
		ORDER BY 4 DESC, u.name
	`).Rows()
	if err != nil {
		return nil, errs.NewUpstreamError("summarize unreconciled cod", err)
	}
	defer rows.Close()

	balances := make([]DriverCODBalance, 0)
	for rows.Next() {
		var b DriverCODBalance
		var id uuid.UUID

		if err = rows.Scan(&id, &b.DriverName, &b.Parcels, &b.TotalCOD); err != nil {
			return nil, errs.NewUpstreamError("summarize unreconciled cod", err)
		}
		if b.DriverID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	if err = rows.Err(); err != nil {
		return nil, errs.NewUpstreamError("summarize unreconciled cod", err)
	}

	return balances, nil
}
