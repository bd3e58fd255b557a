package queries

import (
	"context"
	"errors"

	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"
)

// ComputeCommissionQueryHandler runs the same computation as
// RecordSalaryPayment inside a snapshot and discards the transaction.
type ComputeCommissionQueryHandler struct {
	readers    SnapshotReaderFactory
	calculator services.CommissionCalculator
}

func NewComputeCommissionQueryHandler(readers SnapshotReaderFactory) ComputeCommissionQueryHandler {
	return ComputeCommissionQueryHandler{readers: readers, calculator: services.NewCommissionCalculator()}
}

func (h ComputeCommissionQueryHandler) Handle(ctx context.Context, query ComputeCommissionQuery) (ComputeCommissionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ComputeCommissionQueryResponse{}, err
	}

	uow := h.readers.Create()
	if err := uow.BeginSnapshot(ctx); err != nil {
		return ComputeCommissionQueryResponse{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	if err := adminOrSelf(ctx, users, query.actorID, query.userID); err != nil {
		return ComputeCommissionQueryResponse{}, err
	}
	payee, err := users.Get(ctx, query.userID)
	if err != nil {
		return ComputeCommissionQueryResponse{}, err
	}

	from, to := query.period.Start, query.period.End
	inWindow, err := uow.ParcelRepository().Find(ctx, ports.ParcelFilter{CreatedFrom: &from, CreatedTo: &to})
	if err != nil {
		return ComputeCommissionQueryResponse{}, err
	}

	statement, err := h.calculator.Compute(payee, query.period, inWindow)
	if err != nil {
		return ComputeCommissionQueryResponse{}, err
	}

	paid := true
	if _, err = uow.SalaryPaymentRepository().Find(ctx, query.userID, query.period); err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return ComputeCommissionQueryResponse{}, err
		}
		paid = false
	}

	return ComputeCommissionQueryResponse{
		Statement:   statement,
		Total:       statement.Total(),
		AlreadyPaid: paid,
	}, nil
}
