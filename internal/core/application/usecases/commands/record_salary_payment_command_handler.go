package commands

import (
	"context"
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/salary"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"
)

// RecordSalaryPaymentCommandHandler computes the statement from one snapshot
// and stores the payment. The (user, period) unique key backs the
// already-paid check against concurrent payers.
type RecordSalaryPaymentCommandHandler struct {
	uowFactory FinanceUoWFactory
	calculator services.CommissionCalculator
}

// NewRecordSalaryPaymentCommandHandler creates a handler for salary payouts.
func NewRecordSalaryPaymentCommandHandler(uowFactory FinanceUoWFactory) RecordSalaryPaymentCommandHandler {
	return RecordSalaryPaymentCommandHandler{uowFactory: uowFactory, calculator: services.NewCommissionCalculator()}
}

// Handle computes the period statement and records it as paid. A second
// payment for the same user and period is a ConflictError.
func (h RecordSalaryPaymentCommandHandler) Handle(ctx context.Context, command RecordSalaryPaymentCommand) (*salary.Payment, salary.Statement, error) {
	if err := command.Validate(); err != nil {
		return nil, salary.Statement{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.BeginSnapshot(ctx); err != nil {
		return nil, salary.Statement{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	payments := uow.SalaryPaymentRepository()

	_, actor, err := resolveActor(ctx, users, command.actorID)
	if err != nil {
		return nil, salary.Statement{}, err
	}
	if err = requireRole(actor, user.RoleAdmin); err != nil {
		return nil, salary.Statement{}, err
	}

	existing, err := payments.Find(ctx, command.userID, command.period)
	switch {
	case err == nil:
		return nil, salary.Statement{}, errs.NewConflictError("salary payment", existing.ID().String(),
			"period "+command.period.String()+" already paid")
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, salary.Statement{}, err
	}

	payee, err := users.Get(ctx, command.userID)
	if err != nil {
		return nil, salary.Statement{}, err
	}

	from, to := command.period.Start, command.period.End
	inWindow, err := uow.ParcelRepository().Find(ctx, ports.ParcelFilter{CreatedFrom: &from, CreatedTo: &to})
	if err != nil {
		return nil, salary.Statement{}, err
	}

	statement, err := h.calculator.Compute(payee, command.period, inWindow)
	if err != nil {
		return nil, salary.Statement{}, err
	}

	payment, err := salary.NewPayment(kernel.NewUUID(), statement, actor.ID, time.Now().UTC())
	if err != nil {
		return nil, salary.Statement{}, err
	}
	if err = payments.Add(ctx, payment); err != nil {
		return nil, salary.Statement{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, salary.Statement{}, err
	}
	return payment, statement, nil
}
