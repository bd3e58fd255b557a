package commands

import (
	"context"
	"fmt"
	"time"

	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/pkg/errs"
)

// ReconcileCODCommandHandler runs the all-or-nothing cash match inside one
// snapshot transaction; either every selected parcel is flagged or none is.
type ReconcileCODCommandHandler struct {
	uowFactory FinanceUoWFactory
	reconciler services.CODReconciler
}

// NewReconcileCODCommandHandler creates a handler for cash settlements.
// Requires a FinanceUoWFactory so the parcels are read and flagged inside
// one snapshot transaction.
//
// Example:
//
//	handler := NewReconcileCODCommandHandler(uowFactory)
//	cmd, _ := NewReconcileCODCommand(adminID, driverID, parcelIDs, services.Settlement{
//	    Cash:      decimal.RequireFromString("3000"),
//	    Transfers: []services.Transfer{{Amount: decimal.RequireFromString("1500"), Reference: "TRX-9"}},
//	})
//	result, err := handler.Handle(ctx, cmd)
//	var mismatch *errs.AmountMismatchError
//	if errors.As(err, &mismatch) {
//	    log.Printf("expected %s, entered %s", mismatch.Expected, mismatch.Entered)
//	}
func NewReconcileCODCommandHandler(uowFactory FinanceUoWFactory) ReconcileCODCommandHandler {
	return ReconcileCODCommandHandler{uowFactory: uowFactory, reconciler: services.NewCODReconciler()}
}

// Handle checks that every parcel is the driver's, DELIVERED and unreconciled,
// then flags them all if the entered total matches.
func (h ReconcileCODCommandHandler) Handle(ctx context.Context, command ReconcileCODCommand) (services.ReconciliationResult, error) {
	if err := command.Validate(); err != nil {
		return services.ReconciliationResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.BeginSnapshot(ctx); err != nil {
		return services.ReconciliationResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	parcels := uow.ParcelRepository()

	_, actor, err := resolveActor(ctx, users, command.actorID)
	if err != nil {
		return services.ReconciliationResult{}, err
	}
	if err = requireRole(actor, user.RoleAdmin); err != nil {
		return services.ReconciliationResult{}, err
	}

	driver, err := users.Get(ctx, command.driverID)
	if err != nil {
		return services.ReconciliationResult{}, err
	}
	if driver.Role() != user.RoleDriver {
		return services.ReconciliationResult{}, errs.NewValueIsInvalidErrorWithCause("driver",
			fmt.Errorf("%s is a %s", driver.Name(), driver.Role()))
	}

	batch, err := parcels.GetMany(ctx, command.parcelIDs)
	if err != nil {
		return services.ReconciliationResult{}, err
	}

	result, err := h.reconciler.Reconcile(driver.ID(), batch, command.settlement, actor, time.Now().UTC())
	if err != nil {
		return services.ReconciliationResult{}, err
	}

	for _, p := range result.Parcels {
		if err = parcels.Update(ctx, p); err != nil {
			return services.ReconciliationResult{}, err
		}
	}
	if err = uow.Commit(ctx); err != nil {
		return services.ReconciliationResult{}, err
	}
	return result, nil
}
