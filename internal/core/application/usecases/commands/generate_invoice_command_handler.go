package commands

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/invoice"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/core/domain/services"
)

// GenerateInvoiceCommandHandler stores the invoice and the invoice id stamped on
// every included parcel in one snapshot transaction. The parcels' version check
// makes a concurrent second invoice over the same parcel fail.
type GenerateInvoiceCommandHandler struct {
	uowFactory FinanceUoWFactory
	calculator services.PayoutCalculator
}

// NewGenerateInvoiceCommandHandler creates an invoicing handler.
func NewGenerateInvoiceCommandHandler(uowFactory FinanceUoWFactory) GenerateInvoiceCommandHandler {
	return GenerateInvoiceCommandHandler{uowFactory: uowFactory, calculator: services.NewPayoutCalculator()}
}

// Handle invoices the listed parcels of one brand. Every parcel must be
// DELIVERED, reconciled and not yet invoiced.
//
// Example:
//
//	handler := NewGenerateInvoiceCommandHandler(uowFactory)
//	cmd, _ := NewGenerateInvoiceCommand(adminID, brandID, parcelIDs)
//	inv, err := handler.Handle(ctx, cmd)
//	if errs.IsConflict(err) {
//	    log.Println("a parcel was invoiced concurrently")
//	}
//	log.Printf("net payout %s", inv.Totals().NetPayout())
func (h GenerateInvoiceCommandHandler) Handle(ctx context.Context, command GenerateInvoiceCommand) (*invoice.Invoice, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.BeginSnapshot(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcels := uow.ParcelRepository()

	_, actor, err := resolveActor(ctx, uow.UserRepository(), command.actorID)
	if err != nil {
		return nil, err
	}
	if err = requireRole(actor, user.RoleAdmin); err != nil {
		return nil, err
	}

	batch, err := parcels.GetMany(ctx, command.parcelIDs)
	if err != nil {
		return nil, err
	}

	inv, err := h.calculator.Generate(kernel.NewUUID(), command.brandID, batch, actor, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = uow.InvoiceRepository().Add(ctx, inv); err != nil {
		return nil, err
	}
	for _, p := range batch {
		if err = parcels.Update(ctx, p); err != nil {
			return nil, err
		}
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return inv, nil
}
