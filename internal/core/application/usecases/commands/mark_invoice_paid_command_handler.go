package commands

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/invoice"
	"parcelhub/internal/core/domain/model/user"
)

// MarkInvoicePaidCommandHandler records the payout of an invoice to its brand.
//
// Example:
//
//	handler := NewMarkInvoicePaidCommandHandler(uowFactory)
//	cmd, _ := NewMarkInvoicePaidCommand(adminID, invoiceID, "IBFT-0042")
//	inv, err := handler.Handle(ctx, cmd)
//	switch {
//	case errs.IsConflict(err):
//	    log.Println("invoice was already paid")
//	case err != nil:
//	    return err
//	default:
//	    log.Printf("invoice %s paid", inv.ID())
//	}
type MarkInvoicePaidCommandHandler struct {
	uowFactory FinanceUoWFactory
}

// NewMarkInvoicePaidCommandHandler creates a handler for invoice payments.
// Only admins may mark invoices paid.
func NewMarkInvoicePaidCommandHandler(uowFactory FinanceUoWFactory) MarkInvoicePaidCommandHandler {
	return MarkInvoicePaidCommandHandler{uowFactory: uowFactory}
}

// Handle moves a PENDING invoice to PAID. Paying twice is a ConflictError.
func (h MarkInvoicePaidCommandHandler) Handle(ctx context.Context, command MarkInvoicePaidCommand) (*invoice.Invoice, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	invoices := uow.InvoiceRepository()

	_, actor, err := resolveActor(ctx, uow.UserRepository(), command.actorID)
	if err != nil {
		return nil, err
	}
	if err = requireRole(actor, user.RoleAdmin); err != nil {
		return nil, err
	}

	inv, err := invoices.Get(ctx, command.invoiceID)
	if err != nil {
		return nil, err
	}
	if err = inv.MarkPaid(command.transactionRef, actor.ID, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err = invoices.Update(ctx, inv); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return inv, nil
}
