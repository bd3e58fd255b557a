package commands

import (
	"errors"
	"strings"

	"parcelhub/internal/core/domain/model/invoice"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrMarkInvoicePaidCommandIsNotConstructed = errors.New(
	"MarkInvoicePaidCommand must be created via NewMarkInvoicePaidCommand constructor",
)

type MarkInvoicePaidCommand struct {
	actorID        kernel.UUID
	invoiceID      kernel.UUID
	transactionRef string

	guard guard.ConstructorGuard
}

func NewMarkInvoicePaidCommand(actorID, invoiceID kernel.UUID, transactionRef string) (MarkInvoicePaidCommand, error) {
	if err := errors.Join(actorID.Validate(), invoiceID.Validate()); err != nil {
		return MarkInvoicePaidCommand{}, err
	}
	transactionRef = strings.TrimSpace(transactionRef)
	if transactionRef == "" {
		return MarkInvoicePaidCommand{}, invoice.ErrTransactionRefRequired
	}
	return MarkInvoicePaidCommand{
		actorID:        actorID,
		invoiceID:      invoiceID,
		transactionRef: transactionRef,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c MarkInvoicePaidCommand) TransactionRef() string {
	return c.transactionRef
}

func (c MarkInvoicePaidCommand) Validate() error {
	return c.guard.Validate(ErrMarkInvoicePaidCommandIsNotConstructed)
}
