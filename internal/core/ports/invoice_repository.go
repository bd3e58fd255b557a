package ports

import (
	"context"

	"parcelhub/internal/core/domain/model/invoice"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/salary"
)

// InvoiceRepository persists brand payout invoices.
type InvoiceRepository interface {
	Add(ctx context.Context, aggregate *invoice.Invoice) error
	// Update persists the payment of a PENDING invoice. Paying an invoice that
	// is already PAID in the store yields a ConflictError.
	Update(ctx context.Context, aggregate *invoice.Invoice) error
	Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error)
}

// SalaryPaymentRepository persists salary payments, at most one per (user, period).
type SalaryPaymentRepository interface {
	// Add yields a ConflictError when the period is already paid.
	Add(ctx context.Context, payment *salary.Payment) error
	// Find returns ObjectNotFoundError when the period is unpaid.
	Find(ctx context.Context, userID kernel.UUID, period salary.Period) (*salary.Payment, error)
}
