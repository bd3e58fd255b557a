package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for each command or query.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Aggregates written through its
// repositories are turned into outbox messages on Commit.
type UnitOfWork interface {
	// Begin starts a READ COMMITTED transaction.
	Begin(ctx context.Context) error

	// BeginSnapshot starts a REPEATABLE READ transaction. Financial computations
	// use it so every read sees the same snapshot.
	BeginSnapshot(ctx context.Context) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	ParcelRepository() ParcelRepository
	UserRepository() UserRepository
	InvoiceRepository() InvoiceRepository
	SalaryPaymentRepository() SalaryPaymentRepository
	OutboxRepository() OutboxRepository
}
