// Package commands contains the operations that change system state. Each
// command is validated on construction and handled inside one unit of work:
// load, apply domain rules, persist, commit.
package commands

import (
	"context"

	"parcelhub/internal/core/ports"
)

// Unit of work views used by the handlers. Each handler depends on the
// narrowest one it needs so tests mock only what is used.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// SnapshotTxManager can open a REPEATABLE READ transaction for financial work.
	SnapshotTxManager interface {
		TxManager
		BeginSnapshot(ctx context.Context) error
	}

	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	InvoiceRepoFactory interface {
		InvoiceRepository() ports.InvoiceRepository
	}

	SalaryPaymentRepoFactory interface {
		SalaryPaymentRepository() ports.SalaryPaymentRepository
	}

	// ParcelUoW serves lifecycle commands: parcels plus the users acting on them.
	ParcelUoW interface {
		TxManager
		ParcelRepoFactory
		UserRepoFactory
	}

	ParcelUoWFactory interface {
		Create() ParcelUoW
	}

	// UserUoW serves driver profile updates.
	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	UserUoWFactory interface {
		Create() UserUoW
	}

	// FinanceUoW serves reconciliation, invoicing and salary commands.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.BeginSnapshot(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   parcels, err := uow.ParcelRepository().GetMany(ctx, ids)
	//   // ... compute and persist
	//
	//   err = uow.Commit(ctx)
	FinanceUoW interface {
		SnapshotTxManager
		ParcelRepoFactory
		UserRepoFactory
		InvoiceRepoFactory
		SalaryPaymentRepoFactory
	}

	FinanceUoWFactory interface {
		Create() FinanceUoW
	}
)
