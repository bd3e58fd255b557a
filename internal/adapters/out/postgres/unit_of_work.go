// Package postgres implements the unit of work over GORM.
//
// A unit of work owns at most one transaction. Repositories obtained from it run
// inside that transaction when one is open and on the plain connection otherwise.
// Every aggregate a repository writes is tracked; Commit turns the tracked
// aggregates into outbox_events rows in the same transaction, so the change feed
// never sees a change that was rolled back.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.ParcelRepository().Update(ctx, p); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"parcelhub/internal/adapters/out/postgres/invoicerepo"
	"parcelhub/internal/adapters/out/postgres/outboxrepo"
	"parcelhub/internal/adapters/out/postgres/parcelrepo"
	"parcelhub/internal/adapters/out/postgres/pgerrs"
	"parcelhub/internal/adapters/out/postgres/salaryrepo"
	"parcelhub/internal/adapters/out/postgres/userrepo"
	"parcelhub/internal/core/domain/model/invoice"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/salary"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/core/ports"

	"gorm.io/gorm"
)

// Event types written to the outbox.
const (
	EventParcelChanged         = "parcel.changed"
	EventParcelDeleted         = "parcel.deleted"
	EventInvoiceChanged        = "invoice.changed"
	EventSalaryPaymentRecorded = "salary_payment.recorded"
	EventUserChanged           = "user.changed"
)

// ChangeEvent is the JSON body of an outbox message.
type ChangeEvent struct {
	Type           string    `json:"type"`
	AggregateID    string    `json:"aggregate_id"`
	Status         string    `json:"status,omitempty"`
	TrackingNumber string    `json:"tracking_number,omitempty"`
	At             time.Time `json:"at"`
}

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// AutoMigrate creates or updates every table the repositories use.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userrepo.UserDTO{},
		&userrepo.DutyLogDTO{},
		&parcelrepo.ParcelDTO{},
		&parcelrepo.HistoryDTO{},
		&parcelrepo.ReturnItemDTO{},
		&invoicerepo.InvoiceDTO{},
		&invoicerepo.InvoiceParcelDTO{},
		&salaryrepo.SalaryPaymentDTO{},
		&outboxrepo.OutboxEventDTO{},
	)
}

// GormUnitOfWorkFactory hands out a fresh unit of work per operation.
type GormUnitOfWorkFactory struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, now: time.Now}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		now:               f.now,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork is not safe for concurrent use; each goroutine creates its own.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	now               func() time.Time
	trackedAggregates []trackedAggregate
}

// Begin opens a READ COMMITTED transaction. A second call while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	return uow.begin(ctx, nil)
}

// BeginSnapshot opens a REPEATABLE READ transaction.
func (uow *GormUnitOfWork) BeginSnapshot(ctx context.Context) error {
	return uow.begin(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
}

func (uow *GormUnitOfWork) begin(ctx context.Context, opts *sql.TxOptions) error {
	if uow.tx != nil {
		return nil
	}

	var tx *gorm.DB
	if opts == nil {
		tx = uow.db.WithContext(ctx).Begin()
	} else {
		tx = uow.db.WithContext(ctx).Begin(opts)
	}
	if tx.Error != nil {
		return pgerrs.Translate(tx.Error, "transaction", "")
	}
	uow.tx = tx
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit writes the outbox rows for tracked aggregates and commits.
// Serialization failures surface as ConflictError.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	messages, err := uow.outboxMessages()
	if err != nil {
		return err
	}
	if err := outboxrepo.NewGormOutboxRepository(uow.tx).Append(ctx, messages); err != nil {
		return err
	}

	err = uow.tx.Commit().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return pgerrs.Translate(err, "transaction", "")
}

func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) ParcelRepository() ports.ParcelRepository {
	return parcelrepo.NewGormParcelRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) InvoiceRepository() ports.InvoiceRepository {
	return invoicerepo.NewGormInvoiceRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) SalaryPaymentRepository() ports.SalaryPaymentRepository {
	return salaryrepo.NewGormSalaryPaymentRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate is called by repositories after a successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// outboxMessages keeps one message per aggregate, built from its last tracked state.
func (uow *GormUnitOfWork) outboxMessages() ([]ports.OutboxMessage, error) {
	at := uow.now().UTC()
	last := make(map[string]int, len(uow.trackedAggregates))
	events := make([]ChangeEvent, 0, len(uow.trackedAggregates))
	kinds := make([]string, 0, len(uow.trackedAggregates))

	for _, tracked := range uow.trackedAggregates {
		event, kind, ok := describe(tracked)
		if !ok {
			continue
		}
		event.At = at
		key := kind + "/" + event.AggregateID
		if i, seen := last[key]; seen {
			events[i] = event
			continue
		}
		last[key] = len(events)
		events = append(events, event)
		kinds = append(kinds, kind)
	}

	messages := make([]ports.OutboxMessage, 0, len(events))
	for i, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return nil, err
		}
		messages = append(messages, ports.OutboxMessage{
			AggregateType: kinds[i],
			AggregateID:   event.AggregateID,
			EventType:     event.Type,
			Payload:       payload,
			OccurredAt:    at,
		})
	}
	return messages, nil
}

func describe(tracked trackedAggregate) (ChangeEvent, string, bool) {
	id := tracked.ID.String()
	switch a := tracked.Aggregate.(type) {
	case *parcel.Parcel:
		return ChangeEvent{
			Type:           EventParcelChanged,
			AggregateID:    id,
			Status:         a.Status().String(),
			TrackingNumber: a.TrackingNumber().String(),
		}, "parcel", true
	case parcelrepo.Deleted:
		return ChangeEvent{
			Type:           EventParcelDeleted,
			AggregateID:    id,
			Status:         a.Parcel.Status().String(),
			TrackingNumber: a.Parcel.TrackingNumber().String(),
		}, "parcel", true
	case *invoice.Invoice:
		return ChangeEvent{Type: EventInvoiceChanged, AggregateID: id, Status: a.Status().String()}, "invoice", true
	case *salary.Payment:
		return ChangeEvent{Type: EventSalaryPaymentRecorded, AggregateID: id}, "salary_payment", true
	case *user.User:
		return ChangeEvent{Type: EventUserChanged, AggregateID: id, Status: string(a.Status())}, "user", true
	default:
		return ChangeEvent{}, "", false
	}
}
