package cmd

import (
	httpin "parcelhub/internal/adapters/in/http"
	"parcelhub/internal/adapters/out/postgres"
	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/jobs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	logger     *zap.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, publisher ports.EventPublisher, logger *zap.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		logger:     logger,
	}
}

func (c *CompositionRoot) parcelUoWFactory() commands.ParcelUoWFactory {
	return FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) financeUoWFactory() commands.FinanceUoWFactory {
	return FuncFinanceUoWFactory(func() commands.FinanceUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) snapshotReaderFactory() queries.SnapshotReaderFactory {
	return FuncSnapshotReaderFactory(func() queries.SnapshotReader {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateBookParcelCommandHandler() commands.BookParcelCommandHandler {
	return commands.NewBookParcelCommandHandler(c.parcelUoWFactory(), nil)
}

func (c *CompositionRoot) CreateTransitionParcelCommandHandler() commands.TransitionParcelCommandHandler {
	return commands.NewTransitionParcelCommandHandler(c.parcelUoWFactory())
}

func (c *CompositionRoot) CreateBulkTransitionCommandHandler() commands.BulkTransitionCommandHandler {
	return commands.NewBulkTransitionCommandHandler(c.parcelUoWFactory())
}

func (c *CompositionRoot) CreateAddRemarkCommandHandler() commands.AddRemarkCommandHandler {
	return commands.NewAddRemarkCommandHandler(c.parcelUoWFactory())
}

func (c *CompositionRoot) CreateDeleteParcelCommandHandler() commands.DeleteParcelCommandHandler {
	return commands.NewDeleteParcelCommandHandler(c.parcelUoWFactory())
}

func (c *CompositionRoot) CreateCreateExchangeCommandHandler() commands.CreateExchangeCommandHandler {
	return commands.NewCreateExchangeCommandHandler(c.parcelUoWFactory(), nil)
}

func (c *CompositionRoot) CreateCompleteExchangeCommandHandler() commands.CompleteExchangeCommandHandler {
	return commands.NewCompleteExchangeCommandHandler(c.parcelUoWFactory())
}

func (c *CompositionRoot) CreateReconcileCODCommandHandler() commands.ReconcileCODCommandHandler {
	return commands.NewReconcileCODCommandHandler(c.financeUoWFactory())
}

func (c *CompositionRoot) CreateGenerateInvoiceCommandHandler() commands.GenerateInvoiceCommandHandler {
	return commands.NewGenerateInvoiceCommandHandler(c.financeUoWFactory())
}

func (c *CompositionRoot) CreateMarkInvoicePaidCommandHandler() commands.MarkInvoicePaidCommandHandler {
	return commands.NewMarkInvoicePaidCommandHandler(c.financeUoWFactory())
}

func (c *CompositionRoot) CreateRecordSalaryPaymentCommandHandler() commands.RecordSalaryPaymentCommandHandler {
	return commands.NewRecordSalaryPaymentCommandHandler(c.financeUoWFactory())
}

func (c *CompositionRoot) CreateSetDriverDutyCommandHandler() commands.SetDriverDutyCommandHandler {
	return commands.NewSetDriverDutyCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateUpdateDriverLocationCommandHandler() commands.UpdateDriverLocationCommandHandler {
	return commands.NewUpdateDriverLocationCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateGetUnreconciledParcelsQueryHandler() queries.GetUnreconciledParcelsQueryHandler {
	return queries.NewGetUnreconciledParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnreconciledCODSummaryQueryHandler() queries.GetUnreconciledCODSummaryQueryHandler {
	return queries.NewGetUnreconciledCODSummaryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingPayoutsQueryHandler() queries.GetPendingPayoutsQueryHandler {
	return queries.NewGetPendingPayoutsQueryHandler(c.snapshotReaderFactory())
}

func (c *CompositionRoot) CreateComputeCommissionQueryHandler() queries.ComputeCommissionQueryHandler {
	return queries.NewComputeCommissionQueryHandler(c.snapshotReaderFactory())
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		BookParcel:          c.CreateBookParcelCommandHandler(),
		DeleteParcel:        c.CreateDeleteParcelCommandHandler(),
		TransitionParcel:    c.CreateTransitionParcelCommandHandler(),
		BulkTransition:      c.CreateBulkTransitionCommandHandler(),
		AddRemark:           c.CreateAddRemarkCommandHandler(),
		CreateExchange:      c.CreateCreateExchangeCommandHandler(),
		CompleteExchange:    c.CreateCompleteExchangeCommandHandler(),
		ReconcileCOD:        c.CreateReconcileCODCommandHandler(),
		UpdateLocation:      c.CreateUpdateDriverLocationCommandHandler(),
		SetDuty:             c.CreateSetDriverDutyCommandHandler(),
		GenerateInvoice:     c.CreateGenerateInvoiceCommandHandler(),
		MarkInvoicePaid:     c.CreateMarkInvoicePaidCommandHandler(),
		RecordSalaryPayment: c.CreateRecordSalaryPaymentCommandHandler(),
		UnreconciledParcels: c.CreateGetUnreconciledParcelsQueryHandler(),
		PendingPayouts:      c.CreateGetPendingPayoutsQueryHandler(),
		ComputeCommission:   c.CreateComputeCommissionQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	var outbox jobs.OutboxUoWFactory = FuncOutboxUoWFactory(func() jobs.OutboxUoW {
		return c.uowFactory.Create()
	})
	relay := jobs.NewOutboxRelayJob(outbox, c.publisher, c.logger)
	monitor := jobs.NewUnreconciledCODMonitorJob(c.CreateGetUnreconciledCODSummaryQueryHandler(), c.logger)
	return jobs.NewJobManager(relay, monitor, jobs.Schedules{
		OutboxRelay: c.config.OutboxRelaySchedule,
		CODMonitor:  c.config.CODMonitorSchedule,
	}, c.logger)
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncFinanceUoWFactory func() commands.FinanceUoW

func (f FuncFinanceUoWFactory) Create() commands.FinanceUoW {
	return f()
}

type FuncSnapshotReaderFactory func() queries.SnapshotReader

func (f FuncSnapshotReaderFactory) Create() queries.SnapshotReader {
	return f()
}

type FuncOutboxUoWFactory func() jobs.OutboxUoW

func (f FuncOutboxUoWFactory) Create() jobs.OutboxUoW {
	return f()
}
