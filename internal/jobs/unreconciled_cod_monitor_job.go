package jobs

import (
	"context"

	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type codSummaryHandler interface {
	Handle(ctx context.Context, query queries.GetUnreconciledCODSummaryQuery) ([]queries.DriverCODBalance, error)
}

// UnreconciledCODMonitorJob reports cash that drivers collected but have not
// handed over yet.
type UnreconciledCODMonitorJob struct {
	handler codSummaryHandler
	cron    *cron.Cron
	logger  *zap.Logger
}

func NewUnreconciledCODMonitorJob(handler codSummaryHandler, logger *zap.Logger) *UnreconciledCODMonitorJob {
	logger = logger.With(zap.String("component", "unreconciled_cod_monitor_job"))
	return &UnreconciledCODMonitorJob{
		handler: handler,
		cron:    newCron(logger),
		logger:  logger,
	}
}

func (j *UnreconciledCODMonitorJob) Start(spec string) error {
	_, err := j.cron.AddFunc(spec, tick(func(ctx context.Context) {
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.Error("Unreconciled COD monitor failed", zap.Error(err))
		}
	}))
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Unreconciled COD monitor job started", zap.String("schedule", spec))
	return nil
}

func (j *UnreconciledCODMonitorJob) Stop() {
	stopCron(j.cron)
	j.logger.Info("Unreconciled COD monitor job stopped")
}

// RunOnce refreshes the gauge. Drivers who settled since the last run drop out
// of it.
func (j *UnreconciledCODMonitorJob) RunOnce(ctx context.Context) ([]queries.DriverCODBalance, error) {
	balances, err := j.handler.Handle(ctx, queries.NewGetUnreconciledCODSummaryQuery())
	if err != nil {
		return nil, err
	}

	metrics.UnreconciledCODAmount.Reset()
	for _, b := range balances {
		amount, _ := b.TotalCOD.Float64()
		metrics.UnreconciledCODAmount.WithLabelValues(b.DriverID.String()).Set(amount)
		j.logger.Info("Driver holds unreconciled cash",
			zap.String("driver_id", b.DriverID.String()),
			zap.String("driver", b.DriverName),
			zap.Int("parcels", b.Parcels),
			zap.String("amount", b.TotalCOD.StringFixed(2)),
		)
	}
	return balances, nil
}
