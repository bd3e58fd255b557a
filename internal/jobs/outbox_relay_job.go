package jobs

import (
	"context"
	"time"

	"parcelhub/internal/core/ports"
	"parcelhub/internal/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const outboxBatchSize = 100

// OutboxUoW is the unit of work view the relay needs.
type OutboxUoW interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	OutboxRepository() ports.OutboxRepository
}

type OutboxUoWFactory interface {
	Create() OutboxUoW
}

// OutboxRelayJob moves committed change events from the outbox to the broker.
// Rows are locked with SKIP LOCKED while a batch is in flight, so several
// instances may run the relay at once.
type OutboxRelayJob struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	cron       *cron.Cron
	logger     *zap.Logger
	now        func() time.Time
}

func NewOutboxRelayJob(uowFactory OutboxUoWFactory, publisher ports.EventPublisher, logger *zap.Logger) *OutboxRelayJob {
	logger = logger.With(zap.String("component", "outbox_relay_job"))
	return &OutboxRelayJob{
		uowFactory: uowFactory,
		publisher:  publisher,
		cron:       newCron(logger),
		logger:     logger,
		now:        time.Now,
	}
}

// Start schedules the relay.
func (j *OutboxRelayJob) Start(spec string) error {
	_, err := j.cron.AddFunc(spec, tick(func(ctx context.Context) {
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.Error("Outbox relay failed", zap.Error(err))
		}
	}))
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Outbox relay job started", zap.String("schedule", spec))
	return nil
}

func (j *OutboxRelayJob) Stop() {
	stopCron(j.cron)
	j.logger.Info("Outbox relay job stopped")
}

// RunOnce drains the outbox batch by batch and returns how many events were
// published. A batch that fails to publish stays unpublished for the next run.
func (j *OutboxRelayJob) RunOnce(ctx context.Context) (int, error) {
	total := 0
	for {
		n, err := j.relayBatch(ctx)
		total += n
		if err != nil || n < outboxBatchSize {
			return total, err
		}
	}
}

func (j *OutboxRelayJob) relayBatch(ctx context.Context) (int, error) {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	batch, err := outbox.FetchUnpublished(ctx, outboxBatchSize)
	if err != nil {
		return 0, err
	}
	if len(batch) == 0 {
		return 0, nil
	}

	if err = j.publisher.Publish(ctx, batch); err != nil {
		return 0, err
	}

	ids := make([]int64, 0, len(batch))
	for _, m := range batch {
		ids = append(ids, m.ID)
	}
	if err = outbox.MarkPublished(ctx, ids, j.now().UTC()); err != nil {
		return 0, err
	}
	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	metrics.OutboxPublishedTotal.Add(float64(len(batch)))
	j.logger.Debug("Outbox batch published", zap.Int("count", len(batch)))
	return len(batch), nil
}
