package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// Schedules holds the cron spec of each job.
type Schedules struct {
	OutboxRelay string
	CODMonitor  string
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	outboxRelayJob *OutboxRelayJob
	codMonitorJob  *UnreconciledCODMonitorJob
	schedules      Schedules
	logger         *zap.Logger
}

func NewJobManager(
	outboxRelayJob *OutboxRelayJob,
	codMonitorJob *UnreconciledCODMonitorJob,
	schedules Schedules,
	logger *zap.Logger,
) *JobManager {
	return &JobManager{
		outboxRelayJob: outboxRelayJob,
		codMonitorJob:  codMonitorJob,
		schedules:      schedules,
		logger:         logger,
	}
}

// StartAll starts all scheduled jobs. If one fails to start, the ones already
// running are stopped.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(jm.schedules.OutboxRelay); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}

	if err := jm.codMonitorJob.Start(jm.schedules.CODMonitor); err != nil {
		jm.outboxRelayJob.Stop()
		return fmt.Errorf("failed to start unreconciled COD monitor job: %w", err)
	}

	return nil
}

// StopAll stops all jobs and waits for running ticks to finish.
func (jm *JobManager) StopAll() {
	jm.codMonitorJob.Stop()
	jm.outboxRelayJob.Stop()
	jm.logger.Info("All jobs stopped")
}
