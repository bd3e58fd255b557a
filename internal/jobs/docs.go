// Package jobs runs the scheduled background work of the service on
// github.com/robfig/cron/v3.
//
// # Jobs
//
//  1. OutboxRelayJob publishes committed change events from the outbox to the
//     change-feed topic. Default schedule: every 5 seconds.
//  2. UnreconciledCODMonitorJob totals the cash each driver still holds,
//     exports it as a gauge and logs the drivers with an outstanding balance.
//     Default schedule: every 10 minutes.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relay, monitor, jobs.Schedules{
//		OutboxRelay: "@every 5s",
//		CODMonitor:  "@every 10m",
//	}, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed tick is logged and retried on the next tick. A tick still running
// when the next one is due is skipped. An empty outbox is not an error and is
// not logged.
package jobs
