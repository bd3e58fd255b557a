package jobs

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// cronLogger routes cron's own messages to zap.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}

// newCron accepts both 6-field (with seconds) specs and descriptors like "@every 5s".
// Overlapping runs are skipped.
func newCron(logger *zap.Logger) *cron.Cron {
	l := cronLogger{log: logger.Sugar()}
	return cron.New(
		cron.WithSeconds(),
		cron.WithLogger(l),
		cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
	)
}

// stopCron waits for a running tick to finish.
func stopCron(c *cron.Cron) {
	<-c.Stop().Done()
}

func tick(fn func(ctx context.Context)) func() {
	return func() {
		fn(context.Background())
	}
}
