package ports

import (
	"context"
	"time"
)

// OutboxMessage is one change event written in the same transaction as the
// aggregate change it describes.
type OutboxMessage struct {
	ID            int64
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	OccurredAt    time.Time
}

// OutboxRepository is read by the relay job.
type OutboxRepository interface {
	// FetchUnpublished locks up to limit unpublished messages, oldest first.
	FetchUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkPublished(ctx context.Context, ids []int64, at time.Time) error
}

// EventPublisher delivers change events to the change feed.
type EventPublisher interface {
	Publish(ctx context.Context, messages []OutboxMessage) error
}
