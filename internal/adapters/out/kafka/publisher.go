// Package kafka publishes outbox change events to the change-feed topic.
package kafka

import (
	"context"
	"time"

	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements ports.EventPublisher on a kafka-go Writer. Messages are
// keyed by aggregate id, so the hash balancer keeps one aggregate's events on
// one partition and in order.
type Publisher struct {
	writer messageWriter
	topic  string
	logger *zap.Logger
}

func NewPublisher(brokers []string, topic string, logger *zap.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return newPublisher(writer, topic, logger)
}

func newPublisher(writer messageWriter, topic string, logger *zap.Logger) *Publisher {
	return &Publisher{
		writer: writer,
		topic:  topic,
		logger: logger.With(zap.String("component", "kafka-publisher"), zap.String("topic", topic)),
	}
}

// Publish writes the batch synchronously. Any failure fails the whole batch;
// the caller keeps the rows and retries, so consumers must tolerate duplicates.
func (p *Publisher) Publish(ctx context.Context, messages []ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	batch := make([]kafka.Message, 0, len(messages))
	for _, m := range messages {
		batch = append(batch, kafka.Message{
			Key:   []byte(m.AggregateID),
			Value: m.Payload,
			Time:  m.OccurredAt,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(m.EventType)},
				{Key: "aggregate_type", Value: []byte(m.AggregateType)},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, batch...); err != nil {
		return errs.NewUpstreamError("publish to "+p.topic, err)
	}
	p.logger.Debug("change events published", zap.Int("count", len(batch)))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
