package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	return m.Called(ctx, msgs).Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

func TestPublisher_Publish_KeysByAggregateAndSetsHeaders(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)
	writer := new(MockWriter)
	var sent []kafka.Message
	writer.On("WriteMessages", ctx, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).([]kafka.Message) }).
		Return(nil).Once()

	p := newPublisher(writer, "parcel-changed", zap.NewNop())
	err := p.Publish(ctx, []ports.OutboxMessage{
		{ID: 1, AggregateType: "parcel", AggregateID: "p-1", EventType: "parcel.changed", Payload: []byte(`{"status":"BOOKED"}`), OccurredAt: at},
		{ID: 2, AggregateType: "invoice", AggregateID: "i-1", EventType: "invoice.changed", Payload: []byte(`{}`), OccurredAt: at},
	})

	require.NoError(t, err)
	require.Len(t, sent, 2)
	assert.Equal(t, []byte("p-1"), sent[0].Key)
	assert.JSONEq(t, `{"status":"BOOKED"}`, string(sent[0].Value))
	assert.Equal(t, at, sent[0].Time)
	assert.Equal(t, []kafka.Header{
		{Key: "event_type", Value: []byte("parcel.changed")},
		{Key: "aggregate_type", Value: []byte("parcel")},
	}, sent[0].Headers)
	assert.Equal(t, []byte("i-1"), sent[1].Key)
	writer.AssertExpectations(t)
}

func TestPublisher_Publish_EmptyBatchSkipsWriter(t *testing.T) {
	writer := new(MockWriter)
	p := newPublisher(writer, "parcel-changed", zap.NewNop())

	require.NoError(t, p.Publish(context.Background(), nil))
	writer.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
}

func TestPublisher_Publish_BrokerFailureIsUpstream(t *testing.T) {
	writer := new(MockWriter)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("leader not available")).Once()
	p := newPublisher(writer, "parcel-changed", zap.NewNop())

	err := p.Publish(context.Background(), []ports.OutboxMessage{{AggregateID: "p-1", Payload: []byte(`{}`)}})

	require.Error(t, err)
	assert.True(t, errs.IsUpstream(err))
	assert.Contains(t, err.Error(), "leader not available")
}

func TestPublisher_Close(t *testing.T) {
	writer := new(MockWriter)
	writer.On("Close").Return(nil).Once()

	require.NoError(t, newPublisher(writer, "t", zap.NewNop()).Close())
	writer.AssertExpectations(t)
}
