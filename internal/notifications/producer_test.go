package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"stagebook/pkg/logger"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func testEvent() *BookingEvent {
	event := NewBookingEvent(EventBookingCreated, time.Date(2025, 1, 5, 18, 0, 0, 0, time.UTC))
	event.BookingID = uuid.New()
	event.BookingRef = "BK-20250105-ABC123"
	event.UserID = "user-1"
	event.PerformanceID = uuid.New()
	event.SeatID = uuid.New()
	event.SeatNumber = "C5"
	return event
}

func newMockProducer(t *testing.T) (*mocks.SyncProducer, *KafkaProducer) {
	t.Helper()
	cfg := DefaultKafkaProducerConfig()
	saramaConfig := mocks.NewTestConfig()
	saramaConfig.Producer.Return.Successes = true
	mockProducer := mocks.NewSyncProducer(t, saramaConfig)
	return mockProducer, NewKafkaProducerWithClient(mockProducer, cfg, logger.Discard())
}

func TestPublishBookingEvent(t *testing.T) {
	mockProducer, producer := newMockProducer(t)
	event := testEvent()

	mockProducer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got BookingEvent
		if err := json.Unmarshal(val, &got); err != nil {
			return err
		}
		if got.Type != EventBookingCreated || got.SeatNumber != "C5" || got.BookingID != event.BookingID {
			return errors.New("unexpected event payload")
		}
		return nil
	})

	require.NoError(t, producer.PublishBookingEvent(context.Background(), event))
	require.NoError(t, producer.Close())
}

func TestPublishBookingEvent_Failure(t *testing.T) {
	mockProducer, producer := newMockProducer(t)

	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := producer.PublishBookingEvent(context.Background(), testEvent())

	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, producer.Close())
}

func TestCreateHeaders_IncludesTrace(t *testing.T) {
	_, producer := newMockProducer(t)
	defer producer.Close()

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	headers := producer.createHeaders(ctx, testEvent())

	values := map[string]string{}
	for _, h := range headers {
		values[string(h.Key)] = string(h.Value)
	}
	assert.Equal(t, "booking.created", values["event_type"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", values["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", values["span_id"])
}

func TestCreateHeaders_NoTrace(t *testing.T) {
	_, producer := newMockProducer(t)
	defer producer.Close()

	for _, h := range producer.createHeaders(context.Background(), testEvent()) {
		assert.NotEqual(t, "trace_id", string(h.Key))
	}
}

func TestPartitionKeyIsPerformance(t *testing.T) {
	event := testEvent()

	assert.Equal(t, event.PerformanceID.String(), event.PartitionKey())
}

func TestSaramaConfig(t *testing.T) {
	cfg := DefaultKafkaProducerConfig().SaramaConfig()

	assert.True(t, cfg.Producer.Return.Successes)
	assert.True(t, cfg.Producer.Idempotent)
	assert.Equal(t, 1, cfg.Net.MaxOpenRequests)
	assert.Equal(t, sarama.WaitForAll, cfg.Producer.RequiredAcks)
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}

	assert.NoError(t, p.PublishBookingEvent(context.Background(), testEvent()))
	assert.NoError(t, p.Close())
}
