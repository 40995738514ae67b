package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/swims/storefront/internal/domain"
)

func TestEncode(t *testing.T) {
	orderID := int64(55)
	event := domain.CheckoutEvent{
		ID:        "evt-1",
		UserID:    42,
		OrderID:   &orderID,
		EventType: domain.EventPaymentCompleted,
		EventData: map[string]interface{}{"total": 18000},
		CreatedAt: time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
	}

	msg, err := encode(event)
	require.NoError(t, err)

	assert.Equal(t, "42", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, string(domain.EventPaymentCompleted), string(msg.Headers[0].Value))

	var decoded domain.CheckoutEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event.ID, decoded.ID)
	require.NotNil(t, decoded.OrderID)
	assert.Equal(t, orderID, *decoded.OrderID)
}

func TestKafkaPublisher_BufferFull(t *testing.T) {
	producer := NewProducer([]string{"localhost:9092"}, "test", 1, zap.NewNop())
	pub := NewKafkaPublisher(producer, zap.NewNop())

	event := domain.CheckoutEvent{UserID: 1, EventType: domain.EventOrderSubmitted}
	require.NoError(t, pub.Publish(context.Background(), event))
	assert.Error(t, pub.Publish(context.Background(), event), "second event does not fit an unstarted producer")
}

func TestNoopPublisher(t *testing.T) {
	pub := NewNoopPublisher(zap.NewNop())
	assert.NoError(t, pub.Publish(context.Background(), domain.CheckoutEvent{UserID: 1}))
}

func TestProducer_CloseFlushesAndRejects(t *testing.T) {
	producer := NewProducer([]string{"localhost:9092"}, "test", 4, zap.NewNop())
	producer.Start(context.Background())

	producer.Close()
	producer.Close()

	done := make(chan struct{})
	go func() {
		producer.WaitClosed()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("producer did not stop after Close")
	}

	assert.False(t, producer.Enqueue(kafka.Message{Value: []byte("late")}), "closed producer drops messages")
}
