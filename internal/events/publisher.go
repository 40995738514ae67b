package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/swims/storefront/internal/domain"
)

// Publisher emits checkout lifecycle events for downstream consumers
type Publisher interface {
	Publish(ctx context.Context, event domain.CheckoutEvent) error
}

type KafkaPublisher struct {
	producer *Producer
	logger   *zap.Logger
}

func NewKafkaPublisher(producer *Producer, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, logger: logger}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event domain.CheckoutEvent) error {
	msg, err := encode(event)
	if err != nil {
		return err
	}
	if !p.producer.Enqueue(msg) {
		p.logger.Warn("Event buffer full, dropping event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.EventType)),
		)
		return fmt.Errorf("event buffer full")
	}
	return nil
}

// encode keys messages by user so one user's events stay ordered on a partition
func encode(event domain.CheckoutEvent) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(strconv.FormatInt(event.UserID, 10)),
		Value: value,
		Time:  event.CreatedAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}, nil
}

// NoopPublisher is used when no brokers are configured
type NoopPublisher struct {
	logger *zap.Logger
}

func NewNoopPublisher(logger *zap.Logger) *NoopPublisher {
	return &NoopPublisher{logger: logger}
}

func (p *NoopPublisher) Publish(ctx context.Context, event domain.CheckoutEvent) error {
	p.logger.Debug("Event publishing disabled",
		zap.String("event_type", string(event.EventType)),
		zap.Int64("user_id", event.UserID),
	)
	return nil
}
