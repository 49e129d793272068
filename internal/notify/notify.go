package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

//go:generate mockgen -source=notify.go -destination=mock_notify.go -package=notify

const (
	Producer     = "orderdesk"
	EventVersion = 1

	writeTimeout = 5 * time.Second
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Envelope wraps every event published to the topic.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// KafkaPublisher sends events in the background. Messages are keyed by
// order id so the events of one order stay in one partition.
type KafkaPublisher struct {
	writer MessageWriter
	pool   *WorkerPool
	now    func() time.Time
}

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
}

func NewKafkaPublisher(writer MessageWriter, workers int) *KafkaPublisher {
	return &KafkaPublisher{
		writer: writer,
		pool:   NewWorkerPool(workers, workers*16),
		now:    time.Now,
	}
}

// Publish queues the event. Write failures are logged by the pool, only
// encoding and queueing failures are returned.
func (p *KafkaPublisher) Publish(ctx context.Context, eventType, key string, payload any) error {
	msg, err := p.message(eventType, key, payload)
	if err != nil {
		return err
	}
	writeCtx := context.WithoutCancel(ctx)
	return p.pool.AddTask(ctx, func() error {
		ctx, cancel := context.WithTimeout(writeCtx, writeTimeout)
		defer cancel()
		if err := p.writer.WriteMessages(ctx, msg); err != nil {
			return fmt.Errorf("write %s for %s: %w", eventType, key, err)
		}
		return nil
	})
}

func (p *KafkaPublisher) message(eventType, key string, payload any) (kafka.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	now := p.now()
	value, err := json.Marshal(Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  EventVersion,
		OccurredAt:    now.UTC(),
		Producer:      Producer,
		CorrelationID: key,
		Payload:       body,
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode %s envelope: %w", eventType, err)
	}
	return kafka.Message{
		Key:     []byte(key),
		Value:   value,
		Time:    now,
		Headers: []kafka.Header{{Key: "event_type", Value: []byte(eventType)}},
	}, nil
}

// Close flushes queued events and closes the writer.
func (p *KafkaPublisher) Close() error {
	p.pool.Close()
	return p.writer.Close()
}

// NopPublisher drops events. It is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(_ context.Context, eventType, key string, _ any) error {
	zap.L().Debug("event dropped", zap.String("event", eventType), zap.String("key", key))
	return nil
}

func (NopPublisher) Close() error { return nil }
