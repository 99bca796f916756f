package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/commission_app/internal/core/domain"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker"
)

const (
	cloudEventsSpecVersion = "1.0"
	eventTypePrefix        = "com.commission."
	eventSource            = "/commission-backend"
)

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type cloudEvent struct {
	SpecVersion     string             `json:"specversion"`
	Type            string             `json:"type"`
	Source          string             `json:"source"`
	ID              string             `json:"id"`
	Time            time.Time          `json:"time"`
	Subject         string             `json:"subject"`
	DataContentType string             `json:"datacontenttype"`
	Data            domain.ChangeEvent `json:"data"`
}

// KafkaPublisher writes change events as CloudEvents keyed by commission id,
// so all changes of one commission land on one partition in order.
type KafkaPublisher struct {
	writer  MessageWriter
	breaker *gobreaker.CircuitBreaker
}

// NewKafkaWriter builds a synchronous writer for topic.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
}

// NewKafkaPublisher wraps writer in a circuit breaker.
func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	settings := gobreaker.Settings{
		Name:        "kafka-change-publisher",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed",
				slog.String("name", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	}
	return &KafkaPublisher{writer: writer, breaker: gobreaker.NewCircuitBreaker(settings)}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event domain.ChangeEvent) error {
	ce := cloudEvent{
		SpecVersion:     cloudEventsSpecVersion,
		Type:            eventTypePrefix + string(event.Action),
		Source:          eventSource,
		ID:              uuid.NewString(),
		Time:            event.OccurredAt,
		Subject:         event.CommissionID,
		DataContentType: "application/json",
		Data:            event,
	}
	data, err := json.Marshal(ce)
	if err != nil {
		return fmt.Errorf("failed to marshal change event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.CommissionID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "ce-specversion", Value: []byte(ce.SpecVersion)},
			{Key: "ce-type", Value: []byte(ce.Type)},
			{Key: "ce-source", Value: []byte(ce.Source)},
			{Key: "ce-id", Value: []byte(ce.ID)},
			{Key: "ce-time", Value: []byte(ce.Time.Format(time.RFC3339))},
			{Key: "content-type", Value: []byte(ce.DataContentType)},
		},
		Time: ce.Time,
	}
	if event.WarehouseID != "" {
		msg.Headers = append(msg.Headers, kafka.Header{Key: "ce-warehouseid", Value: []byte(event.WarehouseID)})
	}

	_, err = p.breaker.Execute(func() (interface{}, error) {
		return nil, p.writer.WriteMessages(ctx, msg)
	})
	if err != nil {
		return fmt.Errorf("failed to publish change for commission %s: %w", event.CommissionID, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
