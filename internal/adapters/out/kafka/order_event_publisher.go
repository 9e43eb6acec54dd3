// Package kafka publishes order lifecycle events to a Kafka topic.
// Publishing is fire and forget: the order transition is already committed
// when the publisher runs, so delivery failures are logged and never undo it.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"freight/internal/core/domain/model/order"
)

// orderChangedEvent is the wire form of an order lifecycle notification.
// It snapshots the fields a downstream consumer needs to react without
// calling back into the service.
type orderChangedEvent struct {
	OrderID      string `json:"orderId"`
	OrderNumber  string `json:"orderNumber"`
	ClientID     string `json:"clientId"`
	Status       string `json:"status"`
	CurrentStage string `json:"currentStage,omitempty"`
	Version      int    `json:"version"`
	OccurredAt   string `json:"occurredAt"`
}

// messageWriter abstracts kafka.Writer for testability.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// OrderEventPublisher implements the order event port on top of a Kafka
// topic. Messages are keyed by order ID so one order's events stay ordered
// within a partition.
type OrderEventPublisher struct {
	writer messageWriter
	logger *slog.Logger
}

// NewOrderEventPublisher creates a publisher writing to the given topic.
// bootstrap can be a comma-separated list of host:port.
func NewOrderEventPublisher(bootstrap string, topic string, logger *slog.Logger) *OrderEventPublisher {
	var brokers []string
	for _, addr := range strings.Split(bootstrap, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			brokers = append(brokers, addr)
		}
	}

	return &OrderEventPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			Async:        false,
		},
		logger: logger.With("component", "order_event_publisher"),
	}
}

// NewOrderEventPublisherWith is only for tests to inject a fake writer.
func NewOrderEventPublisherWith(w messageWriter, logger *slog.Logger) *OrderEventPublisher {
	return &OrderEventPublisher{writer: w, logger: logger}
}

// PublishOrderChanged emits the order's current state after a lifecycle
// change. Failures are logged and returned; callers treat them as advisory.
func (p *OrderEventPublisher) PublishOrderChanged(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	event := orderChangedEvent{
		OrderID:     aggregate.ID().String(),
		OrderNumber: aggregate.OrderNumber(),
		ClientID:    aggregate.ClientID().String(),
		Status:      aggregate.Status().String(),
		Version:     aggregate.Version(),
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if stage, ok := aggregate.CurrentStage(); ok {
		event.CurrentStage = stage.Name()
	}

	value, err := json.Marshal(&event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: value,
	})
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to publish order event",
			"orderId", event.OrderID, "status", event.Status, "error", err)
		return err
	}

	return nil
}
