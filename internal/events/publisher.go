// Package events publishes booking lifecycle events to Kafka. Publish
// failures are logged and never surfaced to the request that caused
// them.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// TopicBookingEvents is the topic carrying booking lifecycle events.
const TopicBookingEvents = "booking.events"

// Event types.
const (
	BookingCreated  = "booking.created"
	BookingApproved = "booking.approved"
	BookingRejected = "booking.rejected"
)

// BookingEvent is the wire shape of a booking lifecycle event.
type BookingEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	BookingID  int64     `json:"booking_id"`
	ItemID     int64     `json:"item_id"`
	BookerID   int64     `json:"booker_id"`
	OwnerID    int64     `json:"owner_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewBookingEvent creates an event with a fresh id and timestamp.
func NewBookingEvent(eventType string, bookingID, itemID, bookerID, ownerID int64, status string) BookingEvent {
	return BookingEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		BookingID:  bookingID,
		ItemID:     itemID,
		BookerID:   bookerID,
		OwnerID:    ownerID,
		Status:     status,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher publishes booking events.
type Publisher interface {
	Publish(ctx context.Context, evt BookingEvent) error
	Close() error
}

// KafkaPublisher writes booking events to a Kafka topic, keyed by
// booking id so events for one booking stay ordered.
type KafkaPublisher struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

// NewKafkaPublisher creates a publisher for the given brokers.
func NewKafkaPublisher(brokers []string, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(brokers...),
			Topic:        TopicBookingEvents,
			Balancer:     &kafkago.Hash{},
			RequiredAcks: kafkago.RequireOne,
			BatchTimeout: 10 * time.Millisecond,
		},
		logger: logger,
	}
}

// Publish writes one event.
func (p *KafkaPublisher) Publish(ctx context.Context, evt BookingEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}
	msg := kafkago.Message{
		Key:   []byte(strconv.FormatInt(evt.BookingID, 10)),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish booking event: %w", err)
	}
	p.logger.Debug("published booking event",
		zap.String("type", evt.Type),
		zap.Int64("booking_id", evt.BookingID),
	)
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher discards events. Used when Kafka is disabled and in
// tests.
type NopPublisher struct{}

// Publish discards the event.
func (NopPublisher) Publish(context.Context, BookingEvent) error { return nil }

// Close is a no-op.
func (NopPublisher) Close() error { return nil }
