package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// messageReader is the part of *kafka.Reader the consumer needs.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderHandler processes one decoded order event. A returned error stops consumption
// and leaves the message uncommitted.
type OrderHandler func(ctx context.Context, event OrderEvent) error

type Consumer struct {
	reader messageReader
	logger *slog.Logger
}

func NewConsumer(brokers []string, groupID, topic string, logger *slog.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		logger: logger,
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// ConsumeOrders blocks until ctx is done or handler fails. Undecodable messages and
// events of other types are committed and skipped.
func (c *Consumer) ConsumeOrders(ctx context.Context, handler OrderHandler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}

		event, err := DecodeOrderEvent(msg.Value)
		switch {
		case err != nil:
			c.logger.ErrorContext(ctx, "skip malformed order event",
				"topic", msg.Topic,
				"partition", msg.Partition,
				"offset", msg.Offset,
				"error", err,
			)
		case event.Type != EventOrderCreated:
			c.logger.DebugContext(ctx, "skip event", "type", event.Type, "offset", msg.Offset)
		default:
			if err := handler(ctx, event); err != nil {
				return fmt.Errorf("handle order %d: %w", event.OrderID, err)
			}
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("commit offset %d: %w", msg.Offset, err)
		}
	}
}

func DecodeOrderEvent(data []byte) (OrderEvent, error) {
	var event OrderEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return OrderEvent{}, fmt.Errorf("decode order event: %w", err)
	}
	if event.OrderID == 0 {
		return OrderEvent{}, fmt.Errorf("decode order event: missing order_id")
	}
	return event, nil
}
