package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const Topic = "cart-events"

type Action string

const (
	ActionItemAdded       Action = "item_added"
	ActionQuantityChanged Action = "quantity_changed"
	ActionItemRemoved     Action = "item_removed"
	ActionCartCleared     Action = "cart_cleared"
)

// CartEvent describes a cart after an effective mutation.
type CartEvent struct {
	SessionID  string    `json:"session_id"`
	Action     Action    `json:"action"`
	EntryCount int       `json:"entry_count"`
	ItemCount  int       `json:"item_count"`
	Subtotal   string    `json:"subtotal"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event CartEvent) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  Topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           5 * time.Second,
	}
	return &KafkaPublisher{writer: w}
}

// Publish keys messages by session so one session's events stay ordered.
func (p *KafkaPublisher) Publish(ctx context.Context, event CartEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal cart event failed: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.SessionID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "action", Value: []byte(event.Action)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write failed: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, CartEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
