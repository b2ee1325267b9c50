// Package events publishes domain events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"artmarket-admin/internal/domain/pricing"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// publishTimeout bounds a publish on the request path; events are
// best-effort and a down broker must not stall pricing writes.
const publishTimeout = 2 * time.Second

type KafkaPublisher struct {
	writer  messageWriter
	topic   string
	timeout time.Duration
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			BatchTimeout:           50 * time.Millisecond,
			RequiredAcks:           kafka.RequireOne,
			MaxAttempts:            3,
			WriteBackoffMax:        250 * time.Millisecond,
			AllowAutoTopicCreation: true,
		},
		topic:   topic,
		timeout: publishTimeout,
	}
}

// messages keys each event by artwork so one artwork's changes stay ordered
// within a partition.
func messages(events []pricing.Event) ([]kafka.Message, error) {
	out := make([]kafka.Message, 0, len(events))
	for _, ev := range events {
		v, err := json.Marshal(ev)
		if err != nil {
			return nil, fmt.Errorf("marshal %s event: %w", ev.Type, err)
		}
		key := ev.ArtworkID
		if key == "" {
			key = ev.GlobalAdjustmentID
		}
		out = append(out, kafka.Message{
			Key:   []byte(key),
			Value: v,
			Time:  ev.OccurredAt,
			Headers: []kafka.Header{
				{Key: "event-type", Value: []byte(ev.Type)},
			},
		})
	}
	return out, nil
}

func (p *KafkaPublisher) PublishPricing(ctx context.Context, events ...pricing.Event) error {
	if len(events) == 0 {
		return nil
	}
	msgs, err := messages(events)
	if err != nil {
		return err
	}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish to %s: %w", p.topic, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
