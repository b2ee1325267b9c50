package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"artmarket-admin/internal/domain/pricing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

// stalledWriter behaves like a writer whose broker never answers.
type stalledWriter struct{}

func (stalledWriter) WriteMessages(ctx context.Context, _ ...kafka.Message) error {
	<-ctx.Done()
	return ctx.Err()
}

func (stalledWriter) Close() error { return nil }

func TestPublishPricing(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, topic: "artwork-pricing"}
	at := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	err := p.PublishPricing(context.Background(),
		pricing.Event{Type: pricing.EventCascaded, ArtworkID: "A1", AdjustedPrice: "990.00", GlobalAdjustmentID: "g-1", OccurredAt: at},
		pricing.Event{Type: pricing.EventGlobalOff, GlobalAdjustmentID: "g-1", OccurredAt: at},
	)
	require.NoError(t, err)
	require.Len(t, w.msgs, 2)

	assert.Equal(t, "A1", string(w.msgs[0].Key))
	assert.Equal(t, "g-1", string(w.msgs[1].Key))
	assert.Equal(t, "pricing.cascaded", string(w.msgs[0].Headers[0].Value))

	var got pricing.Event
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, "990.00", got.AdjustedPrice)
	assert.True(t, at.Equal(got.OccurredAt))

	require.NoError(t, p.PublishPricing(context.Background()))
	assert.Len(t, w.msgs, 2)
}

func TestPublishPricing_BoundedWhenBrokerStalls(t *testing.T) {
	p := &KafkaPublisher{writer: stalledWriter{}, topic: "artwork-pricing", timeout: 20 * time.Millisecond}

	start := time.Now()
	err := p.PublishPricing(context.Background(), pricing.Event{Type: pricing.EventUpserted, ArtworkID: "A1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}
