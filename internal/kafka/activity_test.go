package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/georgemunganga/kuber-inventory/internal/modules/activity"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	key, value []byte
	headers    []kafka.Header
}

type fakePublisher struct{ messages []captured }

func (f *fakePublisher) Publish(key, value []byte, headers ...kafka.Header) {
	f.messages = append(f.messages, captured{key: key, value: value, headers: headers})
}

func TestActivityPublisher(t *testing.T) {
	out := &fakePublisher{}
	p := &ActivityPublisher{out: out, service: "kuber-inventory"}

	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	entry := *activity.NewEntry(uuid.New(), "Gold Ring", activity.ActionStockReduced, -2,
		activity.Actor{ID: uuid.New(), Email: "staff@kuber.test"}, at)
	p.Publish(entry)

	require.Len(t, out.messages, 1)
	m := out.messages[0]
	assert.Equal(t, entry.ProductID.String(), string(m.key))
	assert.Contains(t, m.headers, kafka.Header{Key: "x-action", Value: []byte("stock_reduced")})

	var env Envelope
	require.NoError(t, json.Unmarshal(m.value, &env))
	assert.Equal(t, EventActivityRecorded, env.EventType)
	assert.Equal(t, "kuber-inventory", env.Producer)
	assert.True(t, at.Equal(env.OccurredAt))

	var payload activity.Entry
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, entry.ID, payload.ID)
	assert.Equal(t, -2, payload.QuantityChange)
	assert.Equal(t, "staff@kuber.test", payload.AdminEmail)
}

func TestProducerDropsWhenInboxFull(t *testing.T) {
	p := NewProducer([]string{"127.0.0.1:1"}, "inventory.activity", 1)
	p.Publish([]byte("a"), []byte("1"))
	p.Publish([]byte("b"), []byte("2"))
	assert.Len(t, p.inbox, 1)
}
