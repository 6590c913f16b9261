package kafka

import (
	"encoding/json"
	"log"
	"time"

	"github.com/georgemunganga/kuber-inventory/internal/modules/activity"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const EventActivityRecorded = "inventory.activity.recorded"

// Envelope wraps every event published to the activity topic.
type Envelope struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	Payload      json.RawMessage `json:"payload"`
}

// publisher is the interface Producer satisfies; tests swap it out.
type publisher interface {
	Publish(key, value []byte, headers ...kafka.Header)
}

// ActivityPublisher forwards committed ledger entries to Kafka, keyed by
// product id so one product's history stays in one partition.
type ActivityPublisher struct {
	out     publisher
	service string
}

var _ activity.Publisher = (*ActivityPublisher)(nil)

func NewActivityPublisher(p *Producer, service string) *ActivityPublisher {
	return &ActivityPublisher{out: p, service: service}
}

func newEnvelope(e activity.Entry, service string) (Envelope, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		EventID:      uuid.NewString(),
		EventType:    EventActivityRecorded,
		EventVersion: 1,
		OccurredAt:   e.Timestamp,
		Producer:     service,
		Payload:      payload,
	}, nil
}

func (p *ActivityPublisher) Publish(e activity.Entry) {
	env, err := newEnvelope(e, p.service)
	if err != nil {
		log.Printf("kafka: encode activity %s: %v", e.ID, err)
		return
	}
	b, err := json.Marshal(env)
	if err != nil {
		log.Printf("kafka: encode envelope %s: %v", e.ID, err)
		return
	}
	p.out.Publish([]byte(e.ProductID.String()), b,
		kafka.Header{Key: "x-event-type", Value: []byte(EventActivityRecorded)},
		kafka.Header{Key: "x-action", Value: []byte(e.Action)},
	)
}
