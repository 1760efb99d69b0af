package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types published by the booking service.
const (
	EventBookingCreated = "booking.created"
	EventInquiryCreated = "inquiry.created"
)

// Header keys carried on every message.
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
	HeaderTimestamp = "timestamp"
)

// Message is a keyed event payload. Key selects the Kafka partition, so
// events for the same venue stay ordered.
type Message struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}

// NewMessage builds an event message with a JSON-encoded payload and the
// standard headers filled in.
func NewMessage(eventType, key string, payload any) (Message, error) {
	value, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}

	now := time.Now()
	return Message{
		Key:   key,
		Value: value,
		Headers: map[string]string{
			HeaderEventID:   uuid.NewString(),
			HeaderEventType: eventType,
			HeaderTimestamp: now.Format(time.RFC3339),
		},
		Timestamp: now,
	}, nil
}
