// Package events delivers advisory domain events to external notification
// collaborators. Delivery is best-effort: callers log failures and move on.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/finance-tracker/coach/internal/domain/entity"
)

// Message is the wire envelope shared by every publisher.
type Message struct {
	ID         string         `json:"id"`
	Kind       string         `json:"kind"`
	UserID     string         `json:"user_id"`
	Payload    map[string]any `json:"payload"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// NewMessage converts a domain event into its wire envelope.
func NewMessage(event entity.Event) Message {
	payload := event.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	return Message{
		ID:         event.ID.String(),
		Kind:       string(event.Kind),
		UserID:     event.UserID.String(),
		Payload:    payload,
		OccurredAt: event.OccurredAt.UTC(),
	}
}

// ToJSON encodes the message.
func (m Message) ToJSON() ([]byte, error) {
	body, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal event %s: %w", m.ID, err)
	}
	return body, nil
}

// MessageFromJSON decodes a message produced by ToJSON.
func MessageFromJSON(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return m, nil
}
