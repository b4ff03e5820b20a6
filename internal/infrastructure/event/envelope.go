package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/qreats/backend/internal/domain/shared"
)

// Envelope is the wire format of an event published outside the process.
type Envelope struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	TenantID  uuid.UUID       `json:"tenantId"`
	Timestamp time.Time       `json:"timestamp"`
	Version   int             `json:"version"`
	Data      json.RawMessage `json:"data"`
}

// NewEnvelope wraps a domain event. Data holds the event's own JSON encoding.
func NewEnvelope(event shared.DomainEvent) (*Envelope, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s event: %w", event.EventType(), err)
	}
	return &Envelope{
		ID:        event.EventID(),
		Type:      event.EventType(),
		TenantID:  event.TenantID(),
		Timestamp: event.OccurredAt().UTC(),
		Version:   event.SchemaVersion(),
		Data:      data,
	}, nil
}
