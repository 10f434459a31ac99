package confirm

import (
	"encoding/json"
	"time"
)

const (
	EventCheckoutCompleted = "CheckoutCompleted"

	TopicCheckoutCompleted = "checkout.completed"
)

// Envelope wraps every published event, versioned for downstream
// compatibility.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"` // provider session id
	Payload       json.RawMessage `json:"payload"`
}

type CheckoutCompletedPayload struct {
	Confirmation
}

// PartitionKey keys by provider session id so repeated deliveries of
// the same checkout stay ordered.
func PartitionKey(sessionID string) []byte { return []byte(sessionID) }
