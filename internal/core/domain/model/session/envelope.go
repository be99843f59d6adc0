package session

import "time"

// EventType names a message pushed over the real-time channel.
type EventType string

const (
	EventNewOrder                 EventType = "new_order"
	EventOrderUpdate              EventType = "order_update"
	EventSubscriptionUpdate       EventType = "subscription_update"
	EventNewPreparedOrder         EventType = "new_prepared_order"
	EventManualAssignmentRequired EventType = "manual_assignment_required"
	EventChefStatusUpdate         EventType = "chef_status_update"
	EventProductAvailability      EventType = "product_availability_update"
	EventWalletUpdated            EventType = "wallet_updated"
)

// Envelope is the wire format of every message delivered to a connection.
// Data carries a snapshot of the entity the event is about; Message is an
// optional human-readable note; Timestamp is RFC 3339 when present.
type Envelope struct {
	Type      EventType `json:"type"`
	Data      any       `json:"data"`
	Message   string    `json:"message,omitempty"`
	Timestamp string    `json:"timestamp,omitempty"`
}

// NewEnvelope stamps an envelope with the current time.
func NewEnvelope(eventType EventType, data any, message string) Envelope {
	return Envelope{
		Type:      eventType,
		Data:      data,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
