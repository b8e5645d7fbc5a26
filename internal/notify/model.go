package notify

import "time"

// Notification is an append-only event record. RelatedID points at an
// order id by convention only; nothing validates the reference.
type Notification struct {
	ID        int       `json:"id"`
	RelatedID int       `json:"related_id"`
	EventType string    `json:"event_type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// EventOrderCreated tags notifications emitted by the order workflow.
const EventOrderCreated = "order_created"

// CreateRequest is the POST /notify payload. Pointer fields so the handler
// can tell an absent field from a zero value.
type CreateRequest struct {
	RelatedID *int    `json:"related_id"`
	EventType *string `json:"event_type"`
	Message   *string `json:"message"`
}
