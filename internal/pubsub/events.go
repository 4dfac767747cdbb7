// Package pubsub implements a small generic publish/subscribe broker used to
// fan out events from background goroutines into the Bubble Tea update loop.
package pubsub

import "time"

// EventType classifies a published event.
type EventType string

const (
	CreatedEvent EventType = "created"
	UpdatedEvent EventType = "updated"
	DeletedEvent EventType = "deleted"
	ErrorEvent   EventType = "error"
)

// Event carries a typed payload to subscribers.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}
