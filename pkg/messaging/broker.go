package messaging

import (
	"context"
)

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Message is the envelope published for every front-desk event.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Event types published by the front-desk services.
const (
	EventClientCheckedIn     = "client.checked_in"
	EventAssignmentCreated   = "assignment.created"
	EventAssignmentCompleted = "assignment.completed"
	EventClientNoShow        = "client.no_show"
	EventQueueReordered      = "queue.reordered"
	EventQueuePromoted       = "queue.promoted"
)
