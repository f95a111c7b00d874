// Package events publishes domain events emitted after successful writes.
//
// Publishing is fire-and-forget from the caller's point of view: services log
// a failed publish and carry on, so a broker outage never fails an HTTP
// request. When no broker is configured the Nop publisher is used.
package events

import (
	"context"
	"time"
)

// Event types.
const (
	ArticleCreated = "article.created"
	ArticleVoted   = "article.voted"
	CommentCreated = "comment.created"
	CommentVoted   = "comment.voted"
	CommentDeleted = "comment.deleted"
)

// Event is the JSON message body sent to the broker.
type Event struct {
	Type      string    `json:"type"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

// New stamps an event with the current UTC time.
func New(eventType string, payload any) Event {
	return Event{Type: eventType, Payload: payload, Timestamp: time.Now().UTC()}
}

// Publisher delivers events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Nop discards every event.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, Event) error { return nil }

// Close implements Publisher.
func (Nop) Close() error { return nil }
