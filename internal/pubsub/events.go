// Package pubsub provides a generic publish/subscribe event system used to tell the
// shell about record changes and log output.
package pubsub

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType names what happened.
type EventType string

const (
	CourseAdded       EventType = "course.added"
	StudentRegistered EventType = "student.registered"
	StudentEnrolled   EventType = "student.enrolled"
	GradeAssigned     EventType = "grade.assigned"
	RosterLoaded      EventType = "roster.loaded"
	LogWritten        EventType = "log.written"
)

// Event is a published event with a typed payload.
type Event[T any] struct {
	ID        uuid.UUID
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher publishes events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T) int
}
