package engine

import (
	"github.com/abhisek/nudge/internal/catalog"
	"github.com/abhisek/nudge/internal/queue"
)

// EventType identifies what changed.
type EventType int

const (
	EventEnqueued EventType = iota
	EventOpened
	EventDismissed
	EventCompleted
	EventReset
	EventAmbientChanged
	EventTagsChanged
	EventLocated
)

func (t EventType) String() string {
	switch t {
	case EventEnqueued:
		return "enqueued"
	case EventOpened:
		return "opened"
	case EventDismissed:
		return "dismissed"
	case EventCompleted:
		return "completed"
	case EventReset:
		return "reset"
	case EventAmbientChanged:
		return "ambient"
	case EventTagsChanged:
		return "tags"
	case EventLocated:
		return "located"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after a transition commits.
type Event struct {
	Type EventType

	// Item is set for EventEnqueued.
	Item *queue.Item

	// Lesson is set for EventOpened and EventCompleted.
	Lesson *catalog.Lesson

	// Notice is a short human-readable notification, if any.
	Notice string

	// Pulse asks the presentation layer for a brief highlight.
	Pulse bool

	// State is the snapshot right after the transition.
	State State
}
