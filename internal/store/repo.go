package store

import (
	"context"
	"time"
)

// EventKind classifies a lesson event.
type EventKind string

const (
	EventEnqueued  EventKind = "enqueued"
	EventOpened    EventKind = "opened"
	EventCompleted EventKind = "completed"
	EventReset     EventKind = "reset"
)

// LessonEventData captures one lesson lifecycle event.
type LessonEventData struct {
	LessonID string
	Kind     EventKind
	XP       int
	// Context is a compact description of the triggering context, if any.
	Context string
}

// LessonEvent is a stored LessonEventData.
type LessonEvent struct {
	ID        int64
	Timestamp time.Time
	LessonEventData
}

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	Kind  EventKind // filter by kind ("" = all)
	From  time.Time // timestamp >= From
}

// EventRepo provides append and query access to lesson events.
type EventRepo interface {
	// AppendLessonEvent records a lesson event.
	AppendLessonEvent(ctx context.Context, data LessonEventData) error

	// RecentLessonEvents returns events newest first.
	RecentLessonEvents(ctx context.Context, opts QueryOpts) ([]LessonEvent, error)

	// CountByKind returns how many events of each kind exist.
	CountByKind(ctx context.Context) (map[EventKind]int, error)
}
