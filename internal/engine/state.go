package engine

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/abhisek/nudge/internal/ambient"
	"github.com/abhisek/nudge/internal/catalog"
	"github.com/abhisek/nudge/internal/profile"
	"github.com/abhisek/nudge/internal/queue"
)

var (
	// ErrNoCurrentLesson is returned by Complete when nothing is displayed.
	ErrNoCurrentLesson = errors.New("no lesson is open")

	// ErrUnknownLesson is returned when a lesson ID is not in the catalog.
	ErrUnknownLesson = errors.New("unknown lesson")

	// ErrEmptyTag is returned for blank tags.
	ErrEmptyTag = errors.New("tag must not be empty")
)

// DefaultEnvTags returns the environment tags a fresh profile starts with.
func DefaultEnvTags() []string {
	return []string{"desk", "coffee-break", "commute"}
}

// Trigger marks the most recent successful enqueue.
type Trigger struct {
	LessonID string    `json:"lesson_id"`
	At       time.Time `json:"at"`
}

// State is the complete engine state. Transition functions never modify
// their input; they return a new State.
type State struct {
	Profile     profile.Profile
	Queue       queue.Queue
	Seen        map[string]int
	EnvTags     []string
	Ambient     bool
	Current     *catalog.Lesson
	LastTrigger *Trigger
	Coords      *ambient.Coordinates

	// Completed counts lessons marked complete since the last reset.
	Completed int
}

// DefaultState is the state of a fresh install or a reset.
func DefaultState() State {
	return State{
		Profile: profile.Default(),
		Seen:    map[string]int{},
		EnvTags: DefaultEnvTags(),
		Ambient: true,
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	s.Profile = s.Profile.Clone()
	s.Seen = maps.Clone(s.Seen)
	if s.Seen == nil {
		s.Seen = map[string]int{}
	}
	s.EnvTags = slices.Clone(s.EnvTags)
	if s.Current != nil {
		l := *s.Current
		s.Current = &l
	}
	if s.LastTrigger != nil {
		t := *s.LastTrigger
		s.LastTrigger = &t
	}
	if s.Coords != nil {
		c := *s.Coords
		s.Coords = &c
	}
	return s
}

// Enqueue inserts item if its lesson is not queued and the queue has room.
// A successful insert records the last trigger.
func Enqueue(s State, item queue.Item) (State, bool) {
	q, ok := s.Queue.Push(item)
	if !ok {
		return s, false
	}
	next := s.Clone()
	next.Queue = q
	next.LastTrigger = &Trigger{LessonID: item.Lesson.ID, At: item.TriggeredAt}
	return next, true
}

// EnqueueManual is Enqueue for manual triggers. It goes through the
// truncating push, so a full queue rejects the item just the same.
func EnqueueManual(s State, item queue.Item) (State, bool) {
	q, ok := s.Queue.PushTruncate(item)
	if !ok {
		return s, false
	}
	next := s.Clone()
	next.Queue = q
	next.LastTrigger = &Trigger{LessonID: item.Lesson.ID, At: item.TriggeredAt}
	return next, true
}

// Open displays lesson, bumps its seen count, credits its XP, increments the
// streak and drops it from the queue. XP is credited here and only here.
func Open(s State, lesson catalog.Lesson) State {
	next := s.Clone()
	l := lesson
	next.Current = &l
	next.Seen[lesson.ID]++
	next.Profile = next.Profile.Credit(lesson.XP)
	next.Queue, _ = next.Queue.Remove(lesson.ID)
	return next
}

// Dismiss clears the displayed lesson.
func Dismiss(s State) State {
	if s.Current == nil {
		return s
	}
	next := s.Clone()
	next.Current = nil
	return next
}

// Complete marks the displayed lesson done and closes it. It grants no XP;
// the reward was already credited by Open.
func Complete(s State) (State, catalog.Lesson, error) {
	if s.Current == nil {
		return s, catalog.Lesson{}, ErrNoCurrentLesson
	}
	done := *s.Current
	next := s.Clone()
	next.Current = nil
	next.Completed++
	return next, done, nil
}

// Reset restores the defaults. The known position survives since it is
// not learner state.
func Reset(s State) State {
	next := DefaultState()
	if s.Coords != nil {
		c := *s.Coords
		next.Coords = &c
	}
	return next
}

// AddTag appends tag to the environment tags. Blank and already-present
// tags are ignored.
func AddTag(s State, tag string) (State, bool) {
	tag = strings.TrimSpace(tag)
	if tag == "" || slices.Contains(s.EnvTags, tag) {
		return s, false
	}
	next := s.Clone()
	next.EnvTags = append(next.EnvTags, tag)
	return next, true
}

// RemoveTag drops every occurrence of tag from the environment tags.
func RemoveTag(s State, tag string) (State, bool) {
	if !slices.Contains(s.EnvTags, tag) {
		return s, false
	}
	next := s.Clone()
	next.EnvTags = slices.DeleteFunc(next.EnvTags, func(t string) bool { return t == tag })
	return next, true
}

// SetAmbient turns ambient mode on or off.
func SetAmbient(s State, on bool) State {
	if s.Ambient == on {
		return s
	}
	next := s.Clone()
	next.Ambient = on
	return next
}

// SetCoords records a resolved position.
func SetCoords(s State, c ambient.Coordinates) State {
	next := s.Clone()
	next.Coords = &c
	return next
}
