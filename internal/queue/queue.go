package queue

import (
	"time"

	"github.com/abhisek/nudge/internal/ambient"
	"github.com/abhisek/nudge/internal/catalog"
)

// Capacity is the maximum number of pending items.
const Capacity = 5

// Item is a selected lesson waiting to be opened.
type Item struct {
	ID          string          `json:"id"`
	Lesson      catalog.Lesson  `json:"lesson"`
	Context     ambient.Context `json:"context"`
	TriggeredAt time.Time       `json:"triggered_at"`
}

// Queue is an ordered, newest-first list of pending items. No two items
// share a lesson ID and the length never exceeds Capacity.
//
// Queue values are immutable: every mutation returns a new Queue and leaves
// the receiver untouched.
type Queue struct {
	items []Item
}

// Len returns the number of items.
func (q Queue) Len() int {
	return len(q.items)
}

// Items returns a copy of the items, newest first.
func (q Queue) Items() []Item {
	out := make([]Item, len(q.items))
	copy(out, q.items)
	return out
}

// Contains reports whether an item for lessonID is queued.
func (q Queue) Contains(lessonID string) bool {
	return q.index(lessonID) >= 0
}

// Full reports whether the queue is at capacity.
func (q Queue) Full() bool {
	return len(q.items) >= Capacity
}

// Push prepends item unless its lesson is already queued or the queue is
// full. In both rejected cases the existing queue is returned unchanged.
func (q Queue) Push(item Item) (Queue, bool) {
	if q.Contains(item.Lesson.ID) || q.Full() {
		return q, false
	}
	return q.prepend(item), true
}

// PushTruncate is Push followed by trimming to Capacity. A full queue still
// rejects the item; the trim never drops an existing entry.
func (q Queue) PushTruncate(item Item) (Queue, bool) {
	if q.Contains(item.Lesson.ID) || q.Full() {
		return q, false
	}
	next := q.prepend(item)
	if len(next.items) > Capacity {
		next.items = next.items[:Capacity]
	}
	return next, true
}

// Remove drops the item for lessonID, keeping the others in order.
func (q Queue) Remove(lessonID string) (Queue, bool) {
	i := q.index(lessonID)
	if i < 0 {
		return q, false
	}
	items := make([]Item, 0, len(q.items)-1)
	items = append(items, q.items[:i]...)
	items = append(items, q.items[i+1:]...)
	return Queue{items: items}, true
}

func (q Queue) prepend(item Item) Queue {
	items := make([]Item, 0, len(q.items)+1)
	items = append(items, item)
	items = append(items, q.items...)
	return Queue{items: items}
}

func (q Queue) index(lessonID string) int {
	for i, it := range q.items {
		if it.Lesson.ID == lessonID {
			return i
		}
	}
	return -1
}
