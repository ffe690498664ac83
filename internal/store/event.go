package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const eventsTable = "lesson_events"

// eventRepo implements EventRepo on the lesson_events table.
type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendLessonEvent(ctx context.Context, data LessonEventData) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(eventsTable).
		Columns("lesson_id", "kind", "xp", "context", "created_at").
		Values(data.LessonID, string(data.Kind), data.XP, data.Context, time.Now().UnixMilli()).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append lesson event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentLessonEvents(ctx context.Context, opts QueryOpts) ([]LessonEvent, error) {
	t := entsql.Table(eventsTable)
	sel := entsql.Dialect(dialect.SQLite).
		Select(t.C("id"), t.C("lesson_id"), t.C("kind"), t.C("xp"), t.C("context"), t.C("created_at")).
		From(t).
		OrderBy(entsql.Desc(t.C("id")))

	var preds []*entsql.Predicate
	if opts.Kind != "" {
		preds = append(preds, entsql.EQ(t.C("kind"), string(opts.Kind)))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE(t.C("created_at"), opts.From.UnixMilli()))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lesson events: %w", err)
	}
	defer rows.Close()

	var events []LessonEvent
	for rows.Next() {
		var (
			e     LessonEvent
			kind  string
			msecs int64
		)
		if err := rows.Scan(&e.ID, &e.LessonID, &kind, &e.XP, &e.Context, &msecs); err != nil {
			return nil, fmt.Errorf("scan lesson event: %w", err)
		}
		e.Kind = EventKind(kind)
		e.Timestamp = time.UnixMilli(msecs)
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) CountByKind(ctx context.Context) (map[EventKind]int, error) {
	t := entsql.Table(eventsTable)
	query, args := entsql.Dialect(dialect.SQLite).
		Select(t.C("kind"), entsql.Count("*")).
		From(t).
		GroupBy(t.C("kind")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count lesson events: %w", err)
	}
	defer rows.Close()

	counts := make(map[EventKind]int)
	for rows.Next() {
		var (
			kind string
			n    int
		)
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[EventKind(kind)] = n
	}
	return counts, rows.Err()
}
