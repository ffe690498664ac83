package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.KV().Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.Close()

	s, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, ok, err := s.KV().Get(ctx, "k")
	if err != nil || !ok || string(got) != "v" {
		t.Fatalf("Get after reopen = %q, %v, %v", got, ok, err)
	}
}

// kvContract exercises behaviour every KV backend must share.
func kvContract(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if ok {
		t.Fatal("expected missing key to report ok=false")
	}

	if err := kv.Set(ctx, "a", []byte(`{"x":1}`)); err != nil {
		t.Fatalf("set a: %v", err)
	}
	if err := kv.Set(ctx, "a", []byte(`{"x":2}`)); err != nil {
		t.Fatalf("overwrite a: %v", err)
	}
	if err := kv.Set(ctx, "b", []byte(`true`)); err != nil {
		t.Fatalf("set b: %v", err)
	}

	got, ok, err := kv.Get(ctx, "a")
	if err != nil || !ok {
		t.Fatalf("get a: ok=%v err=%v", ok, err)
	}
	if string(got) != `{"x":2}` {
		t.Errorf("a = %s, want {\"x\":2}", got)
	}

	if err := kv.Delete(ctx, "a", "b", "never-set"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	for _, k := range []string{"a", "b"} {
		if _, ok, _ := kv.Get(ctx, k); ok {
			t.Errorf("%s still present after delete", k)
		}
	}

	if err := kv.Delete(ctx); err != nil {
		t.Errorf("empty delete: %v", err)
	}
}

func TestSQLiteKV(t *testing.T) {
	kvContract(t, openTestStore(t).KV())
}

func TestMemoryKV(t *testing.T) {
	kvContract(t, NewMemoryKV())
}

func TestMemoryKV_CopiesValues(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	buf := []byte("abc")
	_ = kv.Set(ctx, "k", buf)
	buf[0] = 'z'

	got, _, _ := kv.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("stored value aliased caller slice: %q", got)
	}
}

func TestEventRepo_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LessonEventData{
		{LessonID: "pomodoro", Kind: EventEnqueued, Context: "morning/focused"},
		{LessonID: "pomodoro", Kind: EventOpened, XP: 25},
		{LessonID: "pomodoro", Kind: EventCompleted},
		{LessonID: "rule-of-72", Kind: EventEnqueued},
	}
	for _, e := range events {
		if err := repo.AppendLessonEvent(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.RecentLessonEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("got %d events, want 4", len(all))
	}
	if all[0].LessonID != "rule-of-72" {
		t.Errorf("newest event = %s, want rule-of-72", all[0].LessonID)
	}
	if time.Since(all[0].Timestamp) > time.Minute {
		t.Errorf("timestamp not recent: %v", all[0].Timestamp)
	}

	opened, err := repo.RecentLessonEvents(ctx, QueryOpts{Kind: EventOpened})
	if err != nil {
		t.Fatalf("recent opened: %v", err)
	}
	if len(opened) != 1 || opened[0].XP != 25 {
		t.Errorf("opened events = %+v", opened)
	}

	limited, err := repo.RecentLessonEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("recent limited: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limit ignored: got %d", len(limited))
	}

	future, err := repo.RecentLessonEvents(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("recent future: %v", err)
	}
	if len(future) != 0 {
		t.Errorf("expected no events after From, got %d", len(future))
	}

	counts, err := repo.CountByKind(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if counts[EventEnqueued] != 2 || counts[EventOpened] != 1 || counts[EventCompleted] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestDefaultDBPath_EnvOverride(t *testing.T) {
	want := filepath.Join(t.TempDir(), "sub", "custom.db")
	t.Setenv("NUDGE_DB", want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != want {
		t.Errorf("DefaultDBPath = %q, want %q", got, want)
	}
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("NUDGE_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if want := filepath.Join(dir, "nudge", "nudge.db"); got != want {
		t.Errorf("DefaultDBPath = %q, want %q", got, want)
	}
}
