package engine

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abhisek/nudge/internal/ambient"
	"github.com/abhisek/nudge/internal/catalog"
	"github.com/abhisek/nudge/internal/geo"
	"github.com/abhisek/nudge/internal/metrics"
	"github.com/abhisek/nudge/internal/queue"
	"github.com/abhisek/nudge/internal/selector"
	"github.com/abhisek/nudge/internal/store"
)

// Persisted keys.
const (
	KeyAmbient = "ambient.enabled"
	KeySeen    = "ambient.seen"
	KeyEnvTags = "ambient.env_tags"
)

// Options configures an Engine. Only Prefs is required.
type Options struct {
	Catalog *catalog.Catalog
	Prefs   *store.Prefs
	Events  store.EventRepo
	Metrics *metrics.Metrics
	Logger  zerolog.Logger

	Clock ambient.Clock
	Rand  ambient.Rand

	// Ambient sets the signal probabilities. Nil uses ambient.DefaultConfig;
	// a non-nil config is used as given, zeros included.
	Ambient *ambient.Config

	// Coords seeds the known position.
	Coords *ambient.Coordinates

	// NewID generates queue item IDs. Defaults to random UUIDs.
	NewID func() string
}

// Engine owns the learner state and serialises every transition.
type Engine struct {
	catalog *catalog.Catalog
	prefs   *store.Prefs
	events  store.EventRepo
	metrics *metrics.Metrics
	logger  zerolog.Logger
	builder *ambient.Builder
	rand    ambient.Rand
	newID   func() string

	mu    sync.Mutex
	state State

	hookMu    sync.Mutex
	sinks     []func(Event)
	onAmbient func(bool)
}

// New creates an Engine, restoring persisted state from opts.Prefs.
func New(ctx context.Context, opts Options) *Engine {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Rand == nil {
		opts.Rand = ambient.SystemRand{}
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	cfg := ambient.DefaultConfig()
	if opts.Ambient != nil {
		cfg = *opts.Ambient
	}
	if opts.Prefs == nil {
		opts.Prefs = store.NewPrefs(store.NewMemoryKV(), opts.Logger)
	}

	e := &Engine{
		catalog: opts.Catalog,
		prefs:   opts.Prefs,
		events:  opts.Events,
		metrics: opts.Metrics,
		logger:  opts.Logger,
		builder: ambient.NewBuilder(opts.Clock, opts.Rand, cfg),
		rand:    opts.Rand,
		newID:   opts.NewID,
	}
	e.state = e.load(ctx)
	if opts.Coords != nil {
		e.state = SetCoords(e.state, *opts.Coords)
	}
	e.observe(e.state)
	return e
}

func (e *Engine) load(ctx context.Context) State {
	s := DefaultState()
	s.Ambient = store.Get(ctx, e.prefs, KeyAmbient, s.Ambient)
	s.EnvTags = store.Get(ctx, e.prefs, KeyEnvTags, s.EnvTags)
	seen := store.Get(ctx, e.prefs, KeySeen, map[string]int{})
	for id, n := range seen {
		if n > 0 {
			s.Seen[id] = n
		}
	}
	return s
}

// Catalog returns the lesson catalog.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Subscribe registers fn to receive events. fn runs on the goroutine that
// performed the transition, after the engine lock is released.
func (e *Engine) Subscribe(fn func(Event)) {
	e.hookMu.Lock()
	defer e.hookMu.Unlock()
	e.sinks = append(e.sinks, fn)
}

// Tick runs one ambient selection: build a context, pick a lesson and try to
// enqueue it. It does nothing while ambient mode is off.
func (e *Engine) Tick(ctx context.Context) (queue.Item, bool) {
	e.mu.Lock()
	if !e.state.Ambient {
		e.mu.Unlock()
		e.countAttempt("auto", "skipped")
		return queue.Item{}, false
	}
	item := e.pick(e.builder.Auto(e.state.EnvTags, e.state.Coords))
	next, ok := Enqueue(e.state, item)
	e.state = next
	snap := next.Clone()
	e.mu.Unlock()

	return item, e.afterEnqueue(ctx, "auto", item, ok, snap)
}

// Trigger runs a manual selection scoped to tag, regardless of ambient mode.
func (e *Engine) Trigger(ctx context.Context, tag string) (queue.Item, bool, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return queue.Item{}, false, ErrEmptyTag
	}
	e.mu.Lock()
	if e.metrics != nil {
		e.metrics.Triggers.WithLabelValues(triggerKind(e.state.EnvTags, tag)).Inc()
	}
	item := e.pick(e.builder.Manual(tag, e.state.Coords))
	next, ok := EnqueueManual(e.state, item)
	e.state = next
	snap := next.Clone()
	e.mu.Unlock()

	return item, e.afterEnqueue(ctx, "manual", item, ok, snap), nil
}

// pick must be called with e.mu held.
func (e *Engine) pick(actx ambient.Context) queue.Item {
	lesson := selector.Pick(e.catalog, actx, e.state.Profile.Skills, e.state.Seen, e.rand)
	return queue.Item{
		ID:          e.newID(),
		Lesson:      lesson,
		Context:     actx,
		TriggeredAt: e.builder.Clock().Now(),
	}
}

func (e *Engine) afterEnqueue(ctx context.Context, source string, item queue.Item, ok bool, snap State) bool {
	if !ok {
		result := "duplicate"
		if !snap.Queue.Contains(item.Lesson.ID) {
			result = "full"
		}
		e.countAttempt(source, result)
		e.logger.Debug().
			Str("source", source).
			Str("lesson", item.Lesson.ID).
			Str("result", result).
			Msg("selection not queued")
		return false
	}

	e.countAttempt(source, "enqueued")
	e.observe(snap)
	e.logger.Info().
		Str("source", source).
		Str("lesson", item.Lesson.ID).
		Str("time_of_day", string(item.Context.TimeOfDay)).
		Str("mood", item.Context.Mood).
		Strs("tags", item.Context.Tags).
		Msg("lesson queued")
	e.record(ctx, store.LessonEventData{
		LessonID: item.Lesson.ID,
		Kind:     store.EventEnqueued,
		Context:  describe(item.Context),
	})

	it := item
	e.emit(Event{
		Type:   EventEnqueued,
		Item:   &it,
		Notice: fmt.Sprintf("%s %s is ready", item.Lesson.Icon, item.Lesson.Title),
		Pulse:  true,
		State:  snap,
	})
	return true
}

// Open displays a lesson, queued or not, and credits it.
func (e *Engine) Open(ctx context.Context, lessonID string) (catalog.Lesson, error) {
	lesson, ok := e.catalog.Get(lessonID)
	if !ok {
		return catalog.Lesson{}, fmt.Errorf("%w: %q", ErrUnknownLesson, lessonID)
	}

	e.mu.Lock()
	e.state = Open(e.state, lesson)
	snap := e.state.Clone()
	e.prefs.Set(ctx, KeySeen, snap.Seen)
	e.mu.Unlock()

	if e.metrics != nil {
		e.metrics.LessonsOpened.WithLabelValues(lesson.ID).Inc()
		e.metrics.XPAwarded.Add(float64(lesson.XP))
	}
	e.observe(snap)
	e.record(ctx, store.LessonEventData{LessonID: lesson.ID, Kind: store.EventOpened, XP: lesson.XP})
	e.emit(Event{
		Type:   EventOpened,
		Lesson: &lesson,
		Notice: fmt.Sprintf("+%d XP · streak %d", lesson.XP, snap.Profile.Streak),
		State:  snap,
	})
	return lesson, nil
}

// Dismiss closes the displayed lesson without side effects.
func (e *Engine) Dismiss() {
	e.mu.Lock()
	had := e.state.Current != nil
	e.state = Dismiss(e.state)
	snap := e.state.Clone()
	e.mu.Unlock()

	if had {
		e.emit(Event{Type: EventDismissed, State: snap})
	}
}

// Complete marks the displayed lesson done.
func (e *Engine) Complete(ctx context.Context) (catalog.Lesson, error) {
	e.mu.Lock()
	next, done, err := Complete(e.state)
	if err != nil {
		e.mu.Unlock()
		return catalog.Lesson{}, err
	}
	e.state = next
	snap := next.Clone()
	e.mu.Unlock()

	if e.metrics != nil {
		e.metrics.LessonsDone.WithLabelValues(done.ID).Inc()
	}
	e.record(ctx, store.LessonEventData{LessonID: done.ID, Kind: store.EventCompleted})
	e.emit(Event{
		Type:   EventCompleted,
		Lesson: &done,
		Notice: fmt.Sprintf("Completed %s", done.Title),
		State:  snap,
	})
	return done, nil
}

// Reset clears persisted keys and restores every default.
func (e *Engine) Reset(ctx context.Context) {
	e.mu.Lock()
	wasAmbient := e.state.Ambient
	e.state = Reset(e.state)
	snap := e.state.Clone()
	e.prefs.Clear(ctx, KeyAmbient, KeySeen, KeyEnvTags)
	e.mu.Unlock()

	if e.metrics != nil {
		e.metrics.Resets.Inc()
	}
	e.observe(snap)
	e.record(ctx, store.LessonEventData{Kind: store.EventReset})
	if wasAmbient != snap.Ambient {
		e.notifyAmbient(snap.Ambient)
	}
	e.emit(Event{Type: EventReset, Notice: "Progress reset", State: snap})
}

// AddTag adds an environment tag. It reports whether the tags changed.
func (e *Engine) AddTag(ctx context.Context, tag string) bool {
	return e.editTags(ctx, func(s State) (State, bool) { return AddTag(s, tag) })
}

// RemoveTag removes an environment tag. It reports whether the tags changed.
func (e *Engine) RemoveTag(ctx context.Context, tag string) bool {
	return e.editTags(ctx, func(s State) (State, bool) { return RemoveTag(s, tag) })
}

func (e *Engine) editTags(ctx context.Context, fn func(State) (State, bool)) bool {
	e.mu.Lock()
	next, changed := fn(e.state)
	if !changed {
		e.mu.Unlock()
		return false
	}
	e.state = next
	snap := next.Clone()
	e.prefs.Set(ctx, KeyEnvTags, snap.EnvTags)
	e.mu.Unlock()

	e.emit(Event{Type: EventTagsChanged, State: snap})
	return true
}

// SetAmbient turns ambient mode on or off and persists the flag. After
// SetAmbient(ctx, false) returns, Tick leaves the queue alone until ambient
// mode is turned back on.
func (e *Engine) SetAmbient(ctx context.Context, on bool) {
	e.mu.Lock()
	e.state = SetAmbient(e.state, on)
	snap := e.state.Clone()
	e.prefs.Set(ctx, KeyAmbient, on)
	e.mu.Unlock()

	e.observe(snap)
	e.notifyAmbient(on)

	notice := "Ambient mode off"
	if on {
		notice = "Ambient mode on"
	}
	e.emit(Event{Type: EventAmbientChanged, Notice: notice, State: snap})
}

// Locate requests the position once in the background. Failures leave the
// known position untouched. The returned channel closes when the lookup ends.
func (e *Engine) Locate(ctx context.Context, loc geo.Locator) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		c, err := loc.Locate(ctx)
		if err != nil {
			e.logger.Debug().Err(err).Msg("location lookup failed")
			return
		}
		e.mu.Lock()
		e.state = SetCoords(e.state, c)
		snap := e.state.Clone()
		e.mu.Unlock()
		e.emit(Event{Type: EventLocated, State: snap})
	}()
	return done
}

func (e *Engine) emit(ev Event) {
	e.hookMu.Lock()
	sinks := append([]func(Event){}, e.sinks...)
	e.hookMu.Unlock()
	for _, fn := range sinks {
		fn(ev)
	}
}

func (e *Engine) notifyAmbient(on bool) {
	e.hookMu.Lock()
	fn := e.onAmbient
	e.hookMu.Unlock()
	if fn != nil {
		fn(on)
	}
}

func (e *Engine) record(ctx context.Context, data store.LessonEventData) {
	if e.events == nil {
		return
	}
	if err := e.events.AppendLessonEvent(ctx, data); err != nil {
		e.logger.Debug().Err(err).Str("kind", string(data.Kind)).Msg("event log write failed")
	}
}

func (e *Engine) observe(s State) {
	if e.metrics == nil {
		return
	}
	e.metrics.QueueDepth.Set(float64(s.Queue.Len()))
	if s.Ambient {
		e.metrics.AmbientEnabled.Set(1)
	} else {
		e.metrics.AmbientEnabled.Set(0)
	}
}

func (e *Engine) countAttempt(source, result string) {
	if e.metrics != nil {
		e.metrics.Ticks.WithLabelValues(source, result).Inc()
	}
}

// triggerKind buckets a manual tag for metrics so free-form tags do not
// become label values.
func triggerKind(envTags []string, tag string) string {
	if slices.Contains(envTags, tag) {
		return "env"
	}
	return "custom"
}

func describe(c ambient.Context) string {
	return fmt.Sprintf("%s/%s [%s]", c.TimeOfDay, c.Mood, strings.Join(c.Tags, ","))
}
