package home

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/nudge/internal/engine"
	"github.com/abhisek/nudge/internal/logging"
	"github.com/abhisek/nudge/internal/router"
	"github.com/abhisek/nudge/internal/screen"
	"github.com/abhisek/nudge/internal/screens/history"
	"github.com/abhisek/nudge/internal/screens/lesson"
	"github.com/abhisek/nudge/internal/screens/tags"
	"github.com/abhisek/nudge/internal/store"
	"github.com/abhisek/nudge/internal/ui/components"
	"github.com/abhisek/nudge/internal/ui/layout"
)

// HomeScreen shows the profile, ambient status, environment tags and the
// lesson queue.
type HomeScreen struct {
	ctx    context.Context
	engine *engine.Engine
	events store.EventRepo

	queue  components.Menu
	tagIdx int
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen. events may be nil, which hides history.
func New(ctx context.Context, eng *engine.Engine, events store.EventRepo) *HomeScreen {
	h := &HomeScreen{ctx: ctx, engine: eng, events: events}
	h.refresh(eng.Snapshot())
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Open"},
		{Key: "a", Description: "Ambient"},
		{Key: "←→ t", Description: "Trigger"},
		{Key: "e", Description: "Tags"},
	}
	if h.events != nil {
		hints = append(hints, layout.KeyHint{Key: "h", Description: "History"})
	}
	return append(hints,
		layout.KeyHint{Key: "r", Description: "Reset"},
		layout.KeyHint{Key: "q", Description: "Quit"},
	)
}

// refresh rebuilds the queue list from s, keeping the selection in range.
func (h *HomeScreen) refresh(s engine.State) {
	items := s.Queue.Items()
	menuItems := make([]components.MenuItem, 0, len(items))
	for _, it := range items {
		menuItems = append(menuItems, components.MenuItem{
			Label:  fmt.Sprintf("%s %s", it.Lesson.Icon, it.Lesson.Title),
			Detail: fmt.Sprintf("+%d XP · %s · %s", it.Lesson.XP, it.Context.TimeOfDay, it.Context.Mood),
		})
	}
	h.queue = h.queue.SetItems(menuItems)
	if n := len(s.EnvTags); n > 0 {
		h.tagIdx = ((h.tagIdx % n) + n) % n
	} else {
		h.tagIdx = 0
	}
}

// selectedTag returns the environment tag a manual trigger would use.
func (h *HomeScreen) selectedTag(s engine.State) (string, bool) {
	if len(s.EnvTags) == 0 {
		return "", false
	}
	return s.EnvTags[h.tagIdx], true
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	snap := h.engine.Snapshot()
	h.refresh(snap)

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return h, nil
	}

	switch kmsg.String() {
	case "q":
		return h, tea.Quit
	case "a":
		h.engine.SetAmbient(h.ctx, !snap.Ambient)
	case "t":
		if tag, ok := h.selectedTag(snap); ok {
			if _, _, err := h.engine.Trigger(h.ctx, tag); err != nil {
				logging.FromCtx(h.ctx).Debug().Err(err).Msg("manual trigger failed")
			}
		}
	case "left":
		h.tagIdx--
	case "right":
		h.tagIdx++
	case "enter":
		items := snap.Queue.Items()
		if len(items) == 0 {
			return h, nil
		}
		return h, h.open(items[h.queue.Selected].Lesson.ID)
	case "r":
		h.engine.Reset(h.ctx)
	case "e":
		return h, func() tea.Msg {
			return router.PushScreenMsg{Screen: tags.New(h.ctx, h.engine)}
		}
	case "h":
		if h.events == nil {
			return h, nil
		}
		return h, func() tea.Msg {
			return router.PushScreenMsg{Screen: history.New(h.ctx, h.events)}
		}
	default:
		h.queue, _ = h.queue.Update(msg)
		return h, nil
	}

	h.refresh(h.engine.Snapshot())
	return h, nil
}

func (h *HomeScreen) open(lessonID string) tea.Cmd {
	l, err := h.engine.Open(h.ctx, lessonID)
	if err != nil {
		logging.FromCtx(h.ctx).Debug().Err(err).Str("lesson", lessonID).Msg("open failed")
		return nil
	}
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: lesson.New(h.ctx, h.engine, l)}
	}
}

func (h *HomeScreen) View(width, height int) string {
	snap := h.engine.Snapshot()
	h.refresh(snap)

	compact := layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight)
	cw := components.ContentWidth(width)

	sections := []string{
		renderProfile(snap, cw, compact),
		renderAmbient(snap, cw),
		renderTags(snap, h.tagIdx, cw),
		renderQueue(h.queue, snap.Queue.Len(), cw),
	}
	return components.Frame(joinSections(sections, compact), width, height)
}
