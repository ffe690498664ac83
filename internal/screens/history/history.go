package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nudge/internal/router"
	"github.com/abhisek/nudge/internal/screen"
	"github.com/abhisek/nudge/internal/store"
	"github.com/abhisek/nudge/internal/ui/layout"
	"github.com/abhisek/nudge/internal/ui/theme"
)

const pageSize = 50

type historyLoadedMsg struct {
	Events []store.LessonEvent
	Counts map[store.EventKind]int
	Err    error
}

// HistoryScreen lists recent lesson events with per-kind totals.
type HistoryScreen struct {
	ctx       context.Context
	eventRepo store.EventRepo
	events    []store.LessonEvent
	counts    map[store.EventKind]int
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(ctx context.Context, eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		ctx:       ctx,
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		events, err := s.eventRepo.RecentLessonEvents(s.ctx, store.QueryOpts{Limit: pageSize})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		counts, err := s.eventRepo.CountByKind(s.ctx)
		if err != nil {
			counts = map[store.EventKind]int{}
		}
		return historyLoadedMsg{Events: events, Counts: counts}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
			s.counts = msg.Counts
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.events) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Nothing yet. Lessons you see will show up here.")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.summaryLine()))
	b.WriteString("\n\n")

	// Leave room for the summary and padding.
	visible := max(height-4, 1)
	start := 0
	if s.selected >= visible {
		start = s.selected - visible + 1
	}

	for i := start; i < len(s.events) && i < start+visible; i++ {
		ev := s.events[i]
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		subject := ev.LessonID
		if subject == "" {
			subject = "-"
		}
		line := fmt.Sprintf("%s%s  %-9s  %-20s", prefix, ev.Timestamp.Format("Jan 02 15:04"), ev.Kind, subject)
		if ev.XP > 0 {
			line += fmt.Sprintf("  +%d XP", ev.XP)
		}

		style := lipgloss.NewStyle().Foreground(kindColor(ev.Kind))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] && ev.Context != "" {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
					Render("    context: "+ev.Context)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (s *HistoryScreen) summaryLine() string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	return dim.Render(fmt.Sprintf("%d queued · %d opened · %d completed · %d resets",
		s.counts[store.EventEnqueued],
		s.counts[store.EventOpened],
		s.counts[store.EventCompleted],
		s.counts[store.EventReset],
	))
}

func kindColor(k store.EventKind) color.Color {
	switch k {
	case store.EventEnqueued:
		return theme.Secondary
	case store.EventOpened:
		return theme.Primary
	case store.EventCompleted:
		return theme.Success
	case store.EventReset:
		return theme.Error
	default:
		return theme.Text
	}
}
