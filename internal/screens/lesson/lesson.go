package lesson

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nudge/internal/catalog"
	"github.com/abhisek/nudge/internal/engine"
	"github.com/abhisek/nudge/internal/logging"
	"github.com/abhisek/nudge/internal/router"
	"github.com/abhisek/nudge/internal/screen"
	"github.com/abhisek/nudge/internal/ui/components"
	"github.com/abhisek/nudge/internal/ui/layout"
	"github.com/abhisek/nudge/internal/ui/theme"
)

// LessonScreen displays an opened lesson until it is completed or dismissed.
type LessonScreen struct {
	ctx     context.Context
	engine  *engine.Engine
	lesson  catalog.Lesson
	buttons components.ButtonRow
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)

// New creates a LessonScreen for a lesson the engine has already opened.
func New(ctx context.Context, eng *engine.Engine, l catalog.Lesson) *LessonScreen {
	s := &LessonScreen{ctx: ctx, engine: eng, lesson: l}
	s.buttons = components.NewButtonRow(
		components.NewButton("Complete", true, s.complete),
		components.NewButton("Dismiss", false, s.dismiss),
	)
	return s
}

func (s *LessonScreen) Init() tea.Cmd {
	return nil
}

func (s *LessonScreen) Title() string {
	return s.lesson.Title
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "c", Description: "Complete"},
		{Key: "Esc", Description: "Dismiss"},
		{Key: "←→ Enter", Description: "Choose"},
	}
}

func (s *LessonScreen) complete() tea.Cmd {
	if _, err := s.engine.Complete(s.ctx); err != nil {
		logging.FromCtx(s.ctx).Debug().Err(err).Str("lesson", s.lesson.ID).Msg("complete failed")
	}
	return pop
}

func (s *LessonScreen) dismiss() tea.Cmd {
	s.engine.Dismiss()
	return pop
}

func pop() tea.Msg {
	return router.PopScreenMsg{}
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "c":
			return s, s.complete()
		case "esc":
			return s, s.dismiss()
		}
	}

	var cmd tea.Cmd
	s.buttons, cmd = s.buttons.Update(msg)
	return s, cmd
}

func (s *LessonScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	accent := theme.LessonColor(s.lesson.Color)

	title := lipgloss.NewStyle().Foreground(accent).Bold(true).
		Render(fmt.Sprintf("%s  %s", s.lesson.Icon, s.lesson.Title))

	tags := make([]string, 0, len(s.lesson.Tags))
	for _, t := range s.lesson.Tags {
		tags = append(tags, theme.Tag.Render("#"+t))
	}

	body := lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 4).Render(s.lesson.Body)
	reward := lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("+%d XP credited", s.lesson.XP))

	card := components.Card(strings.Join([]string{
		title,
		strings.Join(tags, " "),
		"",
		body,
		"",
		reward,
	}, "\n"), cw, accent)

	buttons := lipgloss.PlaceHorizontal(cw+2, lipgloss.Center, s.buttons.View())
	return components.Frame(card+"\n\n"+buttons, width, height)
}
