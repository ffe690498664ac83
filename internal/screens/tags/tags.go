package tags

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nudge/internal/engine"
	"github.com/abhisek/nudge/internal/router"
	"github.com/abhisek/nudge/internal/screen"
	"github.com/abhisek/nudge/internal/ui/components"
	"github.com/abhisek/nudge/internal/ui/layout"
	"github.com/abhisek/nudge/internal/ui/theme"
)

const maxTagLen = 32

// TagsScreen edits the environment tags.
type TagsScreen struct {
	ctx    context.Context
	engine *engine.Engine
	list   components.Menu
	input  components.TextInput
}

var _ screen.Screen = (*TagsScreen)(nil)
var _ screen.KeyHintProvider = (*TagsScreen)(nil)

// New creates a TagsScreen.
func New(ctx context.Context, eng *engine.Engine) *TagsScreen {
	s := &TagsScreen{
		ctx:    ctx,
		engine: eng,
		input:  components.NewTextInput("new tag", maxTagLen),
	}
	s.refresh()
	return s
}

func (s *TagsScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *TagsScreen) Title() string {
	return "Environment Tags"
}

func (s *TagsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Add"},
		{Key: "↑↓", Description: "Select"},
		{Key: "Ctrl+D", Description: "Remove"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TagsScreen) refresh() {
	envTags := s.engine.Snapshot().EnvTags
	items := make([]components.MenuItem, 0, len(envTags))
	for _, t := range envTags {
		items = append(items, components.MenuItem{Label: t})
	}
	s.list = s.list.SetItems(items)
}

func (s *TagsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "down":
			s.list, _ = s.list.Update(msg)
			return s, nil
		case "enter":
			ok := s.engine.AddTag(s.ctx, s.input.Value())
			s.input.Submit(ok)
			s.refresh()
			return s, nil
		case "ctrl+d", "delete":
			if len(s.list.Items) > 0 {
				s.engine.RemoveTag(s.ctx, s.list.Items[s.list.Selected].Label)
				s.refresh()
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *TagsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	list := theme.Hint.Render("No tags yet.")
	if len(s.list.Items) > 0 {
		list = s.list.View()
	}

	help := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render("Tags describe where you are. Lessons sharing a tag get surfaced.")

	card := components.Card(strings.Join([]string{help, "", list, "", s.input.View()}, "\n"), cw, nil)
	return components.Frame(card, width, height)
}
