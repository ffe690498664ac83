package tags

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/nudge/internal/engine"
)

func typeText(s *TagsScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestAddTag(t *testing.T) {
	eng := engine.New(context.Background(), engine.Options{})
	s := New(context.Background(), eng)

	typeText(s, "gym")
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	assert.Equal(t, []string{"desk", "coffee-break", "commute", "gym"}, eng.Snapshot().EnvTags)
	assert.Len(t, s.list.Items, 4)
	assert.Empty(t, s.input.Value())
}

func TestAddDuplicateRejected(t *testing.T) {
	eng := engine.New(context.Background(), engine.Options{})
	s := New(context.Background(), eng)

	typeText(s, "desk")
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	assert.Len(t, eng.Snapshot().EnvTags, 3)
	assert.Equal(t, "desk", s.input.Value())
}

func TestRemoveSelected(t *testing.T) {
	eng := engine.New(context.Background(), engine.Options{})
	s := New(context.Background(), eng)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: 'd', Mod: tea.ModCtrl})

	assert.Equal(t, []string{"desk", "commute"}, eng.Snapshot().EnvTags)
	assert.Len(t, s.list.Items, 2)
}
