package lesson

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/nudge/internal/engine"
	"github.com/abhisek/nudge/internal/router"
)

func openLesson(t *testing.T, id string) (*LessonScreen, *engine.Engine) {
	t.Helper()
	ctx := context.Background()
	eng := engine.New(ctx, engine.Options{})
	l, err := eng.Open(ctx, id)
	require.NoError(t, err)
	return New(ctx, eng, l), eng
}

func assertPops(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestCompleteKey(t *testing.T) {
	s, eng := openLesson(t, "pomodoro")

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'c', Text: "c"})

	assertPops(t, cmd)
	snap := eng.Snapshot()
	assert.Nil(t, snap.Current)
	assert.Equal(t, 1, snap.Completed)
	assert.Equal(t, 270, snap.Profile.XP)
}

func TestEscDismisses(t *testing.T) {
	s, eng := openLesson(t, "desk-stretch")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})

	assertPops(t, cmd)
	snap := eng.Snapshot()
	assert.Nil(t, snap.Current)
	assert.Equal(t, 0, snap.Completed)
}

func TestButtons(t *testing.T) {
	s, eng := openLesson(t, "rule-of-72")

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	assert.Equal(t, 1, s.buttons.Active())

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	assertPops(t, cmd)
	assert.Equal(t, 0, eng.Snapshot().Completed)
}

func TestView(t *testing.T) {
	s, _ := openLesson(t, "rule-of-72")
	out := s.View(90, 30)
	assert.Contains(t, out, "+30 XP credited")
	assert.Equal(t, "The Rule of 72", s.Title())
}
