package home

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/nudge/internal/ambient"
	"github.com/abhisek/nudge/internal/engine"
	"github.com/abhisek/nudge/internal/router"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newTestHome(t *testing.T) (*HomeScreen, *engine.Engine) {
	t.Helper()
	eng := engine.New(context.Background(), engine.Options{Rand: ambient.SeededRand(7)})
	return New(context.Background(), eng, nil), eng
}

func TestToggleAmbient(t *testing.T) {
	h, eng := newTestHome(t)
	require.True(t, eng.Snapshot().Ambient)

	h.Update(keyPress('a'))
	assert.False(t, eng.Snapshot().Ambient)

	h.Update(keyPress('a'))
	assert.True(t, eng.Snapshot().Ambient)
}

func TestTriggerUsesSelectedTag(t *testing.T) {
	h, eng := newTestHome(t)

	h.Update(specialKey(tea.KeyRight))
	assert.Equal(t, 1, h.tagIdx)

	h.Update(keyPress('t'))

	items := eng.Snapshot().Queue.Items()
	require.Len(t, items, 1)
	assert.Equal(t, []string{"coffee-break", "manual"}, items[0].Context.Tags)
}

func TestTagSelectionWraps(t *testing.T) {
	h, _ := newTestHome(t)

	h.Update(specialKey(tea.KeyLeft))
	assert.Equal(t, 2, h.tagIdx)
}

func TestEnterOpensSelectedLesson(t *testing.T) {
	h, eng := newTestHome(t)
	h.Update(keyPress('t'))
	queued := eng.Snapshot().Queue.Items()[0].Lesson

	_, cmd := h.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)

	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, queued.Title, push.Screen.Title())

	s := eng.Snapshot()
	assert.Equal(t, 0, s.Queue.Len())
	require.NotNil(t, s.Current)
	assert.Equal(t, 245+queued.XP, s.Profile.XP)
}

func TestEnterOnEmptyQueue(t *testing.T) {
	h, _ := newTestHome(t)
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd)
}

func TestReset(t *testing.T) {
	h, eng := newTestHome(t)
	h.Update(keyPress('t'))
	h.Update(keyPress('a'))

	h.Update(keyPress('r'))

	s := eng.Snapshot()
	assert.Equal(t, 0, s.Queue.Len())
	assert.True(t, s.Ambient)
}

func TestHistoryHiddenWithoutRepo(t *testing.T) {
	h, _ := newTestHome(t)
	_, cmd := h.Update(keyPress('h'))
	assert.Nil(t, cmd)
	for _, hint := range h.KeyHints() {
		assert.NotEqual(t, "History", hint.Description)
	}
}

func TestViewRenders(t *testing.T) {
	h, _ := newTestHome(t)
	h.Update(keyPress('t'))

	out := h.View(100, 34)
	assert.Contains(t, out, "Alex Chen")
	assert.Contains(t, out, "Up next (1/5)")
}
