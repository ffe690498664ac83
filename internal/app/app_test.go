package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/nudge/internal/engine"
	"github.com/abhisek/nudge/internal/router"
	"github.com/abhisek/nudge/internal/screen"
)

type stubScreen struct{ title string }

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return s.title }
func (s *stubScreen) Title() string                          { return s.title }

func newTestModel(t *testing.T) AppModel {
	t.Helper()
	eng := engine.New(context.Background(), engine.Options{})
	return newAppModel(context.Background(), eng, nil)
}

func TestNoticeShowsToastUntilExpiry(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.Update(EngineEventMsg{Event: engine.Event{Type: engine.EventOpened, Notice: "+25 XP"}})
	m = next.(AppModel)
	require.NotNil(t, cmd)
	assert.Equal(t, "+25 XP", m.toast)

	// A second notice supersedes the first; the stale expiry is ignored.
	next, _ = m.Update(EngineEventMsg{Event: engine.Event{Type: engine.EventCompleted, Notice: "Completed"}})
	m = next.(AppModel)
	next, _ = m.Update(toastExpiredMsg{seq: 1})
	m = next.(AppModel)
	assert.Equal(t, "Completed", m.toast)

	next, _ = m.Update(toastExpiredMsg{seq: m.toastSeq})
	m = next.(AppModel)
	assert.Empty(t, m.toast)
}

func TestPulse(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(EngineEventMsg{Event: engine.Event{Type: engine.EventEnqueued, Pulse: true}})
	m = next.(AppModel)
	assert.True(t, m.pulse)
	assert.Empty(t, m.toast)

	next, _ = m.Update(pulseExpiredMsg{seq: m.pulseSeq})
	m = next.(AppModel)
	assert.False(t, m.pulse)
}

func TestResetReturnsHome(t *testing.T) {
	m := newTestModel(t)
	m.router.Push(&stubScreen{title: "lesson"})
	m.router.Push(&stubScreen{title: "tags"})

	next, _ := m.Update(EngineEventMsg{Event: engine.Event{Type: engine.EventReset, Notice: "Progress reset"}})
	m = next.(AppModel)

	assert.Equal(t, 1, m.router.Depth())
	assert.Equal(t, "Home", m.router.Active().Title())
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewUsesAltScreen(t *testing.T) {
	m := newTestModel(t)
	for _, size := range []tea.WindowSizeMsg{{Width: 40, Height: 10}, {Width: 100, Height: 40}} {
		next, _ := m.Update(size)
		m = next.(AppModel)

		v := m.View()
		assert.True(t, v.AltScreen)
		assert.NotNil(t, v.Content)
	}
}

func TestPopMsgReachesRouter(t *testing.T) {
	m := newTestModel(t)
	m.router.Push(&stubScreen{title: "history"})

	next, _ := m.Update(router.PopScreenMsg{})
	m = next.(AppModel)
	assert.Equal(t, 1, m.router.Depth())
}
