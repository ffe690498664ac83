package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/nudge/internal/screen"
)

// stubScreen is a minimal screen that records what reaches it.
type stubScreen struct {
	title   string
	initRan bool
	got     []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}

func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

type pingMsg struct{}

func TestPush(t *testing.T) {
	r := New(&stubScreen{title: "home"})

	lesson := &stubScreen{title: "lesson"}
	r.Push(lesson)

	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "lesson", r.Active().Title())
	assert.True(t, lesson.initRan)
}

func TestPop(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "lesson"})

	r.Pop()

	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "home", r.Active().Title())
}

func TestPopNoopAtBottom(t *testing.T) {
	r := New(&stubScreen{title: "home"})

	r.Pop()

	assert.Equal(t, 1, r.Depth())
}

func TestPopToRoot(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "tags"})
	r.Push(&stubScreen{title: "history"})

	r.Update(PopToRootMsg{})

	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "home", r.Active().Title())
}

func TestReplace(t *testing.T) {
	tests := []struct {
		name      string
		pushFirst bool
		wantDepth int
	}{
		{"at root", false, 1},
		{"above root", true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&stubScreen{title: "home"})
			if tt.pushFirst {
				r.Push(&stubScreen{title: "tags"})
			}

			next := &stubScreen{title: "lesson"}
			r.Update(ReplaceScreenMsg{Screen: next})

			assert.Equal(t, tt.wantDepth, r.Depth())
			assert.Equal(t, "lesson", r.Active().Title())
			assert.True(t, next.initRan)
		})
	}
}

func TestUpdateForwardsToActiveOnly(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)
	top := &stubScreen{title: "lesson"}
	r.Update(PushScreenMsg{Screen: top})

	r.Update(pingMsg{})

	require.Len(t, top.got, 1)
	assert.IsType(t, pingMsg{}, top.got[0])
	assert.Empty(t, home.got)
	assert.Equal(t, "lesson", r.View(80, 24))
}
