package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nudge/internal/engine"
	"github.com/abhisek/nudge/internal/geo"
	"github.com/abhisek/nudge/internal/router"
	"github.com/abhisek/nudge/internal/scheduler"
	"github.com/abhisek/nudge/internal/screen"
	"github.com/abhisek/nudge/internal/screens/home"
	"github.com/abhisek/nudge/internal/store"
	"github.com/abhisek/nudge/internal/ui/layout"
)

const (
	toastDuration = 3 * time.Second
	pulseDuration = 800 * time.Millisecond
)

// EngineEventMsg carries an engine event into the program.
type EngineEventMsg struct {
	Event engine.Event
}

type toastExpiredMsg struct{ seq int }

type pulseExpiredMsg struct{ seq int }

// Options configures Run.
type Options struct {
	Engine    *engine.Engine
	Events    store.EventRepo
	Scheduler *scheduler.Scheduler
	Locator   geo.Locator
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	engine *engine.Engine
	width  int
	height int

	toast    string
	toastSeq int
	pulse    bool
	pulseSeq int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(ctx context.Context, eng *engine.Engine, events store.EventRepo) AppModel {
	return AppModel{
		router: router.New(home.New(ctx, eng, events)),
		engine: eng,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case EngineEventMsg:
		return m.handleEvent(msg.Event)

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case pulseExpiredMsg:
		if msg.seq == m.pulseSeq {
			m.pulse = false
		}
		return m, nil
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) handleEvent(ev engine.Event) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if ev.Notice != "" {
		m.toast = ev.Notice
		m.toastSeq++
		seq := m.toastSeq
		cmds = append(cmds, tea.Tick(toastDuration, func(time.Time) tea.Msg {
			return toastExpiredMsg{seq: seq}
		}))
	}

	if ev.Pulse {
		m.pulse = true
		m.pulseSeq++
		seq := m.pulseSeq
		cmds = append(cmds, tea.Tick(pulseDuration, func(time.Time) tea.Msg {
			return pulseExpiredMsg{seq: seq}
		}))
	}

	// A reset invalidates whatever lesson or editor is on top.
	if ev.Type == engine.EventReset {
		cmds = append(cmds, m.router.PopToRoot())
	}

	return m, tea.Batch(cmds...)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	snap := m.engine.Snapshot()
	header := layout.RenderHeader(title, layout.HeaderStats{
		XP:      snap.Profile.XP,
		Streak:  snap.Profile.Streak,
		Ambient: snap.Ambient,
		Pulse:   m.pulse,
	}, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(p.KeyHints(), footerHints...)
	}
	footer := layout.RenderFooter(footerHints, m.toast, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program. It drives the ambient scheduler from
// the engine and forwards engine events into the program until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(ctx, opts.Engine, opts.Events), tea.WithContext(ctx))

	// Send blocks until the program reads the message, and engine calls made
	// from Update would otherwise wait on themselves. One forwarding
	// goroutine keeps events in emission order.
	fwd := newForwarder()
	fwdCtx, stopFwd := context.WithCancel(ctx)
	fwdDone := make(chan struct{})
	go func() {
		defer close(fwdDone)
		fwd.run(fwdCtx, p.Send)
	}()
	defer func() {
		stopFwd()
		<-fwdDone
	}()
	opts.Engine.Subscribe(func(ev engine.Event) {
		fwd.push(EngineEventMsg{Event: ev})
	})

	if opts.Scheduler != nil {
		detach := opts.Engine.Attach(ctx, opts.Scheduler)
		defer detach()
	}
	if opts.Locator != nil {
		opts.Engine.Locate(ctx, opts.Locator)
	}

	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
