package engine

import (
	"context"

	"github.com/abhisek/nudge/internal/scheduler"
)

// Attach drives sched from the ambient flag: the loop runs Tick while
// ambient mode is on and is cancelled when it is turned off. If ambient mode
// is already on, the loop starts immediately. The returned func stops the
// loop and unbinds the scheduler.
func (e *Engine) Attach(ctx context.Context, sched *scheduler.Scheduler) (detach func()) {
	tick := func(ctx context.Context) { e.Tick(ctx) }

	e.hookMu.Lock()
	e.onAmbient = func(on bool) {
		if on {
			sched.Start(ctx, tick)
		} else {
			sched.Stop()
		}
	}
	e.hookMu.Unlock()

	if e.Snapshot().Ambient {
		sched.Start(ctx, tick)
	}

	return func() {
		e.hookMu.Lock()
		e.onAmbient = nil
		e.hookMu.Unlock()
		sched.Stop()
	}
}
