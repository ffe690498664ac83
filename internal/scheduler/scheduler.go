// Package scheduler runs the ambient tick loop.
package scheduler

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is the ambient tick period.
const DefaultInterval = 15 * time.Second

// TickFunc is called once per tick with the scheduler's context.
type TickFunc func(ctx context.Context)

// Scheduler calls a TickFunc at a fixed interval between Start and Stop.
// Stopping cancels the loop outright; Start arms a fresh one.
type Scheduler struct {
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a stopped scheduler. A non-positive interval uses DefaultInterval.
func New(interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{interval: interval}
}

// Interval returns the tick period.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Start arms the loop. It returns false if the loop is already running.
// The loop also ends when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context, fn TickFunc) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return false
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	go s.loop(loopCtx, fn, done)
	return true
}

// Stop cancels the loop and waits for it to exit. It is a no-op when stopped.
// Stop must not be called from inside a TickFunc.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the loop is armed.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

func (s *Scheduler) loop(ctx context.Context, fn TickFunc, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// A cancel racing the tick wins.
			if ctx.Err() != nil {
				return
			}
			fn(ctx)
		}
	}
}
