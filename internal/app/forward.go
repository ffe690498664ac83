package app

import (
	"context"
	"sync"

	tea "charm.land/bubbletea/v2"
)

// forwarder hands messages to send one at a time, in the order they were
// pushed. Push never blocks, so engine calls made from Update can emit
// events without waiting on the program that is running them.
type forwarder struct {
	mu      sync.Mutex
	pending []tea.Msg
	wake    chan struct{}
}

func newForwarder() *forwarder {
	return &forwarder{wake: make(chan struct{}, 1)}
}

func (f *forwarder) push(msg tea.Msg) {
	f.mu.Lock()
	f.pending = append(f.pending, msg)
	f.mu.Unlock()

	select {
	case f.wake <- struct{}{}:
	default:
	}
}

// run delivers pending messages until ctx is done.
func (f *forwarder) run(ctx context.Context, send func(tea.Msg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-f.wake:
		}

		f.mu.Lock()
		batch := f.pending
		f.pending = nil
		f.mu.Unlock()

		for _, msg := range batch {
			if ctx.Err() != nil {
				return
			}
			send(msg)
		}
	}
}
