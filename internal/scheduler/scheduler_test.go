package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNew_DefaultInterval(t *testing.T) {
	assert.Equal(t, DefaultInterval, New(0).Interval())
	assert.Equal(t, 15*time.Second, DefaultInterval)
	assert.Equal(t, time.Second, New(time.Second).Interval())
}

func TestStartStop_Ticks(t *testing.T) {
	s := New(5 * time.Millisecond)
	var n atomic.Int32

	assert.True(t, s.Start(context.Background(), func(context.Context) { n.Add(1) }))
	assert.True(t, s.Running())

	assert.Eventually(t, func() bool { return n.Load() >= 3 }, time.Second, time.Millisecond)

	s.Stop()
	assert.False(t, s.Running())
}

func TestStop_NoTicksAfterStop(t *testing.T) {
	s := New(2 * time.Millisecond)
	var n atomic.Int32
	s.Start(context.Background(), func(context.Context) { n.Add(1) })
	assert.Eventually(t, func() bool { return n.Load() > 0 }, time.Second, time.Millisecond)

	s.Stop()
	after := n.Load()
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, after, n.Load())
}

func TestStart_AlreadyRunning(t *testing.T) {
	s := New(time.Hour)
	defer s.Stop()

	assert.True(t, s.Start(context.Background(), func(context.Context) {}))
	assert.False(t, s.Start(context.Background(), func(context.Context) {}))
}

func TestStop_Idempotent(t *testing.T) {
	s := New(time.Hour)
	s.Stop()
	s.Start(context.Background(), func(context.Context) {})
	s.Stop()
	s.Stop()
	assert.False(t, s.Running())
}

func TestRestart(t *testing.T) {
	s := New(2 * time.Millisecond)
	var n atomic.Int32
	tick := func(context.Context) { n.Add(1) }

	s.Start(context.Background(), tick)
	s.Stop()
	before := n.Load()

	assert.True(t, s.Start(context.Background(), tick))
	assert.Eventually(t, func() bool { return n.Load() > before }, time.Second, time.Millisecond)
	s.Stop()
}

func TestParentContextCancelEndsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := New(time.Millisecond)
	s.Start(ctx, func(context.Context) {})

	cancel()
	// Stop still returns promptly and releases the slot.
	s.Stop()
	assert.False(t, s.Running())
}
