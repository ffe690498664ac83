package store

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// failingKV fails every operation.
type failingKV struct{}

var errBroken = errors.New("broken")

func (failingKV) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errBroken }
func (failingKV) Set(context.Context, string, []byte) error          { return errBroken }
func (failingKV) Delete(context.Context, ...string) error            { return errBroken }

func TestPrefs_RoundTrip(t *testing.T) {
	ctx := context.Background()
	p := NewPrefs(NewMemoryKV(), zerolog.Nop())

	p.Set(ctx, "seen", map[string]int{"pomodoro": 3})
	p.Set(ctx, "tags", []string{"desk", "commute"})
	p.Set(ctx, "enabled", false)

	assert.Equal(t, map[string]int{"pomodoro": 3}, Get(ctx, p, "seen", map[string]int{}))
	assert.Equal(t, []string{"desk", "commute"}, Get(ctx, p, "tags", []string(nil)))
	assert.False(t, Get(ctx, p, "enabled", true))
}

func TestPrefs_FallbackWhenMissing(t *testing.T) {
	p := NewPrefs(NewMemoryKV(), zerolog.Nop())
	assert.True(t, Get(context.Background(), p, "enabled", true))
}

func TestPrefs_FallbackWhenUndecodable(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	_ = kv.Set(ctx, "tags", []byte("{not json"))
	p := NewPrefs(kv, zerolog.Nop())

	assert.Equal(t, []string{"x"}, Get(ctx, p, "tags", []string{"x"}))
}

func TestPrefs_SwallowsBackendErrors(t *testing.T) {
	ctx := context.Background()
	p := NewPrefs(failingKV{}, zerolog.Nop())

	assert.NotPanics(t, func() {
		p.Set(ctx, "k", 1)
		p.Clear(ctx, "k")
	})
	assert.Equal(t, 7, Get(ctx, p, "k", 7))
}

func TestPrefs_UnencodableValue(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	p := NewPrefs(kv, zerolog.Nop())

	p.Set(ctx, "bad", make(chan int))

	assert.Empty(t, kv.Keys())
}

func TestPrefs_Clear(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	p := NewPrefs(kv, zerolog.Nop())
	p.Set(ctx, "a", 1)
	p.Set(ctx, "b", 2)

	p.Clear(ctx, "a", "b")

	assert.Empty(t, kv.Keys())
}
