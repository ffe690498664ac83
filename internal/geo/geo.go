// Package geo provides best-effort, one-shot position lookups.
package geo

import (
	"context"
	"errors"

	"github.com/abhisek/nudge/internal/ambient"
)

// ErrUnavailable is returned when no position can be determined.
var ErrUnavailable = errors.New("location unavailable")

// Locator resolves the current position once.
type Locator interface {
	Locate(ctx context.Context) (ambient.Coordinates, error)
}

// StaticLocator always reports a fixed position.
type StaticLocator struct {
	Coords ambient.Coordinates
}

func (s StaticLocator) Locate(ctx context.Context) (ambient.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return ambient.Coordinates{}, err
	}
	return s.Coords, nil
}

// NoopLocator never finds a position.
type NoopLocator struct{}

func (NoopLocator) Locate(context.Context) (ambient.Coordinates, error) {
	return ambient.Coordinates{}, ErrUnavailable
}

// FromCoords returns a StaticLocator for c, or a NoopLocator when c is nil.
func FromCoords(c *ambient.Coordinates) Locator {
	if c == nil {
		return NoopLocator{}
	}
	return StaticLocator{Coords: *c}
}
