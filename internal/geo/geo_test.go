package geo

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/nudge/internal/ambient"
)

func TestFromCoords(t *testing.T) {
	if _, err := FromCoords(nil).Locate(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("nil coords: err = %v, want ErrUnavailable", err)
	}

	want := ambient.Coordinates{Lat: 40.7, Lon: -74.0}
	got, err := FromCoords(&want).Locate(context.Background())
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != want {
		t.Errorf("Locate = %+v, want %+v", got, want)
	}
}

func TestStaticLocator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := StaticLocator{}.Locate(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
