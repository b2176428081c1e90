// Package ticker provides the one-second tick source.
package ticker

import (
	"context"
	"time"

	"github.com/xvierd/pomo/internal/ports"
)

// Clock abstracts ticker creation for testing.
type Clock interface {
	NewTicker(d time.Duration) Ticker
}

// Ticker wraps time.Ticker for testing.
type Ticker interface {
	// C returns the channel on which ticks are delivered.
	C() <-chan time.Time

	// Stop turns off the ticker.
	Stop()
}

// SystemClock is the default Clock implementation using the standard library.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) NewTicker(d time.Duration) Ticker {
	return &systemTicker{t: time.NewTicker(d)}
}

type systemTicker struct {
	t *time.Ticker
}

func (s *systemTicker) C() <-chan time.Time { return s.t.C }
func (s *systemTicker) Stop()               { s.t.Stop() }

// SecondTicker implements ports.TickSource. A tick that the receiver is too
// slow to take is dropped, not queued.
type SecondTicker struct {
	clock Clock
}

// NewSecondTicker creates a tick source on clock; nil means SystemClock.
func NewSecondTicker(clock Clock) *SecondTicker {
	if clock == nil {
		clock = SystemClock
	}
	return &SecondTicker{clock: clock}
}

// Ensure SecondTicker implements ports.TickSource.
var _ ports.TickSource = (*SecondTicker)(nil)

// Run implements ports.TickSource.
func (s *SecondTicker) Run(ctx context.Context, onTick func()) error {
	t := s.clock.NewTicker(time.Second)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C():
			onTick()
		}
	}
}
