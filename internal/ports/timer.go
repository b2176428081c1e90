package ports

import (
	"context"

	"github.com/xvierd/pomo/internal/domain"
)

// Display renders the watch face.
// This is a driven port (called by the controller, implemented by adapters).
type Display interface {
	// SetDurationText shows the remaining time of the current phase.
	SetDurationText(text string)

	// SetCycleCountText shows the number of completed work intervals.
	SetCycleCountText(text string)

	// SetButtonIcon shows icon next to button; domain.IconNone clears it.
	SetButtonIcon(button domain.Button, icon domain.Icon)
}

// Haptics requests vibration feedback.
// This is a driven port. Calls are fire-and-forget.
type Haptics interface {
	// ShortPulse signals the start of a break.
	ShortPulse()

	// LongPulse signals the end of a break.
	LongPulse()
}

// EventHandler consumes button presses and clock ticks.
// This is a driving port (implemented by the controller, called by adapters).
// Calls must be delivered serially.
type EventHandler interface {
	OnSelectPressed()
	OnUpPressed()
	OnDownPressed()
	OnTick()
}

// TickSource delivers one tick per elapsed second.
type TickSource interface {
	// Run calls onTick once per second until ctx is done.
	Run(ctx context.Context, onTick func()) error
}

// TransitionObserver is notified of every phase change.
type TransitionObserver interface {
	OnTransition(t domain.Transition)
}
