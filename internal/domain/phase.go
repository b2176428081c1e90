// Package domain holds the Pomodoro timer state and the value types the
// controller exchanges with its collaborators.
package domain

// Phase is the lifecycle segment the timer is currently in.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseWorking Phase = "working"
	PhasePaused  Phase = "paused"
	PhaseOnBreak Phase = "on_break"
)

const (
	// WorkTargetSeconds is the length of one work interval (25 minutes).
	WorkTargetSeconds = 1500
	// BreakTargetSeconds is the length of one break (5 minutes).
	BreakTargetSeconds = 300
)

// TargetSeconds returns the countdown length shown for the phase.
// Idle and Paused show the work target.
func TargetSeconds(p Phase) int {
	if p == PhaseOnBreak {
		return BreakTargetSeconds
	}
	return WorkTargetSeconds
}

// IsCounting reports whether ticks advance the timer in this phase.
func (p Phase) IsCounting() bool {
	return p == PhaseWorking || p == PhaseOnBreak
}

// GetPhaseLabel returns a human-readable label for the phase.
func GetPhaseLabel(p Phase) string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseWorking:
		return "Working"
	case PhasePaused:
		return "Paused"
	case PhaseOnBreak:
		return "On Break"
	default:
		return "Unknown"
	}
}

// Button identifies one of the three physical buttons.
type Button string

const (
	ButtonUp     Button = "up"
	ButtonSelect Button = "select"
	ButtonDown   Button = "down"
)

// Buttons lists the buttons top to bottom.
var Buttons = []Button{ButtonUp, ButtonSelect, ButtonDown}

// Icon is the glyph shown next to a button in the action bar.
type Icon string

const (
	IconNone  Icon = ""
	IconPlay  Icon = "play"
	IconPause Icon = "pause"
	IconStop  Icon = "stop"
)

// Event is one input delivered to the state machine.
type Event string

const (
	EventSelect Event = "select"
	EventUp     Event = "up"
	EventDown   Event = "down"
	EventTick   Event = "tick"
)

// Pulse is a haptic feedback request.
type Pulse string

const (
	PulseShort Pulse = "short"
	PulseLong  Pulse = "long"
)
