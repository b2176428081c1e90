package domain

import (
	"time"

	"github.com/google/uuid"
)

// Transition records one phase change of the timer.
type Transition struct {
	ID              string
	From            Phase
	To              Phase
	Trigger         Event
	ElapsedSeconds  int // elapsed in From when it was left
	CompletedCycles int // count after the transition
	At              time.Time
}

// NewTransition creates a transition stamped with a fresh ID and the current time.
func NewTransition(from, to Phase, trigger Event, elapsed, cycles int) Transition {
	return Transition{
		ID:              uuid.New().String(),
		From:            from,
		To:              to,
		Trigger:         trigger,
		ElapsedSeconds:  elapsed,
		CompletedCycles: cycles,
		At:              time.Now(),
	}
}

// IsCycleCompletion reports whether the transition finished a work interval.
func (t Transition) IsCycleCompletion() bool {
	return t.From == PhaseWorking && t.To == PhaseOnBreak
}

// IsManual reports whether a button press caused the transition.
func (t Transition) IsManual() bool {
	return t.Trigger != EventTick
}

// JournalStats aggregates the transitions recorded in the journal.
type JournalStats struct {
	Transitions     int
	CyclesCompleted int
	BreaksFinished  int
	ManualStops     int
	Pauses          int
	LastTransition  *time.Time
}
