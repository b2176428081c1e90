package domain

// TimerState is the whole mutable state of the Pomodoro timer.
// It is created once at startup and owned by the controller.
type TimerState struct {
	Phase           Phase
	ElapsedSeconds  int
	CompletedCycles int
}

// NewTimerState returns the initial state: idle, nothing elapsed, no cycles.
func NewTimerState() *TimerState {
	return &TimerState{Phase: PhaseIdle}
}

// TargetSeconds returns the countdown length of the current phase.
func (s *TimerState) TargetSeconds() int {
	return TargetSeconds(s.Phase)
}

// RemainingSeconds returns the seconds left in the current phase, never negative.
func (s *TimerState) RemainingSeconds() int {
	remaining := s.TargetSeconds() - s.ElapsedSeconds
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Progress returns the completion fraction (0.0 to 1.0) of the current phase.
func (s *TimerState) Progress() float64 {
	target := s.TargetSeconds()
	if target == 0 {
		return 0
	}
	progress := float64(s.ElapsedSeconds) / float64(target)
	if progress > 1 {
		return 1
	}
	return progress
}
