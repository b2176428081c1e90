package services

import (
	"io"
	"log/slog"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// PomodoroController runs the work/pause/break state machine.
// All methods must be called from a single goroutine; see Dispatcher for
// serializing concurrent callers.
type PomodoroController struct {
	state    *domain.TimerState
	display  ports.Display
	haptics  ports.Haptics
	observer ports.TransitionObserver
	logger   *slog.Logger
}

// ControllerOption configures a PomodoroController.
type ControllerOption func(*PomodoroController)

// WithObserver registers an observer for phase changes.
func WithObserver(o ports.TransitionObserver) ControllerOption {
	return func(c *PomodoroController) {
		c.observer = o
	}
}

// WithLogger sets the logger used for transition tracing.
func WithLogger(l *slog.Logger) ControllerOption {
	return func(c *PomodoroController) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewPomodoroController creates a controller that owns state.
func NewPomodoroController(state *domain.TimerState, display ports.Display, haptics ports.Haptics, opts ...ControllerOption) *PomodoroController {
	c := &PomodoroController{
		state:   state,
		display: display,
		haptics: haptics,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ensure PomodoroController implements ports.EventHandler.
var _ ports.EventHandler = (*PomodoroController)(nil)

// State returns a copy of the timer state.
func (c *PomodoroController) State() domain.TimerState {
	return *c.state
}

// Render paints the whole face from the current state.
func (c *PomodoroController) Render() {
	c.refreshIcons()
	c.refreshDuration()
	c.refreshCount()
}

// Handle dispatches ev to the matching handler.
func (c *PomodoroController) Handle(ev domain.Event) {
	switch ev {
	case domain.EventSelect:
		c.OnSelectPressed()
	case domain.EventUp:
		c.OnUpPressed()
	case domain.EventDown:
		c.OnDownPressed()
	case domain.EventTick:
		c.OnTick()
	default:
		c.logger.Warn("ignoring unknown event", "event", string(ev))
	}
}

// OnSelectPressed advances the primary cycle: idle -> working -> break -> idle.
// A paused interval resumes where it left off.
func (c *PomodoroController) OnSelectPressed() {
	switch c.state.Phase {
	case domain.PhaseIdle:
		c.startWork(domain.EventSelect)
	case domain.PhasePaused:
		c.resume()
	case domain.PhaseWorking:
		c.startBreak(domain.EventSelect)
	case domain.PhaseOnBreak:
		c.stop(domain.EventSelect)
	}
}

// OnDownPressed pauses a running work interval. No-op otherwise.
func (c *PomodoroController) OnDownPressed() {
	if c.state.Phase != domain.PhaseWorking {
		return
	}
	c.enter(domain.PhasePaused, domain.EventDown, false)
	c.refreshIcons()
}

// OnUpPressed is reserved and does nothing.
func (c *PomodoroController) OnUpPressed() {}

// OnTick advances the countdown while working or on break and moves to the
// next phase once the target is reached.
func (c *PomodoroController) OnTick() {
	if !c.state.Phase.IsCounting() {
		return
	}

	c.state.ElapsedSeconds++
	c.refreshDuration()

	if c.state.ElapsedSeconds < c.state.TargetSeconds() {
		return
	}

	if c.state.Phase == domain.PhaseOnBreak {
		c.haptics.LongPulse()
		c.stop(domain.EventTick)
		return
	}
	c.haptics.ShortPulse()
	c.startBreak(domain.EventTick)
}

func (c *PomodoroController) startWork(trigger domain.Event) {
	c.enter(domain.PhaseWorking, trigger, true)
	c.refreshIcons()
	c.refreshDuration()
}

func (c *PomodoroController) resume() {
	c.enter(domain.PhaseWorking, domain.EventSelect, false)
	c.refreshIcons()
	c.refreshDuration()
}

func (c *PomodoroController) startBreak(trigger domain.Event) {
	c.state.CompletedCycles++
	c.enter(domain.PhaseOnBreak, trigger, true)
	c.refreshIcons()
	c.refreshDuration()
	c.refreshCount()
}

func (c *PomodoroController) stop(trigger domain.Event) {
	c.enter(domain.PhaseIdle, trigger, true)
	c.refreshIcons()
	c.refreshDuration()
}

// enter switches phase and reports the transition.
func (c *PomodoroController) enter(to domain.Phase, trigger domain.Event, resetElapsed bool) {
	from := c.state.Phase
	left := c.state.ElapsedSeconds

	c.state.Phase = to
	if resetElapsed {
		c.state.ElapsedSeconds = 0
	}

	c.logger.Debug("phase transition",
		"from", string(from),
		"to", string(to),
		"trigger", string(trigger),
		"elapsed", left,
		"cycles", c.state.CompletedCycles,
	)

	if c.observer != nil {
		c.observer.OnTransition(domain.NewTransition(from, to, trigger, left, c.state.CompletedCycles))
	}
}

func (c *PomodoroController) refreshIcons() {
	selectIcon, downIcon := actionIcons(c.state.Phase)
	c.display.SetButtonIcon(domain.ButtonSelect, selectIcon)
	c.display.SetButtonIcon(domain.ButtonDown, downIcon)
}

func (c *PomodoroController) refreshDuration() {
	c.display.SetDurationText(domain.FormatDuration(c.state.TargetSeconds(), c.state.ElapsedSeconds))
}

func (c *PomodoroController) refreshCount() {
	c.display.SetCycleCountText(domain.FormatCycleCount(c.state.CompletedCycles))
}

// actionIcons returns the select and down icons for a phase.
func actionIcons(p domain.Phase) (selectIcon, downIcon domain.Icon) {
	switch p {
	case domain.PhaseWorking:
		return domain.IconStop, domain.IconPause
	case domain.PhaseOnBreak:
		return domain.IconStop, domain.IconNone
	default:
		return domain.IconPlay, domain.IconNone
	}
}
