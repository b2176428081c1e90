// Package harness drives the timer from line-oriented text commands so that
// scripts and test tools can press buttons, advance the clock and read the
// face deterministically.
package harness

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

const (
	maxTicks            = 86400
	defaultHistoryLimit = 10
	prompt              = "> "
)

// errQuit ends Run without reporting an error.
var errQuit = errors.New("quit")

// Controller is the state machine the harness drives.
type Controller interface {
	Handle(ev domain.Event)
	State() domain.TimerState
}

// PulseLog exposes the haptic pulses emitted so far.
type PulseLog interface {
	Pulses() []domain.Pulse
}

// Journal answers history queries.
type Journal interface {
	Recent(ctx context.Context, limit int) ([]domain.Transition, error)
	Stats(ctx context.Context) (*domain.JournalStats, error)
}

// Session executes harness commands against one controller.
type Session struct {
	ctrl    Controller
	face    ports.FaceSource
	pulses  PulseLog
	journal Journal
	out     io.Writer
	json    bool
	logger  *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithJSON makes every reply a single JSON object per line.
func WithJSON(enabled bool) Option {
	return func(s *Session) {
		s.json = enabled
	}
}

// WithJournal enables the history command.
func WithJournal(j Journal) Option {
	return func(s *Session) {
		s.journal = j
	}
}

// WithPulses enables the pulses command.
func WithPulses(p PulseLog) Option {
	return func(s *Session) {
		s.pulses = p
	}
}

// WithLogger sets the logger used for command tracing.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a session that writes replies to out.
func New(ctrl Controller, face ports.FaceSource, out io.Writer, opts ...Option) *Session {
	s := &Session{
		ctrl:   ctrl,
		face:   face,
		out:    out,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsInteractive reports whether f is a terminal, in which case Run should
// print a prompt.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(f.Fd())
}

// Run reads commands from in until EOF, quit or ctx is done. Failed
// commands produce an error reply and the session continues.
func (s *Session) Run(ctx context.Context, in io.Reader, showPrompt bool) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if showPrompt {
			fmt.Fprint(s.out, prompt)
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read commands: %w", err)
			}
			return nil
		}

		err := s.Exec(ctx, scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			s.logger.Debug("command failed", "line", scanner.Text(), "error", err)
			s.replyError(err)
		}
	}
}

// Exec runs a single command line. Blank lines and lines starting with '#'
// are ignored.
func (s *Session) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}

	cmd, err := resolve(strings.ToLower(fields[0]))
	if err != nil {
		return err
	}
	s.logger.Debug("command", "name", cmd.name, "args", fields[1:])

	return cmd.run(s, ctx, fields[1:])
}

func (s *Session) press(ev domain.Event) error {
	s.ctrl.Handle(ev)
	return s.reply("ok", map[string]interface{}{"ok": true, "command": string(ev)})
}

func (s *Session) cmdSelect(ctx context.Context, args []string) error {
	return s.press(domain.EventSelect)
}
func (s *Session) cmdUp(ctx context.Context, args []string) error   { return s.press(domain.EventUp) }
func (s *Session) cmdDown(ctx context.Context, args []string) error { return s.press(domain.EventDown) }

func (s *Session) cmdTick(ctx context.Context, args []string) error {
	n, err := intArg(args, 1, maxTicks)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		s.ctrl.Handle(domain.EventTick)
	}
	return s.reply("ok", map[string]interface{}{"ok": true, "command": "tick", "count": n})
}

func (s *Session) cmdDuration(ctx context.Context, args []string) error {
	text := s.face.Snapshot().DurationText
	return s.reply(text, map[string]interface{}{"duration": text})
}

func (s *Session) cmdCount(ctx context.Context, args []string) error {
	text := s.face.Snapshot().CycleCountText
	return s.reply(text, map[string]interface{}{"count": text})
}

func (s *Session) cmdIcons(ctx context.Context, args []string) error {
	face := s.face.Snapshot()
	icons := make(map[string]string, len(domain.Buttons))
	parts := make([]string, 0, len(domain.Buttons))
	for _, b := range domain.Buttons {
		icon := face.Icons[b]
		icons[string(b)] = string(icon)
		name := string(icon)
		if icon == domain.IconNone {
			name = "none"
		}
		parts = append(parts, string(b)+"="+name)
	}
	return s.reply(strings.Join(parts, " "), map[string]interface{}{"icons": icons})
}

func (s *Session) cmdState(ctx context.Context, args []string) error {
	st := s.ctrl.State()
	text := fmt.Sprintf("phase=%s elapsed=%d cycles=%d", st.Phase, st.ElapsedSeconds, st.CompletedCycles)
	return s.reply(text, map[string]interface{}{
		"phase":            string(st.Phase),
		"elapsed_seconds":  st.ElapsedSeconds,
		"completed_cycles": st.CompletedCycles,
	})
}

func (s *Session) cmdPulses(ctx context.Context, args []string) error {
	var pulses []domain.Pulse
	if s.pulses != nil {
		pulses = s.pulses.Pulses()
	}
	names := make([]string, len(pulses))
	for i, p := range pulses {
		names[i] = string(p)
	}
	text := strings.Join(names, " ")
	if text == "" {
		text = "none"
	}
	return s.reply(text, map[string]interface{}{"pulses": names})
}

func (s *Session) cmdHistory(ctx context.Context, args []string) error {
	if s.journal == nil {
		return errors.New("history is not available without a journal")
	}
	limit, err := intArg(args, defaultHistoryLimit, 1000)
	if err != nil {
		return err
	}
	transitions, err := s.journal.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if s.json {
		items := make([]map[string]interface{}, len(transitions))
		for i, t := range transitions {
			items[i] = map[string]interface{}{
				"from":             string(t.From),
				"to":               string(t.To),
				"trigger":          string(t.Trigger),
				"elapsed_seconds":  t.ElapsedSeconds,
				"completed_cycles": t.CompletedCycles,
				"at":               t.At.Format("2006-01-02T15:04:05"),
			}
		}
		return s.writeJSON(map[string]interface{}{"history": items})
	}

	if len(transitions) == 0 {
		_, err := fmt.Fprintln(s.out, "no transitions")
		return err
	}
	for _, t := range transitions {
		if _, err := fmt.Fprintf(s.out, "%s %s -> %s (%s) cycles=%d\n",
			t.At.Format("15:04:05"), t.From, t.To, t.Trigger, t.CompletedCycles); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) cmdStats(ctx context.Context, args []string) error {
	if s.journal == nil {
		return errors.New("stats are not available without a journal")
	}
	stats, err := s.journal.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to read stats: %w", err)
	}
	text := fmt.Sprintf("transitions=%d cycles=%d breaks=%d stops=%d pauses=%d",
		stats.Transitions, stats.CyclesCompleted, stats.BreaksFinished, stats.ManualStops, stats.Pauses)
	return s.reply(text, map[string]interface{}{
		"transitions":      stats.Transitions,
		"cycles_completed": stats.CyclesCompleted,
		"breaks_finished":  stats.BreaksFinished,
		"manual_stops":     stats.ManualStops,
		"pauses":           stats.Pauses,
	})
}

func (s *Session) cmdHelp(ctx context.Context, args []string) error {
	if s.json {
		names := make([]string, len(commands))
		for i, c := range commands {
			names[i] = c.name
		}
		return s.writeJSON(map[string]interface{}{"commands": names})
	}
	for _, c := range commands {
		usage := strings.TrimSpace(c.name + " " + c.args)
		if _, err := fmt.Fprintf(s.out, "  %-12s %s\n", usage, c.summary); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) cmdQuit(ctx context.Context, args []string) error {
	return errQuit
}

// reply writes text in plain mode or data in JSON mode.
func (s *Session) reply(text string, data map[string]interface{}) error {
	if s.json {
		return s.writeJSON(data)
	}
	_, err := fmt.Fprintln(s.out, text)
	return err
}

func (s *Session) replyError(err error) {
	if s.json {
		_ = s.writeJSON(map[string]interface{}{"error": err.Error()})
		return
	}
	fmt.Fprintf(s.out, "error: %v\n", err)
}

func (s *Session) writeJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal reply: %w", err)
	}
	_, err = fmt.Fprintln(s.out, string(data))
	return err
}

// intArg parses the optional first argument as an integer in [1, limit].
func intArg(args []string, def, limit int) (int, error) {
	if len(args) == 0 {
		return def, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", args[0])
	}
	if n < 1 || n > limit {
		return 0, fmt.Errorf("number must be between 1 and %d", limit)
	}
	return n, nil
}
