// Package tui renders the watch face in a terminal using Bubbletea and maps
// keys onto the three watch buttons.
package tui

import (
	"reflect"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// Controller is the state machine driven by the model.
type Controller interface {
	ports.EventHandler
	State() domain.TimerState
}

// PulseLog exposes the haptic pulses emitted so far.
type PulseLog interface {
	Count() int
	Last() (domain.Pulse, bool)
}

// flashTicks is how many seconds a pulse stays visible.
const flashTicks = 2

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// tickMsg is sent once per second.
type tickMsg time.Time

// Model is the Bubbletea model of the watch face.
type Model struct {
	ctrl     Controller
	face     ports.FaceSource
	pulses   PulseLog
	theme    config.ThemeConfig
	keys     keyMap
	help     help.Model
	progress progress.Model
	width    int
	height   int

	seenPulses int
	flash      domain.Pulse
	flashLeft  int
}

// NewModel creates a watch face model. The face is read from face after
// every event; pulses may be nil when no flash should be shown.
func NewModel(ctrl Controller, face ports.FaceSource, pulses PulseLog, theme *config.ThemeConfig) Model {
	m := Model{
		ctrl:     ctrl,
		face:     face,
		pulses:   pulses,
		theme:    resolveTheme(theme),
		keys:     defaultKeyMap,
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	if pulses != nil {
		m.seenPulses = pulses.Count()
	}
	return m
}

// Init starts the one-second tick.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = min(msg.Width/2, 40)
		return m, nil

	case tickMsg:
		if m.flashLeft > 0 {
			m.flashLeft--
		}
		m.ctrl.OnTick()
		m.notePulses()
		return m, tickCmd()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Select):
			m.ctrl.OnSelectPressed()
		case key.Matches(msg, m.keys.Up):
			m.ctrl.OnUpPressed()
		case key.Matches(msg, m.keys.Down):
			m.ctrl.OnDownPressed()
		}
		m.notePulses()
		return m, nil
	}

	return m, nil
}

// notePulses starts a flash when the controller emitted a new pulse.
func (m *Model) notePulses() {
	if m.pulses == nil {
		return
	}
	n := m.pulses.Count()
	if n == m.seenPulses {
		return
	}
	m.seenPulses = n
	if p, ok := m.pulses.Last(); ok {
		m.flash = p
		m.flashLeft = flashTicks
	}
}

// phaseColor returns the accent color for the phase.
func (m Model) phaseColor(p domain.Phase) lipgloss.Color {
	switch p {
	case domain.PhaseWorking:
		return lipgloss.Color(m.theme.ColorWork)
	case domain.PhaseOnBreak:
		return lipgloss.Color(m.theme.ColorBreak)
	case domain.PhasePaused:
		return lipgloss.Color(m.theme.ColorPaused)
	default:
		return lipgloss.Color(m.theme.ColorIdle)
	}
}

// iconGlyph maps an action bar icon to its themed glyph.
func (m Model) iconGlyph(icon domain.Icon) string {
	switch icon {
	case domain.IconPlay:
		return m.theme.IconPlay
	case domain.IconPause:
		return m.theme.IconPause
	case domain.IconStop:
		return m.theme.IconStop
	default:
		return " "
	}
}

// View renders the watch face.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	state := m.ctrl.State()
	face := m.face.Snapshot()
	color := m.phaseColor(state.Phase)

	countStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorCount))
	labelStyle := lipgloss.NewStyle().Foreground(color)

	watch := lipgloss.JoinVertical(lipgloss.Center,
		countStyle.Render(m.theme.IconCycle+" "+face.CycleCountText),
		"",
		renderBigTime(face.DurationText, color, m.width),
		"",
		labelStyle.Render(strings.ToUpper(domain.GetPhaseLabel(state.Phase))),
		m.progress.ViewAs(state.Progress()),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Center, watch, "   ", m.viewActionBar(face, lipgloss.Height(watch)))

	sections := []string{body, ""}
	if m.flashLeft > 0 {
		sections = append(sections, m.viewPulse())
	} else {
		sections = append(sections, "")
	}
	sections = append(sections, m.help.View(m.keys))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// viewActionBar draws the button column with up at the top, select in the
// middle and down at the bottom.
func (m Model) viewActionBar(face ports.Face, height int) string {
	height = max(height, 5)
	rows := make([]string, height)
	for i := range rows {
		rows[i] = " "
	}
	rows[0] = m.iconGlyph(face.Icons[domain.ButtonUp])
	rows[height/2] = m.iconGlyph(face.Icons[domain.ButtonSelect])
	rows[height-1] = m.iconGlyph(face.Icons[domain.ButtonDown])

	barStyle := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.ColorActionBar)).
		Foreground(lipgloss.Color("#FFFFFF")).
		Padding(0, 1)
	return barStyle.Render(strings.Join(rows, "\n"))
}

func (m Model) viewPulse() string {
	text := m.theme.IconShortPulse
	if m.flash == domain.PulseLong {
		text = m.theme.IconLongPulse
	}
	return lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(m.theme.ColorPulse)).Render(text)
}

// tickCmd creates a command that sends a tick message.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
