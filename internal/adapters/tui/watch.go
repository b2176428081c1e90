package tui

import (
	"context"
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
)

// ErrNotTerminal is returned when the watch face cannot take over the terminal.
var ErrNotTerminal = errors.New("stdin is not a terminal")

// Run shows the watch face full screen and blocks until the user quits or
// ctx is done.
func Run(ctx context.Context, m Model) error {
	if !term.IsTerminal(os.Stdin.Fd()) {
		return ErrNotTerminal
	}
	if w, h, err := term.GetSize(os.Stdout.Fd()); err == nil {
		m.width, m.height = w, h
		m.help.Width = w
		m.progress.Width = min(w/2, 40)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
