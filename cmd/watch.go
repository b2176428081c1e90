package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomo/internal/adapters/display"
	"github.com/xvierd/pomo/internal/adapters/haptics"
	"github.com/xvierd/pomo/internal/adapters/tui"
)

// runWatch opens the full-screen watch face.
func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := setupSignalHandler()
	defer cancel()

	stopJournal := startJournal(ctx)
	defer stopJournal()

	screen := display.NewScreen()
	pulses := haptics.NewRecorder()
	ctrl := newController(screen, haptics.Fanout{pulses, app.buzzer})

	model := tui.NewModel(ctrl, screen, pulses, &app.config.Theme)
	if err := tui.Run(ctx, model); err != nil {
		if errors.Is(err, tui.ErrNotTerminal) {
			return fmt.Errorf("%w: use \"pomo harness\" to drive the timer from a script", err)
		}
		return fmt.Errorf("watch face error: %w", err)
	}
	return nil
}
