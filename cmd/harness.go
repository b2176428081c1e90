package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomo/internal/adapters/display"
	"github.com/xvierd/pomo/internal/adapters/haptics"
	"github.com/xvierd/pomo/internal/harness"
)

var harnessScript string

// harnessCmd represents the harness command
var harnessCmd = &cobra.Command{
	Use:   "harness",
	Short: "Drive the timer with text commands",
	Long: `Read commands from stdin (or --script) and reply with what the watch shows.

Buttons:  select, up, down
Clock:    tick [n]
Queries:  duration, count, icons, state, pulses, history [n], stats
Other:    help, quit

Commands may be abbreviated. The clock only moves on "tick", so scripts are
deterministic. Use --json for one JSON object per reply.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := setupSignalHandler()
		defer cancel()

		var in io.Reader = cmd.InOrStdin()
		interactive := false
		if harnessScript != "" {
			f, err := os.Open(harnessScript)
			if err != nil {
				return fmt.Errorf("failed to open script: %w", err)
			}
			defer f.Close()
			in = f
		} else if in == os.Stdin {
			interactive = harness.IsInteractive(os.Stdin)
		}

		stopJournal := startJournal(ctx)
		defer stopJournal()

		screen := display.NewScreen()
		pulses := haptics.NewRecorder()
		ctrl := newController(screen, pulses)

		session := harness.New(ctrl, screen, cmd.OutOrStdout(),
			harness.WithJSON(jsonOutput),
			harness.WithPulses(pulses),
			harness.WithJournal(app.journal),
			harness.WithLogger(app.logger),
		)
		return session.Run(ctx, in, interactive)
	},
}

func init() {
	harnessCmd.Flags().StringVar(&harnessScript, "script", "", "Read commands from FILE instead of stdin")
}
