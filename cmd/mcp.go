package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomo/internal/adapters/display"
	"github.com/xvierd/pomo/internal/adapters/mcp"
	"github.com/xvierd/pomo/internal/adapters/ticker"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/services"
)

var mcpRealtime bool

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server exposes the watch buttons, the clock tick, and the face as tools.

By default the clock only advances through the "tick" tool. With --realtime
(or mcp.realtime in the config) it also advances once per wall-clock second.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := setupSignalHandler()
		defer cancel()

		stopJournal := startJournal(ctx)
		defer stopJournal()

		screen := display.NewScreen()
		ctrl := newController(screen, app.buzzer)

		ctx, stopDispatch := context.WithCancel(ctx)
		dispatcher := services.NewDispatcher(ctrl)
		go func() { _ = dispatcher.Run(ctx) }()
		// The journal drains only after the last transition is reported.
		defer func() {
			stopDispatch()
			<-dispatcher.Stopped()
		}()

		if mcpRealtime || app.config.MCP.Realtime {
			clock := ticker.NewSecondTicker(nil)
			go func() {
				_ = clock.Run(ctx, func() {
					if err := dispatcher.Dispatch(ctx, domain.EventTick); err != nil {
						app.logger.Debug("realtime tick dropped", "error", err)
					}
				})
			}()
			app.logger.Debug("realtime ticks enabled")
		}

		state := services.NewStateService(dispatcher, screen)
		state.SetJournal(app.journal)

		server := mcp.NewServer(state, Version)
		if err := server.Start(ctx); err != nil && ctx.Err() == nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}

func init() {
	mcpCmd.Flags().BoolVar(&mcpRealtime, "realtime", false, "Advance the clock once per second")
}
