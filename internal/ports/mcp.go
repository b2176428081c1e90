package ports

import (
	"context"

	"github.com/xvierd/pomo/internal/domain"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}

// Face is what the display currently shows.
type Face struct {
	DurationText   string
	CycleCountText string
	Icons          map[domain.Button]domain.Icon
	// Revision counts draw calls and changes whenever anything is redrawn.
	Revision uint64
}

// MCPStateProvider drives and observes the timer for the MCP server.
// This is a driven port (implemented by the services layer).
type MCPStateProvider interface {
	// Press delivers a button press or tick.
	Press(ctx context.Context, ev domain.Event) error

	// State returns a copy of the timer state.
	State(ctx context.Context) (domain.TimerState, error)

	// Face returns what the display shows.
	Face(ctx context.Context) (Face, error)

	// History returns up to limit recent transitions, newest first.
	History(ctx context.Context, limit int) ([]domain.Transition, error)

	// Stats aggregates the transition journal.
	Stats(ctx context.Context) (*domain.JournalStats, error)
}

// FaceSource exposes what a display currently shows.
type FaceSource interface {
	Snapshot() Face
}
