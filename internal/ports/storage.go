// Package ports defines the interfaces (driven and driving ports)
// between the Pomodoro controller and its collaborators, following
// hexagonal architecture principles.
package ports

import (
	"context"

	"github.com/xvierd/pomo/internal/domain"
)

// TransitionRepository defines the interface for the transition journal.
// This is a driven port (implemented by adapters).
type TransitionRepository interface {
	// Save appends a transition to the journal.
	Save(ctx context.Context, t domain.Transition) error

	// FindRecent returns up to limit transitions, newest first.
	FindRecent(ctx context.Context, limit int) ([]domain.Transition, error)

	// GetStats aggregates all recorded transitions.
	GetStats(ctx context.Context) (*domain.JournalStats, error)
}

// Storage is the combined journal storage interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// Transitions provides access to the transition journal.
	Transitions() TransitionRepository

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}
