package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// transitionRepository implements ports.TransitionRepository using SQLite.
type transitionRepository struct {
	db *sql.DB
}

// newTransitionRepository creates a new transition repository.
func newTransitionRepository(db *sql.DB) ports.TransitionRepository {
	return &transitionRepository{db: db}
}

// Save appends a transition to the journal.
func (r *transitionRepository) Save(ctx context.Context, t domain.Transition) error {
	query := `
		INSERT INTO transitions (
			id, from_phase, to_phase, trigger_event, elapsed_seconds, completed_cycles, at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		string(t.From),
		string(t.To),
		string(t.Trigger),
		t.ElapsedSeconds,
		t.CompletedCycles,
		t.At,
	)
	if err != nil {
		return fmt.Errorf("failed to save transition: %w", err)
	}

	return nil
}

// FindRecent returns up to limit transitions, newest first.
func (r *transitionRepository) FindRecent(ctx context.Context, limit int) ([]domain.Transition, error) {
	if limit <= 0 {
		return nil, nil
	}

	query := `
		SELECT id, from_phase, to_phase, trigger_event, elapsed_seconds, completed_cycles, at
		FROM transitions
		ORDER BY seq DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transitions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transitions []domain.Transition
	for rows.Next() {
		var (
			t                 domain.Transition
			from, to, trigger string
		)
		if err := rows.Scan(&t.ID, &from, &to, &trigger, &t.ElapsedSeconds, &t.CompletedCycles, &t.At); err != nil {
			return nil, fmt.Errorf("failed to scan transition: %w", err)
		}
		t.From = domain.Phase(from)
		t.To = domain.Phase(to)
		t.Trigger = domain.Event(trigger)
		transitions = append(transitions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transitions: %w", err)
	}

	return transitions, nil
}

// GetStats aggregates all recorded transitions.
func (r *transitionRepository) GetStats(ctx context.Context) (*domain.JournalStats, error) {
	query := `
		SELECT
			COUNT(*) as transitions,
			COUNT(CASE WHEN from_phase = 'working' AND to_phase = 'on_break' THEN 1 END) as cycles,
			COUNT(CASE WHEN from_phase = 'on_break' AND to_phase = 'idle' AND trigger_event = 'tick' THEN 1 END) as breaks,
			COUNT(CASE WHEN from_phase = 'on_break' AND to_phase = 'idle' AND trigger_event != 'tick' THEN 1 END) as stops,
			COUNT(CASE WHEN to_phase = 'paused' THEN 1 END) as pauses
		FROM transitions
	`

	stats := &domain.JournalStats{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.Transitions,
		&stats.CyclesCompleted,
		&stats.BreaksFinished,
		&stats.ManualStops,
		&stats.Pauses,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get journal stats: %w", err)
	}

	var last time.Time
	err = r.db.QueryRowContext(ctx, `SELECT at FROM transitions ORDER BY seq DESC LIMIT 1`).Scan(&last)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("failed to get last transition: %w", err)
	default:
		stats.LastTransition = &last
	}

	return stats, nil
}
