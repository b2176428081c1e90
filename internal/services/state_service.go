package services

import (
	"context"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// StateService implements the MCPStateProvider interface on top of a
// running Dispatcher.
type StateService struct {
	dispatcher *Dispatcher
	face       ports.FaceSource
	journal    *JournalService
}

// NewStateService creates a new state service.
func NewStateService(dispatcher *Dispatcher, face ports.FaceSource) *StateService {
	return &StateService{dispatcher: dispatcher, face: face}
}

// SetJournal sets the journal used for history queries.
func (s *StateService) SetJournal(journal *JournalService) {
	s.journal = journal
}

// Ensure StateService implements ports.MCPStateProvider.
var _ ports.MCPStateProvider = (*StateService)(nil)

// Press implements ports.MCPStateProvider.
func (s *StateService) Press(ctx context.Context, ev domain.Event) error {
	return s.dispatcher.Dispatch(ctx, ev)
}

// State implements ports.MCPStateProvider.
func (s *StateService) State(ctx context.Context) (domain.TimerState, error) {
	var state domain.TimerState
	err := s.dispatcher.Query(ctx, func(c *PomodoroController) {
		state = c.State()
	})
	return state, err
}

// Face implements ports.MCPStateProvider.
// The snapshot is taken on the dispatch goroutine so it reflects every
// event delivered before the call.
func (s *StateService) Face(ctx context.Context) (ports.Face, error) {
	var face ports.Face
	err := s.dispatcher.Query(ctx, func(*PomodoroController) {
		face = s.face.Snapshot()
	})
	return face, err
}

// History implements ports.MCPStateProvider.
func (s *StateService) History(ctx context.Context, limit int) ([]domain.Transition, error) {
	if s.journal == nil {
		return nil, nil
	}
	return s.journal.Recent(ctx, limit)
}

// Stats implements ports.MCPStateProvider.
func (s *StateService) Stats(ctx context.Context) (*domain.JournalStats, error) {
	if s.journal == nil {
		return &domain.JournalStats{}, nil
	}
	return s.journal.Stats(ctx)
}
