package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// ErrJournalStopped is returned by reads issued after the journal loop exited.
var ErrJournalStopped = errors.New("journal stopped")

// journalOp is either a transition to append or a read to run in order.
type journalOp struct {
	transition *domain.Transition
	read       func(ctx context.Context)
	done       chan struct{}
}

// JournalService records phase transitions without blocking the controller.
// Writes and reads share one queue so a read observes every transition that
// was reported before it.
type JournalService struct {
	repo    ports.TransitionRepository
	ops     chan journalOp
	stopped chan struct{}
	logger  *slog.Logger
}

// NewJournalService creates a journal backed by repo. Call Run to start it.
func NewJournalService(repo ports.TransitionRepository, logger *slog.Logger) *JournalService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &JournalService{
		repo:    repo,
		ops:     make(chan journalOp, 256),
		stopped: make(chan struct{}),
		logger:  logger,
	}
}

// Ensure JournalService implements ports.TransitionObserver.
var _ ports.TransitionObserver = (*JournalService)(nil)

// OnTransition queues t for writing. It never blocks; when the queue is
// full the transition is dropped and logged.
func (s *JournalService) OnTransition(t domain.Transition) {
	select {
	case s.ops <- journalOp{transition: &t}:
	default:
		s.logger.Warn("journal queue full, dropping transition",
			"from", string(t.From), "to", string(t.To))
	}
}

// Run processes queued operations until ctx is done, then writes whatever
// transitions are still queued.
func (s *JournalService) Run(ctx context.Context) error {
	defer close(s.stopped)

	for {
		select {
		case <-ctx.Done():
			s.drain()
			return ctx.Err()
		case op := <-s.ops:
			s.apply(ctx, op)
		}
	}
}

func (s *JournalService) apply(ctx context.Context, op journalOp) {
	if op.transition != nil {
		// A queued transition is written even when shutdown has begun.
		if err := s.repo.Save(context.WithoutCancel(ctx), *op.transition); err != nil {
			s.logger.Error("failed to record transition", "error", err)
		}
		return
	}
	op.read(ctx)
	close(op.done)
}

func (s *JournalService) drain() {
	for {
		select {
		case op := <-s.ops:
			if op.transition == nil {
				close(op.done)
				continue
			}
			if err := s.repo.Save(context.Background(), *op.transition); err != nil {
				s.logger.Error("failed to record transition", "error", err)
			}
		default:
			return
		}
	}
}

// Recent returns up to limit transitions, newest first.
func (s *JournalService) Recent(ctx context.Context, limit int) ([]domain.Transition, error) {
	var (
		result []domain.Transition
		err    error
	)
	if runErr := s.read(ctx, func(rctx context.Context) {
		result, err = s.repo.FindRecent(rctx, limit)
	}); runErr != nil {
		return nil, runErr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load recent transitions: %w", err)
	}
	return result, nil
}

// Stats aggregates every recorded transition.
func (s *JournalService) Stats(ctx context.Context) (*domain.JournalStats, error) {
	var (
		result *domain.JournalStats
		err    error
	)
	if runErr := s.read(ctx, func(rctx context.Context) {
		result, err = s.repo.GetStats(rctx)
	}); runErr != nil {
		return nil, runErr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load journal stats: %w", err)
	}
	return result, nil
}

func (s *JournalService) read(ctx context.Context, fn func(context.Context)) error {
	ran := false
	op := journalOp{
		read: func(rctx context.Context) {
			fn(rctx)
			ran = true
		},
		done: make(chan struct{}),
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.stopped:
		return ErrJournalStopped
	case s.ops <- op:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-op.done:
	case <-s.stopped:
		select {
		case <-op.done:
		default:
			return ErrJournalStopped
		}
	}
	if !ran {
		return ErrJournalStopped
	}
	return nil
}
