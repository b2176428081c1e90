package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/pomo/internal/adapters/storage"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

func setupTestStorage(t *testing.T) ports.Storage {
	t.Helper()
	store, err := storage.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func startJournal(t *testing.T, store ports.Storage) (*JournalService, context.CancelFunc) {
	t.Helper()
	j := NewJournalService(store.Transitions(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = j.Run(ctx) }()
	t.Cleanup(cancel)
	return j, cancel
}

func TestJournalService_RecordsControllerTransitions(t *testing.T) {
	store := setupTestStorage(t)
	journal, _ := startJournal(t, store)

	state := domain.NewTimerState()
	ctrl := NewPomodoroController(state, nopDisplay{}, nopHaptics{}, WithObserver(journal))

	ctrl.OnSelectPressed()
	for i := 0; i < domain.WorkTargetSeconds; i++ {
		ctrl.OnTick()
	}
	ctrl.OnSelectPressed()

	ctx := context.Background()
	recent, err := journal.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, domain.PhaseIdle, recent[0].To)
	assert.Equal(t, domain.PhaseOnBreak, recent[1].To)
	assert.Equal(t, domain.EventTick, recent[1].Trigger)
	assert.Equal(t, domain.PhaseWorking, recent[2].To)

	stats, err := journal.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Transitions)
	assert.Equal(t, 1, stats.CyclesCompleted)
	assert.Equal(t, 1, stats.ManualStops)
	assert.Equal(t, 0, stats.BreaksFinished)
}

func TestJournalService_OnTransitionNeverBlocks(t *testing.T) {
	store := setupTestStorage(t)
	journal := NewJournalService(store.Transitions(), nil) // not running

	done := make(chan struct{})
	go func() {
		for i := 0; i < cap(journal.ops)+10; i++ {
			journal.OnTransition(domain.NewTransition(domain.PhaseIdle, domain.PhaseWorking, domain.EventSelect, 0, 0))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("OnTransition blocked on a full queue")
	}
}

func TestJournalService_DrainsOnShutdown(t *testing.T) {
	store := setupTestStorage(t)
	journal := NewJournalService(store.Transitions(), nil)

	journal.OnTransition(domain.NewTransition(domain.PhaseIdle, domain.PhaseWorking, domain.EventSelect, 0, 0))
	journal.OnTransition(domain.NewTransition(domain.PhaseWorking, domain.PhasePaused, domain.EventDown, 4, 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := journal.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))

	stats, err := store.Transitions().GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Transitions)
	assert.Equal(t, 1, stats.Pauses)

	_, err = journal.Recent(context.Background(), 5)
	assert.True(t, errors.Is(err, ErrJournalStopped), "got %v", err)
}

type nopDisplay struct{}

func (nopDisplay) SetDurationText(string)                   {}
func (nopDisplay) SetCycleCountText(string)                 {}
func (nopDisplay) SetButtonIcon(domain.Button, domain.Icon) {}

type nopHaptics struct{}

func (nopHaptics) ShortPulse() {}
func (nopHaptics) LongPulse()  {}
