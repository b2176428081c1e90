package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/pomo/internal/domain"
)

func TestStateService_DrivesAndObserves(t *testing.T) {
	store := setupTestStorage(t)
	journal, _ := startJournal(t, store)

	f := newFixture(nil)
	f.ctrl = NewPomodoroController(f.state, f.screen, f.pulses, WithObserver(journal))
	f.ctrl.Render()
	d, _ := startDispatcher(t, f.ctrl)

	svc := NewStateService(d, f.screen)
	svc.SetJournal(journal)
	ctx := context.Background()

	require.NoError(t, svc.Press(ctx, domain.EventSelect))
	for i := 0; i < 61; i++ {
		require.NoError(t, svc.Press(ctx, domain.EventTick))
	}

	state, err := svc.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.TimerState{Phase: domain.PhaseWorking, ElapsedSeconds: 61}, state)

	face, err := svc.Face(ctx)
	require.NoError(t, err)
	assert.Equal(t, "23:59", face.DurationText)
	assert.Equal(t, "0", face.CycleCountText)
	assert.Equal(t, domain.IconStop, face.Icons[domain.ButtonSelect])
	assert.Equal(t, domain.IconPause, face.Icons[domain.ButtonDown])

	history, err := svc.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.PhaseWorking, history[0].To)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Transitions)
}

func TestStateService_WithoutJournal(t *testing.T) {
	f := newFixture(nil)
	d, _ := startDispatcher(t, f.ctrl)
	svc := NewStateService(d, f.screen)
	ctx := context.Background()

	history, err := svc.History(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, history)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Transitions)
}
