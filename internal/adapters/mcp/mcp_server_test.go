package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/xvierd/pomo/internal/adapters/display"
	"github.com/xvierd/pomo/internal/adapters/haptics"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
	"github.com/xvierd/pomo/internal/services"
)

// mockStateProvider drives a real controller synchronously.
type mockStateProvider struct {
	ctrl     *services.PomodoroController
	screen   *display.Screen
	history  []domain.Transition
	stats    *domain.JournalStats
	pressErr error
	presses  []domain.Event
}

func newMockStateProvider(state *domain.TimerState) *mockStateProvider {
	m := &mockStateProvider{screen: display.NewScreen(), stats: &domain.JournalStats{}}
	m.ctrl = services.NewPomodoroController(state, m.screen, haptics.NewRecorder())
	m.ctrl.Render()
	return m
}

func (m *mockStateProvider) Press(ctx context.Context, ev domain.Event) error {
	if m.pressErr != nil {
		return m.pressErr
	}
	m.presses = append(m.presses, ev)
	m.ctrl.Handle(ev)
	return nil
}

func (m *mockStateProvider) State(ctx context.Context) (domain.TimerState, error) {
	return m.ctrl.State(), nil
}

func (m *mockStateProvider) Face(ctx context.Context) (ports.Face, error) {
	return m.screen.Snapshot(), nil
}

func (m *mockStateProvider) History(ctx context.Context, limit int) ([]domain.Transition, error) {
	if len(m.history) > limit {
		return m.history[:limit], nil
	}
	return m.history, nil
}

func (m *mockStateProvider) Stats(ctx context.Context) (*domain.JournalStats, error) {
	return m.stats, nil
}

func callArgs(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

// decode unmarshals the text content of a tool result.
func decode(t *testing.T, result *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	if result == nil {
		t.Fatal("nil result")
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %+v", result.Content)
	}
	if len(result.Content) == 0 {
		t.Fatal("empty content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want mcp.TextContent", result.Content[0])
	}
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(text.Text), &data); err != nil {
		t.Fatalf("invalid JSON %q: %v", text.Text, err)
	}
	return data
}

func TestNewServer(t *testing.T) {
	mock := newMockStateProvider(domain.NewTimerState())
	server := NewServer(mock, "test")

	if server == nil {
		t.Fatal("NewServer() returned nil")
	}
	if server.stateProvider != mock {
		t.Error("NewServer() did not set state provider correctly")
	}
	if server.server == nil {
		t.Error("NewServer() did not create MCP server")
	}
}

func TestServer_IsRunning(t *testing.T) {
	server := NewServer(newMockStateProvider(domain.NewTimerState()), "test")

	if server.IsRunning() {
		t.Error("IsRunning() should return false before Start()")
	}
}

func TestServer_Stop(t *testing.T) {
	server := NewServer(newMockStateProvider(domain.NewTimerState()), "test")

	// Stop before Start should not panic
	if err := server.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}

func TestServer_pressSelectStartsWork(t *testing.T) {
	mock := newMockStateProvider(domain.NewTimerState())
	server := NewServer(mock, "test")

	result, err := server.pressHandler(domain.EventSelect)(context.Background(), callArgs(nil))
	if err != nil {
		t.Fatalf("press_select error = %v", err)
	}
	data := decode(t, result)

	state := data["state"].(map[string]interface{})
	if state["phase"] != string(domain.PhaseWorking) {
		t.Errorf("phase = %v, want working", state["phase"])
	}
	face := data["face"].(map[string]interface{})
	if face["duration"] != "25:00" {
		t.Errorf("duration = %v, want 25:00", face["duration"])
	}
	icons := face["icons"].(map[string]interface{})
	if icons["select"] != string(domain.IconStop) || icons["down"] != string(domain.IconPause) {
		t.Errorf("icons = %v, want select=stop down=pause", icons)
	}
	if icons["up"] != "" {
		t.Errorf("up icon = %v, want empty", icons["up"])
	}
}

func TestServer_pressErrorIsToolError(t *testing.T) {
	mock := newMockStateProvider(domain.NewTimerState())
	mock.pressErr = errors.New("stopped")
	server := NewServer(mock, "test")

	result, err := server.pressHandler(domain.EventDown)(context.Background(), callArgs(nil))
	if err != nil {
		t.Fatalf("press_down error = %v", err)
	}
	if !result.IsError {
		t.Error("press failure should be reported as a tool error")
	}
}

func TestServer_handleTick(t *testing.T) {
	tests := []struct {
		name        string
		args        map[string]interface{}
		wantTicks   int
		wantError   bool
		wantElapsed float64
	}{
		{name: "default", args: nil, wantTicks: 1, wantElapsed: 1},
		{name: "count", args: map[string]interface{}{"count": float64(90)}, wantTicks: 90, wantElapsed: 90},
		{name: "zero", args: map[string]interface{}{"count": float64(0)}, wantError: true},
		{name: "too many", args: map[string]interface{}{"count": float64(maxTickCount + 1)}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockStateProvider(&domain.TimerState{Phase: domain.PhaseWorking})
			server := NewServer(mock, "test")

			result, err := server.handleTick(context.Background(), callArgs(tt.args))
			if err != nil {
				t.Fatalf("handleTick() error = %v", err)
			}
			if tt.wantError {
				if !result.IsError {
					t.Error("handleTick() should return error result")
				}
				if len(mock.presses) != 0 {
					t.Errorf("presses = %d, want none", len(mock.presses))
				}
				return
			}
			if len(mock.presses) != tt.wantTicks {
				t.Errorf("presses = %d, want %d", len(mock.presses), tt.wantTicks)
			}
			state := decode(t, result)["state"].(map[string]interface{})
			if state["elapsed_seconds"] != tt.wantElapsed {
				t.Errorf("elapsed = %v, want %v", state["elapsed_seconds"], tt.wantElapsed)
			}
		})
	}
}

func TestServer_handleTickCompletesCycle(t *testing.T) {
	mock := newMockStateProvider(&domain.TimerState{Phase: domain.PhaseWorking, ElapsedSeconds: 1495})
	server := NewServer(mock, "test")

	result, err := server.handleTick(context.Background(), callArgs(map[string]interface{}{"count": float64(5)}))
	if err != nil {
		t.Fatalf("handleTick() error = %v", err)
	}
	data := decode(t, result)
	face := data["face"].(map[string]interface{})
	if face["duration"] != "05:00" || face["cycle_count"] != "1" {
		t.Errorf("face = %v, want 05:00 and cycle count 1", face)
	}
}

func TestServer_handleGetFace(t *testing.T) {
	mock := newMockStateProvider(&domain.TimerState{Phase: domain.PhasePaused, ElapsedSeconds: 61, CompletedCycles: 3})
	server := NewServer(mock, "test")

	result, err := server.handleGetFace(context.Background(), callArgs(nil))
	if err != nil {
		t.Fatalf("handleGetFace() error = %v", err)
	}
	data := decode(t, result)
	if data["duration"] != "23:59" {
		t.Errorf("duration = %v, want 23:59", data["duration"])
	}
	if data["cycle_count"] != "3" {
		t.Errorf("cycle_count = %v, want 3", data["cycle_count"])
	}
}

func TestServer_handleGetState(t *testing.T) {
	mock := newMockStateProvider(&domain.TimerState{Phase: domain.PhaseOnBreak, ElapsedSeconds: 100, CompletedCycles: 2})
	server := NewServer(mock, "test")

	result, err := server.handleGetState(context.Background(), callArgs(nil))
	if err != nil {
		t.Fatalf("handleGetState() error = %v", err)
	}
	data := decode(t, result)
	if data["phase"] != string(domain.PhaseOnBreak) {
		t.Errorf("phase = %v, want on_break", data["phase"])
	}
	if data["remaining_seconds"] != float64(200) {
		t.Errorf("remaining_seconds = %v, want 200", data["remaining_seconds"])
	}
}

func TestServer_handleGetHistory(t *testing.T) {
	mock := newMockStateProvider(domain.NewTimerState())
	now := time.Now()
	mock.history = []domain.Transition{
		{ID: "b", From: domain.PhaseWorking, To: domain.PhaseOnBreak, Trigger: domain.EventTick, ElapsedSeconds: 0, CompletedCycles: 1, At: now},
		{ID: "a", From: domain.PhaseIdle, To: domain.PhaseWorking, Trigger: domain.EventSelect, At: now.Add(-time.Minute)},
	}
	mock.stats = &domain.JournalStats{Transitions: 2, CyclesCompleted: 1}
	server := NewServer(mock, "test")

	result, err := server.handleGetHistory(context.Background(), callArgs(map[string]interface{}{"limit": float64(1)}))
	if err != nil {
		t.Fatalf("handleGetHistory() error = %v", err)
	}
	data := decode(t, result)
	if data["total_count"] != float64(1) {
		t.Errorf("total_count = %v, want 1", data["total_count"])
	}
	items := data["transitions"].([]interface{})
	first := items[0].(map[string]interface{})
	if first["id"] != "b" || first["to"] != string(domain.PhaseOnBreak) {
		t.Errorf("first transition = %v", first)
	}
	stats := data["stats"].(map[string]interface{})
	if stats["cycles_completed"] != float64(1) {
		t.Errorf("cycles_completed = %v, want 1", stats["cycles_completed"])
	}
}

func TestServer_handleGetHistory_InvalidLimit(t *testing.T) {
	server := NewServer(newMockStateProvider(domain.NewTimerState()), "test")

	result, err := server.handleGetHistory(context.Background(), callArgs(map[string]interface{}{"limit": float64(0)}))
	if err != nil {
		t.Fatalf("handleGetHistory() error = %v", err)
	}
	if !result.IsError {
		t.Error("handleGetHistory() should return error for non-positive limit")
	}
}
