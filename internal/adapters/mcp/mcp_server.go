// Package mcp provides the MCP (Model Context Protocol) server that lets an
// agent press the watch buttons and read the face.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

const (
	// maxTickCount caps a single tick call at one hour of simulated time.
	maxTickCount = 3600
	// defaultHistoryLimit is used when get_history has no limit.
	defaultHistoryLimit = 10
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server        *server.MCPServer
	stateProvider ports.MCPStateProvider
	running       atomic.Bool
	cancel        context.CancelFunc
	in            io.Reader
	out           io.Writer
}

// NewServer creates a new MCP server instance.
func NewServer(stateProvider ports.MCPStateProvider, version string) *Server {
	s := &Server{
		stateProvider: stateProvider,
		in:            os.Stdin,
		out:           os.Stdout,
	}

	s.server = server.NewMCPServer(
		"pomo",
		version,
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"press_select",
			mcp.WithDescription("Press the middle (select) button: start work, skip to the break, end the break, or resume"),
		),
		s.pressHandler(domain.EventSelect),
	)

	s.server.AddTool(
		mcp.NewTool(
			"press_up",
			mcp.WithDescription("Press the top (up) button. It has no effect on the timer"),
		),
		s.pressHandler(domain.EventUp),
	)

	s.server.AddTool(
		mcp.NewTool(
			"press_down",
			mcp.WithDescription("Press the bottom (down) button: pause a running work interval"),
		),
		s.pressHandler(domain.EventDown),
	)

	s.server.AddTool(
		mcp.NewTool(
			"tick",
			mcp.WithDescription("Advance the timer by whole seconds"),
			mcp.WithNumber(
				"count",
				mcp.Description(fmt.Sprintf("Number of seconds to advance (default 1, max %d)", maxTickCount)),
			),
		),
		s.handleTick,
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_face",
			mcp.WithDescription("Get what the watch face shows: duration text, cycle count, and action bar icons"),
		),
		s.handleGetFace,
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_state",
			mcp.WithDescription("Get the timer phase, elapsed seconds, and completed cycles"),
		),
		s.handleGetState,
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_history",
			mcp.WithDescription("Get recent phase transitions, newest first, with journal totals"),
			mcp.WithNumber(
				"limit",
				mcp.Description(fmt.Sprintf("Maximum number of transitions (default %d)", defaultHistoryLimit)),
			),
		),
		s.handleGetHistory,
	)
}

// Start serves MCP requests over stdio until ctx is done or the client
// disconnects.
func (s *Server) Start(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)
	s.running.Store(true)
	defer s.running.Store(false)

	stdio := server.NewStdioServer(s.server)
	return stdio.Listen(ctx, s.in, s.out)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	return s.running.Load()
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

// pressHandler returns a tool handler that delivers ev and replies with the
// resulting face and state.
func (s *Server) pressHandler(ev domain.Event) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := s.stateProvider.Press(ctx, ev); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to press %s: %v", ev, err)), nil
		}
		return s.snapshotResult(ctx)
	}
}

// handleTick handles the tick tool.
func (s *Server) handleTick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	count := request.GetInt("count", 1)
	if count < 1 || count > maxTickCount {
		return mcp.NewToolResultError(fmt.Sprintf("count must be between 1 and %d", maxTickCount)), nil
	}

	for i := 0; i < count; i++ {
		if err := s.stateProvider.Press(ctx, domain.EventTick); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to tick: %v", err)), nil
		}
	}
	return s.snapshotResult(ctx)
}

// handleGetFace handles the get_face tool.
func (s *Server) handleGetFace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	face, err := s.stateProvider.Face(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get face: %w", err)
	}
	return jsonResult(faceData(face))
}

// handleGetState handles the get_state tool.
func (s *Server) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.stateProvider.State(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get state: %w", err)
	}
	return jsonResult(stateData(state))
}

// handleGetHistory handles the get_history tool.
func (s *Server) handleGetHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", defaultHistoryLimit)
	if limit < 1 {
		return mcp.NewToolResultError("limit must be positive"), nil
	}

	transitions, err := s.stateProvider.History(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	stats, err := s.stateProvider.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	items := make([]map[string]interface{}, 0, len(transitions))
	for _, t := range transitions {
		items = append(items, map[string]interface{}{
			"id":               t.ID,
			"from":             string(t.From),
			"to":               string(t.To),
			"trigger":          string(t.Trigger),
			"elapsed_seconds":  t.ElapsedSeconds,
			"completed_cycles": t.CompletedCycles,
			"at":               t.At.Format("2006-01-02T15:04:05"),
		})
	}

	result := map[string]interface{}{
		"transitions": items,
		"total_count": len(items),
	}
	if stats != nil {
		result["stats"] = map[string]interface{}{
			"transitions":      stats.Transitions,
			"cycles_completed": stats.CyclesCompleted,
			"breaks_finished":  stats.BreaksFinished,
			"manual_stops":     stats.ManualStops,
			"pauses":           stats.Pauses,
		}
	}
	return jsonResult(result)
}

func (s *Server) snapshotResult(ctx context.Context) (*mcp.CallToolResult, error) {
	state, err := s.stateProvider.State(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get state: %w", err)
	}
	face, err := s.stateProvider.Face(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get face: %w", err)
	}
	return jsonResult(map[string]interface{}{
		"state": stateData(state),
		"face":  faceData(face),
	})
}

func stateData(state domain.TimerState) map[string]interface{} {
	return map[string]interface{}{
		"phase":             string(state.Phase),
		"elapsed_seconds":   state.ElapsedSeconds,
		"remaining_seconds": state.RemainingSeconds(),
		"completed_cycles":  state.CompletedCycles,
	}
}

func faceData(face ports.Face) map[string]interface{} {
	icons := make(map[string]string, len(domain.Buttons))
	for _, b := range domain.Buttons {
		icons[string(b)] = string(face.Icons[b])
	}
	return map[string]interface{}{
		"duration":    face.DurationText,
		"cycle_count": face.CycleCountText,
		"icons":       icons,
	}
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
