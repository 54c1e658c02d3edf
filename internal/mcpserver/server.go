// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Uruz habit tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/uruz/internal/habitservice"
	"github.com/starford/uruz/internal/models"
	"github.com/starford/uruz/internal/store"
)

// Server wraps the MCP server with Uruz habit tools.
type Server struct {
	mcp *server.MCPServer
	svc *habitservice.Service
}

// New creates a new MCP server with all habit tools registered.
func New(svc *habitservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Uruz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_habits",
		mcp.WithDescription("List habits, newest first, one page at a time."),
		mcp.WithNumber("page", mcp.Description("Page number, 1-based (default 1)")),
		mcp.WithNumber("limit", mcp.Description("Page size (default 20, max 100)")),
		mcp.WithString("difficulty", mcp.Description("Optional difficulty filter: easy, medium or hard")),
	), s.listHabits)

	s.mcp.AddTool(mcp.NewTool("get_habit",
		mcp.WithDescription("Read a single habit record by id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Habit id (UUID)")),
	), s.getHabit)

	s.mcp.AddTool(mcp.NewTool("create_habit",
		mcp.WithDescription("Create a new habit. Records MUST follow the canonical habit format; "+
			"read it first via the get_habit_contract tool or the uruz://habit-format resource."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Habit title (1-100 characters)")),
		mcp.WithString("notes", mcp.Description("Optional notes (up to 500 characters)")),
		mcp.WithString("difficulty", mcp.Description("easy, medium or hard (default medium)")),
		mcp.WithBoolean("positive", mcp.Description("Track as a positive reinforcement habit")),
		mcp.WithBoolean("negative", mcp.Description("Track as a negative/avoidance habit")),
	), s.createHabit)

	s.mcp.AddTool(mcp.NewTool("update_habit",
		mcp.WithDescription("Patch a habit's fields. Only supplied parameters change."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Habit id (UUID)")),
		mcp.WithString("title", mcp.Description("New title (1-100 characters)")),
		mcp.WithString("notes", mcp.Description("New notes (up to 500 characters)")),
		mcp.WithString("difficulty", mcp.Description("New difficulty: easy, medium or hard")),
		mcp.WithBoolean("positive", mcp.Description("Track as a positive reinforcement habit")),
		mcp.WithBoolean("negative", mcp.Description("Track as a negative/avoidance habit")),
	), s.updateHabit)

	s.mcp.AddTool(mcp.NewTool("adjust_counter",
		mcp.WithDescription("Increment or decrement a habit's counter. Decrements clamp at zero."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Habit id (UUID)")),
		mcp.WithNumber("delta", mcp.Required(), mcp.Description("Amount to add to the counter (may be negative)")),
	), s.adjustCounter)

	s.mcp.AddTool(mcp.NewTool("complete_habit",
		mcp.WithDescription("Mark a habit completed for today. Idempotent within one calendar day."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Habit id (UUID)")),
	), s.completeHabit)

	s.mcp.AddTool(mcp.NewTool("delete_habit",
		mcp.WithDescription("Delete a habit permanently."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Habit id (UUID)")),
	), s.deleteHabit)

	s.mcp.AddTool(mcp.NewTool("habit_stats",
		mcp.WithDescription("Aggregate statistics over the full habit collection."),
	), s.habitStats)

	s.mcp.AddTool(mcp.NewTool("get_habit_contract",
		mcp.WithDescription("Returns the canonical Uruz habit record contract. "+
			"Call this before creating or updating habits to ensure correct structure."),
	), s.getHabitContract)

	// Resource: habit record contract.
	s.mcp.AddResource(
		mcp.NewResource("uruz://habit-format", "Habit Record Contract",
			mcp.WithResourceDescription("Canonical habit record format that all habits follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readHabitFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listHabits(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f := store.HabitFilter{
		Page:       req.GetInt("page", 1),
		Limit:      req.GetInt("limit", habitservice.DefaultPageSize),
		Difficulty: req.GetString("difficulty", ""),
	}
	habits, total, err := s.svc.ListHabits(ctx, f)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(map[string]any{"habits": habits, "total": total}, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getHabit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	h, err := s.svc.GetHabit(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get habit %s: %v", id, err)), nil
	}
	return habitResult(h)
}

func (s *Server) createHabit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	in := habitservice.CreateHabitInput{
		Title:      title,
		Notes:      req.GetString("notes", ""),
		Difficulty: req.GetString("difficulty", ""),
		Positive:   req.GetBool("positive", true),
		Negative:   req.GetBool("negative", false),
	}
	h, err := s.svc.CreateHabit(ctx, in)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return habitResult(h)
}

func (s *Server) updateHabit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var in habitservice.UpdateHabitInput
	if v, err := req.RequireString("title"); err == nil {
		in.Title = &v
	}
	if v, err := req.RequireString("notes"); err == nil {
		in.Notes = &v
	}
	if v, err := req.RequireString("difficulty"); err == nil {
		in.Difficulty = &v
	}
	if v, err := req.RequireBool("positive"); err == nil {
		in.Positive = &v
	}
	if v, err := req.RequireBool("negative"); err == nil {
		in.Negative = &v
	}
	h, err := s.svc.UpdateHabit(ctx, id, in)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return habitResult(h)
}

func (s *Server) adjustCounter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	delta, err := req.RequireInt("delta")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	h, err := s.svc.GetHabit(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get habit %s: %v", id, err)), nil
	}
	target := max(h.Counter+delta, 0)
	h, err = s.svc.UpdateHabit(ctx, id, habitservice.UpdateHabitInput{Counter: &target})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return habitResult(h)
}

func (s *Server) completeHabit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	h, err := s.svc.CompleteHabit(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return habitResult(h)
}

func (s *Server) deleteHabit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	h, err := s.svc.DeleteHabit(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted: %s (%s)", h.Title, h.ID)), nil
}

func (s *Server) habitStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := s.svc.HabitStats(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(stats, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getHabitContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(HabitFormatContract), nil
}

func (s *Server) readHabitFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "uruz://habit-format",
			MIMEType: "text/markdown",
			Text:     HabitFormatContract,
		},
	}, nil
}

// habitResult renders a habit record plus its derived attributes, so LLM
// consumers never have to re-implement the strength rule.
func habitResult(h *models.Habit) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(map[string]any{
		"habit":    h,
		"strength": h.Strength(),
	}, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}
