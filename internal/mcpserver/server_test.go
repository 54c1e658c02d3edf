package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/uruz/internal/habitservice"
	"github.com/starford/uruz/internal/testutil"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	db := testutil.TestStore(t)
	return New(habitservice.NewService(db))
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go doesn't expose a direct "call tool" test helper, so we dispatch
	// to the handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "list_habits":
		result, err = srv.listHabits(ctx, req)
	case "get_habit":
		result, err = srv.getHabit(ctx, req)
	case "create_habit":
		result, err = srv.createHabit(ctx, req)
	case "update_habit":
		result, err = srv.updateHabit(ctx, req)
	case "adjust_counter":
		result, err = srv.adjustCounter(ctx, req)
	case "complete_habit":
		result, err = srv.completeHabit(ctx, req)
	case "delete_habit":
		result, err = srv.deleteHabit(ctx, req)
	case "habit_stats":
		result, err = srv.habitStats(ctx, req)
	case "get_habit_contract":
		result, err = srv.getHabitContract(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func createdHabitID(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	var body struct {
		Habit struct {
			ID string `json:"id"`
		} `json:"habit"`
	}
	if err := json.Unmarshal([]byte(resultText(r)), &body); err != nil {
		t.Fatalf("decode tool result: %v", err)
	}
	return body.Habit.ID
}

func TestCreateAndGetHabit(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "create_habit", map[string]interface{}{
		"title": "Drink Water",
		"notes": "eight glasses",
	})
	if r.IsError {
		t.Fatalf("create failed: %s", resultText(r))
	}
	id := createdHabitID(t, r)

	r = callTool(t, srv, "get_habit", map[string]interface{}{"id": id})
	text := resultText(r)
	if !strings.Contains(text, "Drink Water") {
		t.Errorf("get result = %q, want title present", text)
	}
	if !strings.Contains(text, `"strength": "weak"`) {
		t.Errorf("get result = %q, want weak strength", text)
	}
}

func TestAdjustCounterClampsAtZero(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "create_habit", map[string]interface{}{"title": "Meditate"})
	id := createdHabitID(t, r)

	r = callTool(t, srv, "adjust_counter", map[string]interface{}{
		"id":    id,
		"delta": float64(-5),
	})
	if r.IsError {
		t.Fatalf("adjust failed: %s", resultText(r))
	}
	if !strings.Contains(resultText(r), `"counter": 0`) {
		t.Errorf("adjust result = %q, want counter clamped to 0", resultText(r))
	}
}

func TestUpdateHabitSparsePatch(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "create_habit", map[string]interface{}{
		"title": "Journal",
		"notes": "morning pages",
	})
	id := createdHabitID(t, r)

	r = callTool(t, srv, "update_habit", map[string]interface{}{
		"id":         id,
		"difficulty": "hard",
		"negative":   true,
	})
	if r.IsError {
		t.Fatalf("update failed: %s", resultText(r))
	}
	text := resultText(r)
	if !strings.Contains(text, `"difficulty": "hard"`) {
		t.Errorf("difficulty not updated: %q", text)
	}
	if !strings.Contains(text, `"negative": true`) {
		t.Errorf("polarity not updated: %q", text)
	}
	if !strings.Contains(text, "morning pages") {
		t.Errorf("untouched notes changed: %q", text)
	}
}

func TestCompleteHabit(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "create_habit", map[string]interface{}{"title": "Read"})
	id := createdHabitID(t, r)

	r = callTool(t, srv, "complete_habit", map[string]interface{}{"id": id})
	text := resultText(r)
	if !strings.Contains(text, `"streak": 1`) {
		t.Errorf("complete result = %q, want streak 1", text)
	}
}

func TestGetHabitMissing(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "get_habit", map[string]interface{}{
		"id": "00000000-0000-0000-0000-000000000000",
	})
	if !r.IsError {
		t.Error("expected error for missing habit")
	}
}

func TestDeleteHabit(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "create_habit", map[string]interface{}{"title": "Run"})
	id := createdHabitID(t, r)

	r = callTool(t, srv, "delete_habit", map[string]interface{}{"id": id})
	if !strings.HasPrefix(resultText(r), "deleted: Run") {
		t.Errorf("delete result = %q", resultText(r))
	}

	r = callTool(t, srv, "get_habit", map[string]interface{}{"id": id})
	if !r.IsError {
		t.Error("habit still readable after delete")
	}
}

func TestHabitStats(t *testing.T) {
	srv := testServer(t)
	_ = callTool(t, srv, "create_habit", map[string]interface{}{"title": "A", "difficulty": "easy"})
	_ = callTool(t, srv, "create_habit", map[string]interface{}{"title": "B", "difficulty": "hard"})

	r := callTool(t, srv, "habit_stats", map[string]interface{}{})
	text := resultText(r)
	if !strings.Contains(text, `"total": 2`) {
		t.Errorf("stats = %q, want total 2", text)
	}
}

func TestHabitContract(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "get_habit_contract", map[string]interface{}{})
	if !strings.Contains(resultText(r), "Habit Record Contract") {
		t.Error("contract tool returned unexpected text")
	}
}
