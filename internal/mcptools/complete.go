package mcptools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roach88/habitual/internal/analysis"
	"github.com/roach88/habitual/internal/habit"
	"github.com/roach88/habitual/internal/store"
)

// CompleteTool handles the habit_complete MCP tool.
type CompleteTool struct {
	recorder Recorder
	analyzer *analysis.Analyzer
}

// NewCompleteTool creates a CompleteTool that records through rec and
// reports the resulting streak from a.
func NewCompleteTool(rec Recorder, a *analysis.Analyzer) *CompleteTool {
	return &CompleteTool{recorder: rec, analyzer: a}
}

// Definition returns the MCP tool definition for habit_complete.
func (t *CompleteTool) Definition() mcp.Tool {
	return mcp.NewTool("habit_complete",
		mcp.WithDescription(
			"Mark a habit as completed for its current period. Completing twice in one period breaks the streak, "+
				"so check habit_overview first.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Habit name"),
		),
	)
}

// Handle processes the habit_complete tool call.
func (t *CompleteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}

	ev, err := t.recorder.RecordCompletion(ctx, name, time.Time{})
	if errors.Is(err, store.ErrHabitNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("habit %q not found", name)), nil
	}
	if err != nil {
		return errorResult("record completion", err), nil
	}

	n, err := t.analyzer.CurrentStreak(ctx, ev.HabitName)
	if err != nil {
		return errorResult("compute streak", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"Completed **%s** at %s (%s). Current streak: %d",
		ev.HabitName, ev.Timestamp.Format(habit.TimestampLayout), ev.CurrentPeriod, n,
	)), nil
}
