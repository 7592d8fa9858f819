package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roach88/habitual/internal/analysis"
)

// StreakTool handles the habit_current_streak MCP tool.
type StreakTool struct {
	analyzer *analysis.Analyzer
}

// NewStreakTool creates a StreakTool over the given analyzer.
func NewStreakTool(a *analysis.Analyzer) *StreakTool {
	return &StreakTool{analyzer: a}
}

// Definition returns the MCP tool definition for habit_current_streak.
func (t *StreakTool) Definition() mcp.Tool {
	return mcp.NewTool("habit_current_streak",
		mcp.WithDescription(
			"Current streak of a habit: how many consecutive periods, up to and including the current one, it was completed in. "+
				"Unknown habits and habits without history report 0.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Habit name"),
		),
	)
}

// Handle processes the habit_current_streak tool call.
func (t *StreakTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}

	n, err := t.analyzer.CurrentStreak(ctx, name)
	if err != nil {
		return errorResult("compute streak", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("**%s**: current streak %d", name, n)), nil
}
