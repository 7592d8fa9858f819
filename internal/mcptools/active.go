package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roach88/habitual/internal/analysis"
)

// ActiveTool handles the habit_active_for_period MCP tool.
type ActiveTool struct {
	analyzer *analysis.Analyzer
}

// NewActiveTool creates an ActiveTool over the given analyzer.
func NewActiveTool(a *analysis.Analyzer) *ActiveTool {
	return &ActiveTool{analyzer: a}
}

// Definition returns the MCP tool definition for habit_active_for_period.
func (t *ActiveTool) Definition() mcp.Tool {
	return mcp.NewTool("habit_active_for_period",
		mcp.WithDescription("List active habits, optionally only those tracked per the given period."),
		mcp.WithString("period",
			mcp.Description("Period filter (default: all)"),
			mcp.Enum(periodFilterValues()...),
		),
	)
}

// Handle processes the habit_active_for_period tool call.
func (t *ActiveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows, err := t.analyzer.ActiveHabitsForPeriod(ctx, req.GetString("period", ""))
	if err != nil {
		return errorResult("list habits", err), nil
	}
	if len(rows) == 0 {
		return mcp.NewToolResultText("No active habits."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Active Habits (%d)\n\n", len(rows)))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("- **%s** (%s)\n", r.Name, r.Period))
	}
	return mcp.NewToolResultText(sb.String()), nil
}
