package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roach88/habitual/internal/analysis"
)

// OverviewTool handles the habit_overview MCP tool.
type OverviewTool struct {
	analyzer *analysis.Analyzer
}

// NewOverviewTool creates an OverviewTool over the given analyzer.
func NewOverviewTool(a *analysis.Analyzer) *OverviewTool {
	return &OverviewTool{analyzer: a}
}

// Definition returns the MCP tool definition for habit_overview.
func (t *OverviewTool) Definition() mcp.Tool {
	return mcp.NewTool("habit_overview",
		mcp.WithDescription(
			"Status of every active habit: current and longest streak, and whether it is done for the current period. "+
				"Call this first to see what still needs doing.",
		),
		mcp.WithString("period",
			mcp.Description("Period filter (default: all)"),
			mcp.Enum(periodFilterValues()...),
		),
	)
}

// Handle processes the habit_overview tool call.
func (t *OverviewTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	statuses, err := t.analyzer.Overview(ctx, req.GetString("period", ""))
	if err != nil {
		return errorResult("build overview", err), nil
	}
	if len(statuses) == 0 {
		return mcp.NewToolResultText("No active habits."), nil
	}

	var todo, done []analysis.HabitStatus
	for _, s := range statuses {
		if s.CompletedThisPeriod {
			done = append(done, s)
		} else {
			todo = append(todo, s)
		}
	}

	var sb strings.Builder
	writeSection(&sb, "Not Completed This Period", todo)
	writeSection(&sb, "Completed", done)
	return mcp.NewToolResultText(strings.TrimRight(sb.String(), "\n") + "\n"), nil
}

func writeSection(sb *strings.Builder, title string, statuses []analysis.HabitStatus) {
	sb.WriteString(fmt.Sprintf("## %s (%d)\n\n", title, len(statuses)))
	for _, s := range statuses {
		sb.WriteString(fmt.Sprintf("- **%s** (%s): current streak %d, longest %d", s.Name, s.Period, s.CurrentStreak, s.LongestStreak))
		if s.Description != "" {
			sb.WriteString(": " + s.Description)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}
