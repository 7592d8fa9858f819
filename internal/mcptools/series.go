package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roach88/habitual/internal/analysis"
)

// SeriesTool handles the habit_series MCP tool.
type SeriesTool struct {
	analyzer *analysis.Analyzer
}

// NewSeriesTool creates a SeriesTool over the given analyzer.
func NewSeriesTool(a *analysis.Analyzer) *SeriesTool {
	return &SeriesTool{analyzer: a}
}

// Definition returns the MCP tool definition for habit_series.
func (t *SeriesTool) Definition() mcp.Tool {
	return mcp.NewTool("habit_series",
		mcp.WithDescription(
			"Streak and break runs of active habits. By default returns the longest streak of each habit; "+
				"with all=true returns the running streak/break tally for every completion, newest first.",
		),
		mcp.WithString("habit",
			mcp.Description("Habit name, or 'all' for every selected habit (default: all)"),
		),
		mcp.WithString("period",
			mcp.Description("Only habits tracked per this period (default: all)"),
			mcp.Enum(periodFilterValues()...),
		),
		mcp.WithBoolean("all",
			mcp.Description("Return the full per-completion log instead of longest streaks"),
		),
	)
}

// Handle processes the habit_series tool call.
func (t *SeriesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records, err := t.analyzer.Series(ctx, analysis.SeriesRequest{
		Habit:     req.GetString("habit", ""),
		Period:    req.GetString("period", ""),
		ReturnAll: boolArg(req, "all", false),
	})
	if err != nil {
		return errorResult("compute series", err), nil
	}
	if len(records) == 0 {
		return mcp.NewToolResultText("No history for the selected habits."), nil
	}

	var sb strings.Builder
	sb.WriteString("| Habit | Streak | Break |\n")
	sb.WriteString("|---|---|---|\n")
	for _, r := range records {
		sb.WriteString(fmt.Sprintf("| %s | %d | %d |\n", r.Name, r.StreakRun, r.BreakRun))
	}
	return mcp.NewToolResultText(sb.String()), nil
}
