// Package mcptools exposes the habit analyses as MCP tools.
//
// Each tool follows the same pattern:
// - A struct with its dependencies injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a result
//
// Bad input and unknown habits are reported as tool result errors so the
// calling model can correct itself; protocol errors are never returned.
package mcptools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roach88/habitual/internal/habit"
	"github.com/roach88/habitual/internal/period"
)

// Recorder appends completions to a habit's history.
type Recorder interface {
	RecordCompletion(ctx context.Context, name string, at time.Time) (habit.TrackingEvent, error)
}

// periodFilterValues lists the accepted values of every "period" argument.
func periodFilterValues() []string {
	values := []string{"all"}
	for _, k := range period.Kinds() {
		values = append(values, k.String())
	}
	return values
}

// boolArg extracts a boolean argument from a tool request.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// errorResult turns an analysis error into a tool result error.
func errorResult(action string, err error) *mcp.CallToolResult {
	if errors.Is(err, period.ErrInvalidPeriodKind) {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultError(fmt.Sprintf("failed to %s: %v", action, err))
}
