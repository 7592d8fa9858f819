package mcptools

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/roach88/habitual/internal/analysis"
)

// Version is set at build time via ldflags.
var Version = "dev"

// NewServer creates an MCP server with every habit tool registered.
func NewServer(a *analysis.Analyzer, rec Recorder) *server.MCPServer {
	s := server.NewMCPServer(
		"habitual",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	streak := NewStreakTool(a)
	s.AddTool(streak.Definition(), streak.Handle)

	series := NewSeriesTool(a)
	s.AddTool(series.Definition(), series.Handle)

	active := NewActiveTool(a)
	s.AddTool(active.Definition(), active.Handle)

	overview := NewOverviewTool(a)
	s.AddTool(overview.Definition(), overview.Handle)

	complete := NewCompleteTool(rec, a)
	s.AddTool(complete.Definition(), complete.Handle)

	return s
}
