// habitual tracks recurring habits and reconstructs their streaks.
//
// Usage:
//
//	habitual add "Read a Book" --period day
//	habitual complete "Read a Book"
//	habitual status
//	habitual mcp      # MCP server on stdio
//	habitual serve    # JSON API over HTTP
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/roach88/habitual/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	cmd := cli.NewRootCommand()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}
