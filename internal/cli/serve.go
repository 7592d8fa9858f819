package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/roach88/habitual/internal/config"
	"github.com/roach88/habitual/internal/mcptools"
	"github.com/roach88/habitual/internal/web"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the habit analyses over HTTP",
		Long: `Serve the habit analyses as a JSON API.

Routes:
  GET  /api/habits?period=
  GET  /api/habits/overview?period=
  GET  /api/habits/:name/streak
  POST /api/habits/:name/complete
  GET  /api/series?habit=&period=&all=

Example:
  habitual serve --addr 127.0.0.1:9000`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (default from config, "+config.DefaultHTTPAddr+")")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	logger := opts.Logger(cmd.ErrOrStderr())

	addr := opts.Addr
	if addr == "" && opts.Config != nil {
		addr = opts.Config.HTTP.Addr
	}
	if addr == "" {
		addr = config.DefaultHTTPAddr
	}

	st, err := opts.openStore(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	if !opts.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := web.NewServer(opts.analyzer(cmd, st), st, logger)

	ctx, stop := signalContext(cmd)
	defer stop()

	if err := srv.Run(ctx, addr); err != nil {
		return WrapExitError(ExitFailure, "web server error", err)
	}
	logger.Info("web server stopped gracefully")
	return nil
}

// NewMCPCommand creates the mcp command.
func NewMCPCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the habit tools over MCP (stdio)",
		Long: `Start an MCP server on stdin/stdout exposing the habit tools:
habit_overview, habit_current_streak, habit_series, habit_active_for_period
and habit_complete.

Logs go to stderr so they don't interfere with the stdio transport.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMCP(rootOpts, cmd)
		},
	}

	return cmd
}

func runMCP(opts *RootOptions, cmd *cobra.Command) error {
	logger := opts.Logger(cmd.ErrOrStderr())

	st, err := opts.openStore(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	s := mcptools.NewServer(opts.analyzer(cmd, st), st)
	logger.Info("mcp server starting", "version", mcptools.Version)

	if err := server.ServeStdio(s); err != nil {
		return WrapExitError(ExitFailure, "mcp server error", err)
	}
	return nil
}

// signalContext derives a context from the command's that is cancelled on
// SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	// Use command's context if available (for testing), otherwise create one
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
