// Package cli implements the habitual command tree.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/roach88/habitual/internal/analysis"
	"github.com/roach88/habitual/internal/clock"
	"github.com/roach88/habitual/internal/config"
	"github.com/roach88/habitual/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	Database   string
	ConfigFile string

	// Config is the resolved configuration. It is nil until the root
	// command's pre-run has loaded it.
	Config *config.Config

	// Home and Cwd override where configuration files are looked up.
	// Empty values use the OS defaults.
	Home string
	Cwd  string

	// Clock stamps completions and anchors the analyses. Nil means wall time.
	Clock clock.Clock

	// Location is the zone timestamps are stored and read in. Nil means
	// the local zone.
	Location *time.Location

	// TraceGen generates the per-invocation trace id. Nil means UUIDv7.
	TraceGen TraceIDGenerator

	traceID string
	logger  *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the habitual CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habitual",
		Short: "habitual - track habits and their streaks",
		Long: `Track recurring habits against calendar periods (day, week, month,
quarter, year) and reconstruct their streaks and breaks from the
completion history.`,
		SilenceErrors: true, // main reports errors and picks the exit code
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", config.DefaultFormat, "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (default ~/.habitual/habits.db)")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "path to a config file")

	// Add subcommands
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewModifyCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewCompleteCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewStreakCommand(opts))
	cmd.AddCommand(NewSeriesCommand(opts))
	cmd.AddCommand(NewHabitsCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewMCPCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}

// load resolves the configuration and applies it to the options.
func (o *RootOptions) load(cmd *cobra.Command) error {
	flags := cmd.Flags()
	cfg, err := config.Load(config.Options{
		Home:       o.Home,
		Cwd:        o.Cwd,
		ConfigFile: o.ConfigFile,
		Flags: map[string]*pflag.Flag{
			"database": flags.Lookup("db"),
			"format":   flags.Lookup("format"),
			"verbose":  flags.Lookup("verbose"),
		},
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load configuration", err)
	}

	o.Config = cfg
	o.Database = cfg.Database
	o.Format = cfg.Format
	o.Verbose = cfg.Verbose

	if !isValidFormat(o.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}

	o.Logger(cmd.ErrOrStderr()).Debug("configuration loaded",
		"database", o.Database,
		"format", o.Format,
	)
	return nil
}

// TraceID returns the trace id of this invocation, generating it on first use.
func (o *RootOptions) TraceID() string {
	if o.traceID == "" {
		gen := o.TraceGen
		if gen == nil {
			gen = UUIDv7TraceGenerator{}
		}
		o.traceID = gen.Generate()
	}
	return o.traceID
}

// Logger returns the invocation logger, writing text records to w. Records
// carry the trace id; debug records are only written with --verbose.
func (o *RootOptions) Logger(w io.Writer) *slog.Logger {
	if o.logger == nil {
		logLevel := slog.LevelInfo
		if o.Verbose {
			logLevel = slog.LevelDebug
		}
		handler := slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: logLevel,
		})
		o.logger = slog.New(handler).With("trace_id", o.TraceID())
	}
	return o.logger
}

func (o *RootOptions) clock() clock.Clock {
	if o.Clock == nil {
		return clock.Wall{}
	}
	return o.Clock
}

// databasePath returns the configured database, falling back to the
// default location when neither flag nor config named one.
func (o *RootOptions) databasePath() string {
	if o.Database != "" {
		return o.Database
	}
	if home, err := os.UserHomeDir(); err == nil {
		return config.DatabasePath(home)
	}
	return config.DefaultDatabaseName
}

// openStore opens the habit database, creating its directory if needed.
func (o *RootOptions) openStore(cmd *cobra.Command) (*store.Store, error) {
	path := o.databasePath()
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to create database directory", err)
		}
	}

	o.Logger(cmd.ErrOrStderr()).Debug("opening database", "path", path)
	storeOpts := []store.Option{store.WithClock(o.clock())}
	if o.Location != nil {
		storeOpts = append(storeOpts, store.WithLocation(o.Location))
	}
	st, err := store.Open(path, storeOpts...)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

// analyzer builds an analyzer over st sharing the invocation clock and logger.
func (o *RootOptions) analyzer(cmd *cobra.Command, st *store.Store) *analysis.Analyzer {
	return analysis.New(st,
		analysis.WithClock(o.clock()),
		analysis.WithLogger(o.Logger(cmd.ErrOrStderr())),
	)
}

// output returns a formatter writing to the command's streams.
func (o *RootOptions) output(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
		TraceID:   o.TraceID(),
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
