package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/habitual/internal/harness"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	File string
}

// SeedResult is the JSON payload of the seed command.
type SeedResult struct {
	Scenario    string `json:"scenario"`
	Habits      int    `json:"habits"`
	Completions int    `json:"completions"`
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load sample habits into the database",
		Long: `Load the habits and completions of a scenario file into the database.

Relative offsets ("ago") are resolved against the current time, not the
scenario's "now", so the seeded history ends today. Without --file the
built-in demo data is loaded: five habits with a month of history.

Example:
  habitual seed
  habitual seed --file ./scenarios/weekly-workout.yaml --db /tmp/try.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "scenario file to seed from (default: built-in demo)")

	return cmd
}

func runSeed(opts *SeedOptions, cmd *cobra.Command) error {
	out := opts.output(cmd)

	var (
		scenario *harness.Scenario
		err      error
	)
	if opts.File != "" {
		scenario, err = harness.LoadScenario(opts.File)
	} else {
		scenario, err = harness.DemoScenario()
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}

	st, err := opts.openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	now := opts.clock().Now()
	if err := harness.Seed(cmd.Context(), st, scenario, now); err != nil {
		return out.Fail("failed to seed database", err)
	}

	result := SeedResult{
		Scenario:    scenario.Name,
		Habits:      len(scenario.Habits),
		Completions: countCompletions(scenario),
	}
	opts.Logger(cmd.ErrOrStderr()).Info("database seeded",
		"scenario", result.Scenario,
		"habits", result.Habits,
		"completions", result.Completions,
	)

	if out.JSON() {
		return out.Success(result)
	}
	fmt.Fprintf(out.Writer, "✓ Seeded %d habit(s) and %d completion(s) from %q\n", result.Habits, result.Completions, result.Scenario)
	return nil
}

func countCompletions(s *harness.Scenario) int {
	n := 0
	for _, c := range s.Completions {
		if c.At != "" {
			n++
			continue
		}
		n += len(c.Ago)
	}
	return n
}
