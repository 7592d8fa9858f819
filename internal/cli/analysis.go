package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/habitual/internal/analysis"
)

// StreakResult is the JSON payload of the streak command.
type StreakResult struct {
	Name                string `json:"name"`
	CurrentStreak       int    `json:"current_streak"`
	CompletedThisPeriod bool   `json:"completed_this_period"`
}

// NewStreakCommand creates the streak command.
func NewStreakCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streak <name>",
		Short: "Show a habit's current streak",
		Long: `Show how many consecutive periods, up to and including the current
one, a habit was completed in. Unknown habits report 0.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStreak(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runStreak(opts *RootOptions, name string, cmd *cobra.Command) error {
	out := opts.output(cmd)
	st, err := opts.openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	a := opts.analyzer(cmd, st)
	n, err := a.CurrentStreak(cmd.Context(), name)
	if err != nil {
		return out.Fail("failed to compute streak", err)
	}
	done, err := a.CompletedThisPeriod(cmd.Context(), name)
	if err != nil {
		return out.Fail("failed to compute streak", err)
	}

	if out.JSON() {
		return out.Success(StreakResult{Name: name, CurrentStreak: n, CompletedThisPeriod: done})
	}
	mark := "not yet done this period"
	if done {
		mark = "done this period"
	}
	fmt.Fprintf(out.Writer, "%s: %d (%s)\n", name, n, mark)
	return nil
}

// SeriesOptions holds flags for the series command.
type SeriesOptions struct {
	*RootOptions
	Period string
	All    bool
}

// NewSeriesCommand creates the series command.
func NewSeriesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeriesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "series [name]",
		Short: "Show streak and break runs",
		Long: `Reconstruct streak and break runs from the completion history.

Without --all, prints the longest streak of each selected habit. With --all,
prints the running streak/break tally for every completion, newest first.
Habits are selected from the active habits matching --period; a name narrows
the selection to one habit.

Example:
  habitual series
  habitual series "Read a Book" --all
  habitual series --period week`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := analysis.AllHabits
			if len(args) == 1 {
				name = args[0]
			}
			return runSeries(opts, name, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Period, "period", "p", analysis.AllHabits, "only habits tracked per this period")
	cmd.Flags().BoolVar(&opts.All, "all", false, "print every tally instead of longest streaks")

	return cmd
}

func runSeries(opts *SeriesOptions, name string, cmd *cobra.Command) error {
	out := opts.output(cmd)
	st, err := opts.openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := opts.analyzer(cmd, st).Series(cmd.Context(), analysis.SeriesRequest{
		Habit:     name,
		Period:    opts.Period,
		ReturnAll: opts.All,
	})
	if err != nil {
		return out.Fail("failed to compute series", err)
	}

	if out.JSON() {
		return out.Success(records)
	}
	if len(records) == 0 {
		fmt.Fprintln(out.Writer, "No history.")
		return nil
	}

	tw := tabwriter.NewWriter(out.Writer, 0, 0, 2, ' ', 0)
	if opts.All {
		fmt.Fprintln(tw, "HABIT\tSTREAK\tBREAK")
		for _, r := range records {
			fmt.Fprintf(tw, "%s\t%d\t%d\n", r.Name, r.StreakRun, r.BreakRun)
		}
	} else {
		fmt.Fprintln(tw, "HABIT\tLONGEST STREAK")
		for _, r := range records {
			fmt.Fprintf(tw, "%s\t%d\n", r.Name, r.StreakRun)
		}
	}
	return tw.Flush()
}

// PeriodFilterOptions holds the --period flag shared by habits and status.
type PeriodFilterOptions struct {
	*RootOptions
	Period string
}

// NewHabitsCommand creates the habits command.
func NewHabitsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PeriodFilterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "habits",
		Short:         "List active habits with their periods",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHabits(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Period, "period", "p", analysis.AllHabits, "only habits tracked per this period")

	return cmd
}

func runHabits(opts *PeriodFilterOptions, cmd *cobra.Command) error {
	out := opts.output(cmd)
	st, err := opts.openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	rows, err := opts.analyzer(cmd, st).ActiveHabitsForPeriod(cmd.Context(), opts.Period)
	if err != nil {
		return out.Fail("failed to list habits", err)
	}

	if out.JSON() {
		return out.Success(rows)
	}
	if len(rows) == 0 {
		fmt.Fprintln(out.Writer, "No active habits.")
		return nil
	}
	tw := tabwriter.NewWriter(out.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "HABIT\tPERIOD")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", r.Name, r.Period)
	}
	return tw.Flush()
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PeriodFilterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show every active habit's streaks",
		Long: `Show the current and longest streak of every active habit, and
whether it has been completed in the current period.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Period, "period", "p", analysis.AllHabits, "only habits tracked per this period")

	return cmd
}

func runStatus(opts *PeriodFilterOptions, cmd *cobra.Command) error {
	out := opts.output(cmd)
	st, err := opts.openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	statuses, err := opts.analyzer(cmd, st).Overview(cmd.Context(), opts.Period)
	if err != nil {
		return out.Fail("failed to build status", err)
	}

	if out.JSON() {
		return out.Success(statuses)
	}
	if len(statuses) == 0 {
		fmt.Fprintln(out.Writer, "No active habits.")
		return nil
	}
	tw := tabwriter.NewWriter(out.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tHABIT\tPERIOD\tCURRENT\tLONGEST")
	for _, s := range statuses {
		mark := "✗"
		if s.CompletedThisPeriod {
			mark = "✓"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n", mark, s.Name, s.Period, s.CurrentStreak, s.LongestStreak)
	}
	return tw.Flush()
}
