package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/habitual/internal/habit"
	"github.com/roach88/habitual/internal/period"
	"github.com/roach88/habitual/internal/store"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Period      string
	Description string
	Inactive    bool
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a habit",
		Long: `Add a habit tracked per the given period.

The habit's history starts with a creation marker; streaks are counted
from completions only.

Example:
  habitual add "Read a Book" --period day --description "10 pages"
  habitual add "Weekly Review" --period week --inactive`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Period, "period", "p", string(period.Day), "period kind (day|week|month|quarter|year)")
	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "what the habit is")
	cmd.Flags().BoolVar(&opts.Inactive, "inactive", false, "create the habit inactive")

	return cmd
}

func runAdd(opts *AddOptions, name string, cmd *cobra.Command) error {
	out := opts.output(cmd)
	st, err := opts.openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	h := habit.Habit{
		Name:        name,
		Period:      period.Kind(opts.Period),
		Active:      !opts.Inactive,
		Description: opts.Description,
	}
	if err := st.AddHabit(cmd.Context(), h); err != nil {
		return out.Fail("failed to add habit", err)
	}

	added, _, err := st.Habit(cmd.Context(), name)
	if err != nil {
		return out.Fail("failed to read habit", err)
	}
	if out.JSON() {
		return out.Success(added)
	}
	fmt.Fprintf(out.Writer, "✓ Added habit %q (%s)\n", added.Name, added.Period)
	return nil
}

// ModifyOptions holds flags for the modify command.
type ModifyOptions struct {
	*RootOptions
	NewName     string
	Description string
	Period      string
	Active      bool
}

// NewModifyCommand creates the modify command.
func NewModifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ModifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "modify <name>",
		Short: "Change a habit's name, description, period or state",
		Long: `Change a habit. Only the flags given are applied.

Renaming keeps the habit's history. Changing the period does not rewrite
past completions; each keeps the period it was recorded under.

Example:
  habitual modify "Read a Book" --name "Read"
  habitual modify Read --period week --active=false`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModify(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.NewName, "name", "", "new habit name")
	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "new description")
	cmd.Flags().StringVarP(&opts.Period, "period", "p", "", "new period kind")
	cmd.Flags().BoolVar(&opts.Active, "active", true, "whether the habit is active")

	return cmd
}

func runModify(opts *ModifyOptions, name string, cmd *cobra.Command) error {
	out := opts.output(cmd)

	var upd store.HabitUpdate
	flags := cmd.Flags()
	if flags.Changed("name") {
		upd.NewName = &opts.NewName
	}
	if flags.Changed("description") {
		upd.Description = &opts.Description
	}
	if flags.Changed("period") {
		k := period.Kind(opts.Period)
		upd.Period = &k
	}
	if flags.Changed("active") {
		upd.Active = &opts.Active
	}

	st, err := opts.openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.ModifyHabit(cmd.Context(), name, upd); err != nil {
		return out.Fail("failed to modify habit", err)
	}

	current := name
	if upd.NewName != nil {
		current = *upd.NewName
	}
	modified, _, err := st.Habit(cmd.Context(), current)
	if err != nil {
		return out.Fail("failed to read habit", err)
	}
	if out.JSON() {
		return out.Success(modified)
	}
	fmt.Fprintf(out.Writer, "✓ Modified habit %q\n", modified.Name)
	return nil
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "delete <name>",
		Short:         "Delete a habit and its history",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runDelete(opts *RootOptions, name string, cmd *cobra.Command) error {
	out := opts.output(cmd)
	st, err := opts.openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteHabit(cmd.Context(), name); err != nil {
		return out.Fail("failed to delete habit", err)
	}
	if out.JSON() {
		return out.Success(map[string]string{"name": habit.NormalizeName(name)})
	}
	fmt.Fprintf(out.Writer, "✓ Deleted habit %q\n", name)
	return nil
}

// CompleteOptions holds flags for the complete command.
type CompleteOptions struct {
	*RootOptions
	At string
}

// NewCompleteCommand creates the complete command.
func NewCompleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "complete <name>",
		Short: "Mark a habit as completed for its current period",
		Long: `Record a completion of a habit, now or at the given local time.

Completing a habit twice in one period breaks its streak.

Example:
  habitual complete "Read a Book"
  habitual complete "Read a Book" --at "2025-02-11 21:00:00"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComplete(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.At, "at", "", "completion time (YYYY-MM-DD HH:MM:SS, default now)")

	return cmd
}

func runComplete(opts *CompleteOptions, name string, cmd *cobra.Command) error {
	out := opts.output(cmd)
	st, err := opts.openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	var at time.Time
	if opts.At != "" {
		at, err = time.ParseInLocation(habit.TimestampLayout, opts.At, st.Location())
		if err != nil {
			return out.Fail("invalid --at", err)
		}
	}

	ev, err := st.RecordCompletion(cmd.Context(), name, at)
	if err != nil {
		return out.Fail("failed to record completion", err)
	}
	if out.JSON() {
		return out.Success(ev)
	}
	fmt.Fprintf(out.Writer, "✓ Completed %q at %s (%s)\n", ev.HabitName, ev.Timestamp.Format(habit.TimestampLayout), ev.CurrentPeriod)
	return nil
}

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Inactive bool
}

// ListResult is the JSON payload of the list command.
type ListResult struct {
	Active bool     `json:"active"`
	Habits []string `json:"habits"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List active (or inactive) habit names",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Inactive, "inactive", false, "list inactive habits instead")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	out := opts.output(cmd)
	st, err := opts.openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	var names []string
	if opts.Inactive {
		names, err = st.InactiveNames(cmd.Context())
	} else {
		names, err = st.ActiveNames(cmd.Context())
	}
	if err != nil {
		return out.Fail("failed to list habits", err)
	}
	if out.JSON() {
		return out.Success(ListResult{Active: !opts.Inactive, Habits: names})
	}
	if len(names) == 0 {
		state := "active"
		if opts.Inactive {
			state = "inactive"
		}
		fmt.Fprintf(out.Writer, "No %s habits.\n", state)
		return nil
	}
	for _, n := range names {
		fmt.Fprintln(out.Writer, n)
	}
	return nil
}
