package harness

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/roach88/habitual/internal/analysis"
)

// AssertionError is returned when an expectation fails.
type AssertionError struct {
	Kind     string // Expectation kind, e.g. "current_streak"
	Subject  string // Habit name or period filter
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s[%s]\n", e.Kind, e.Subject)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// EvaluateExpectations checks every expectation against a and returns the
// failure messages. Expectations are checked kind by kind, subjects in sorted
// order, so messages come out in a stable order.
func EvaluateExpectations(ctx context.Context, a *analysis.Analyzer, exp *Expectations) []string {
	if exp == nil {
		return nil
	}

	var errs []string
	fail := func(err error) {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}

	for _, name := range sortedKeys(exp.CurrentStreak) {
		fail(assertCurrentStreak(ctx, a, name, exp.CurrentStreak[name]))
	}
	for _, name := range sortedKeys(exp.LongestStreak) {
		fail(assertLongestStreak(ctx, a, name, exp.LongestStreak[name]))
	}
	for _, name := range sortedKeys(exp.Completed) {
		fail(assertCompleted(ctx, a, name, exp.Completed[name]))
	}
	for _, filter := range sortedKeys(exp.Active) {
		fail(assertActive(ctx, a, filter, exp.Active[filter]))
	}
	return errs
}

func assertCurrentStreak(ctx context.Context, a *analysis.Analyzer, name string, want int) error {
	got, err := a.CurrentStreak(ctx, name)
	if err != nil {
		return fmt.Errorf("current_streak[%s]: %w", name, err)
	}
	if got != want {
		return &AssertionError{
			Kind:     "current_streak",
			Subject:  name,
			Expected: fmt.Sprint(want),
			Actual:   fmt.Sprint(got),
		}
	}
	return nil
}

func assertLongestStreak(ctx context.Context, a *analysis.Analyzer, name string, want int) error {
	records, err := a.Series(ctx, analysis.SeriesRequest{Habit: name})
	if err != nil {
		return fmt.Errorf("longest_streak[%s]: %w", name, err)
	}
	got := 0
	if len(records) > 0 {
		got = records[0].StreakRun
	}
	if got != want {
		return &AssertionError{
			Kind:     "longest_streak",
			Subject:  name,
			Expected: fmt.Sprint(want),
			Actual:   fmt.Sprint(got),
		}
	}
	return nil
}

func assertCompleted(ctx context.Context, a *analysis.Analyzer, name string, want bool) error {
	got, err := a.CompletedThisPeriod(ctx, name)
	if err != nil {
		return fmt.Errorf("completed[%s]: %w", name, err)
	}
	if got != want {
		return &AssertionError{
			Kind:     "completed",
			Subject:  name,
			Expected: fmt.Sprint(want),
			Actual:   fmt.Sprint(got),
		}
	}
	return nil
}

func assertActive(ctx context.Context, a *analysis.Analyzer, filter string, want []string) error {
	rows, err := a.ActiveHabitsForPeriod(ctx, filter)
	if err != nil {
		return fmt.Errorf("active[%s]: %w", filter, err)
	}
	got := make([]string, 0, len(rows))
	for _, r := range rows {
		got = append(got, r.Name)
	}
	if !slices.Equal(got, want) {
		return &AssertionError{
			Kind:     "active",
			Subject:  filter,
			Expected: fmt.Sprintf("%q", want),
			Actual:   fmt.Sprintf("%q", got),
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
