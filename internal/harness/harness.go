package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/habitual/internal/analysis"
	"github.com/roach88/habitual/internal/habit"
	"github.com/roach88/habitual/internal/period"
	"github.com/roach88/habitual/internal/store"
	"github.com/roach88/habitual/internal/testutil"
)

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database with a clock frozen at
// the scenario's now, so results are reproducible.
//
// Execution flow:
// 1. Create fresh in-memory database
// 2. Seed habits and completions
// 3. Run the overview and the dense series
// 4. Evaluate expectations
func Run(scenario *Scenario) (*Result, error) {
	now, err := scenario.NowTime()
	if err != nil {
		return nil, err
	}
	clk := testutil.NewFixedClock(now)

	st, err := store.Open(":memory:", store.WithLocation(time.UTC), store.WithClock(clk))
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	if err := Seed(ctx, st, scenario, now); err != nil {
		return nil, fmt.Errorf("failed to seed scenario: %w", err)
	}

	a := analysis.New(st,
		analysis.WithClock(clk),
		analysis.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))), // Suppress logs in tests
	)

	result := NewResult(now)
	if result.Habits, err = a.Overview(ctx, ""); err != nil {
		return nil, fmt.Errorf("failed to build overview: %w", err)
	}
	if result.Series, err = a.Series(ctx, analysis.SeriesRequest{ReturnAll: true}); err != nil {
		return nil, fmt.Errorf("failed to build series: %w", err)
	}

	for _, msg := range EvaluateExpectations(ctx, a, scenario.Expect) {
		result.AddError(msg)
	}
	return result, nil
}

// Seed writes the scenario's habits and completions into st. Offsets are
// resolved against now; absolute times are read in the store's location.
//
// Creation markers are stamped by the store's own clock.
func Seed(ctx context.Context, st *store.Store, scenario *Scenario, now time.Time) error {
	for i, h := range scenario.Habits {
		err := st.AddHabit(ctx, habit.Habit{
			Name:        h.Name,
			Period:      period.Kind(h.Period),
			Active:      h.IsActive(),
			Description: h.Description,
		})
		if err != nil {
			return fmt.Errorf("habits[%d]: %w", i, err)
		}
	}

	for i, c := range scenario.Completions {
		times, err := completionTimes(c, now, st.Location())
		if err != nil {
			return fmt.Errorf("completions[%d]: %w", i, err)
		}
		for _, at := range times {
			if _, err := st.RecordCompletion(ctx, c.Habit, at); err != nil {
				return fmt.Errorf("completions[%d]: %w", i, err)
			}
		}
	}
	return nil
}

func completionTimes(c CompletionStep, now time.Time, loc *time.Location) ([]time.Time, error) {
	if c.At != "" {
		at, err := time.ParseInLocation(habit.TimestampLayout, c.At, loc)
		if err != nil {
			return nil, fmt.Errorf("at: %w", err)
		}
		return []time.Time{at}, nil
	}

	times := make([]time.Time, 0, len(c.Ago))
	for _, ago := range c.Ago {
		at, err := resolveAgo(now, ago)
		if err != nil {
			return nil, err
		}
		times = append(times, at)
	}
	return times, nil
}
