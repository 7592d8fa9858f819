package harness

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/habitual/internal/analysis"
	"github.com/roach88/habitual/internal/habit"
	"github.com/roach88/habitual/internal/store"
	"github.com/roach88/habitual/internal/testutil"
)

func mustParse(t *testing.T, content string) *Scenario {
	t.Helper()
	scenario, err := ParseScenario([]byte(content))
	require.NoError(t, err)
	return scenario
}

func TestRun_Pass(t *testing.T) {
	result, err := Run(mustParse(t, validScenario))
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	assert.Equal(t, time.Date(2025, 2, 12, 14, 30, 0, 0, time.UTC), result.Now)

	require.Len(t, result.Habits, 1, "inactive habits are not in the overview")
	assert.Equal(t, "Workout", result.Habits[0].Name)
	assert.Equal(t, 2, result.Habits[0].CurrentStreak)
}

func TestRun_FailedExpectations(t *testing.T) {
	scenario := mustParse(t, `
name: failing
description: "Every expectation is wrong"
now: "2025-02-12 14:30:00"
habits:
  - {name: Read, period: day}
completions:
  - {habit: Read, ago: [0d, 1d]}
expect:
  current_streak: {Read: 7}
  longest_streak: {Read: 1}
  completed: {Read: false}
  active: {week: [Read]}
`)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 4)

	assert.Equal(t, "Assertion failed: current_streak[Read]\n  Expected: 7\n  Actual: 2", result.Errors[0])
	assert.Equal(t, "Assertion failed: longest_streak[Read]\n  Expected: 1\n  Actual: 2", result.Errors[1])
	assert.Equal(t, "Assertion failed: completed[Read]\n  Expected: false\n  Actual: true", result.Errors[2])
	assert.Equal(t, "Assertion failed: active[week]\n  Expected: [\"Read\"]\n  Actual: []", result.Errors[3])
}

func TestRun_NoExpectations(t *testing.T) {
	result, err := Run(mustParse(t, `
name: bare
description: "History only"
now: "2025-02-12 14:30:00"
habits:
  - {name: Read, period: day}
`))
	require.NoError(t, err)
	assert.True(t, result.Pass)
	assert.Empty(t, result.Series)
}

func TestRun_Isolated(t *testing.T) {
	scenario := mustParse(t, validScenario)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	assert.Equal(t, first, second, "runs must not share state")
}

func TestSeed_RealStore(t *testing.T) {
	ctx := context.Background()
	clk := testutil.NewFixedClock(testutil.Reference)
	st, err := store.Open(filepath.Join(t.TempDir(), "seed.db"), store.WithLocation(time.UTC), store.WithClock(clk))
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, Seed(ctx, st, mustParse(t, validScenario), testutil.Reference))

	habits, err := st.Habits(ctx)
	require.NoError(t, err)
	require.Len(t, habits, 2)
	assert.Equal(t, "Workout", habits[0].Name)
	assert.False(t, habits[1].Active)

	events, err := st.TrackingEvents(ctx, "Workout")
	require.NoError(t, err)
	require.Len(t, events, 4, "creation marker plus three completions")
	assert.Equal(t, habit.StatusStreakComplete, events[0].Status)
	assert.Equal(t, testutil.Reference, events[0].Timestamp)

	paint, err := st.TrackingEvents(ctx, "Paint")
	require.NoError(t, err)
	require.Len(t, paint, 2)
	assert.Equal(t, time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC), paint[1].Timestamp)

	// Seeding the same scenario twice collides on habit names.
	err = Seed(ctx, st, mustParse(t, validScenario), testutil.Reference)
	assert.ErrorIs(t, err, store.ErrHabitExists)
}

func TestEvaluateExpectations_Nil(t *testing.T) {
	a := analysis.New(&store.Store{})
	assert.Nil(t, EvaluateExpectations(context.Background(), a, nil))
}

func TestAssertionError_Error(t *testing.T) {
	err := &AssertionError{Kind: "current_streak", Subject: "Read", Expected: "3", Actual: "1"}
	assert.Equal(t, "Assertion failed: current_streak[Read]\n  Expected: 3\n  Actual: 1", err.Error())
}
