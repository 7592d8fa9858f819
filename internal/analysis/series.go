package analysis

import (
	"context"
	"fmt"

	"github.com/roach88/habitual/internal/habit"
	"github.com/roach88/habitual/internal/period"
)

// AllHabits selects every habit, or every period, where a habit name or
// period filter is expected.
const AllHabits = "all"

// HabitPeriod is one row of ActiveHabitsForPeriod.
type HabitPeriod struct {
	Name   string      `json:"name"`
	Period period.Kind `json:"period"`
}

// SeriesRequest selects the habits a series covers.
type SeriesRequest struct {
	// Habit restricts the series to one habit. Empty or "all" covers every
	// habit selected by Period.
	Habit string

	// Period filters the active habits by period kind. Empty or "all" keeps
	// every active habit.
	Period string

	// ReturnAll returns the dense per-completion log instead of one
	// longest-streak record per habit.
	ReturnAll bool
}

// SeriesRecord is one row of a series: running streak and break counts.
// In summary mode StreakRun is the longest streak and BreakRun is always 0.
type SeriesRecord struct {
	Name      string `json:"name"`
	StreakRun int    `json:"streak_run"`
	BreakRun  int    `json:"break_run"`
}

// ActiveHabitsForPeriod returns the active habits in creation order, keeping
// only those whose period equals filter. An empty or "all" filter keeps every
// active habit. A filter that is not a period kind fails with an error
// matching period.ErrInvalidPeriodKind.
func (a *Analyzer) ActiveHabitsForPeriod(ctx context.Context, filter string) ([]HabitPeriod, error) {
	habits, err := a.activeHabits(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]HabitPeriod, 0, len(habits))
	for _, h := range habits {
		out = append(out, HabitPeriod{Name: h.Name, Period: h.Period})
	}
	return out, nil
}

func (a *Analyzer) activeHabits(ctx context.Context, filter string) ([]habit.Habit, error) {
	var want period.Kind
	if filter != "" && filter != AllHabits {
		k, err := period.ParseKind(filter)
		if err != nil {
			return nil, fmt.Errorf("active habits: %w", err)
		}
		want = k
	}

	habits, err := a.src.Habits(ctx)
	if err != nil {
		return nil, fmt.Errorf("active habits: %w", err)
	}

	out := make([]habit.Habit, 0, len(habits))
	for _, h := range habits {
		if !h.Active {
			continue
		}
		if want != "" && h.Period != want {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

// Series reconstructs the streak and break runs of the selected habits.
//
// Habits are selected from the active habits matching req.Period; if none
// match the result is empty. A named req.Habit is then scanned on its own.
// Unknown habits and habits without history are skipped.
//
// With ReturnAll the result is the dense log: for every completion, newest
// first, any run that just ended followed by the running tally. Habits appear
// in selection order. Without ReturnAll each scanned habit contributes one
// record holding its longest streak.
func (a *Analyzer) Series(ctx context.Context, req SeriesRequest) ([]SeriesRecord, error) {
	selected, err := a.activeHabits(ctx, req.Period)
	if err != nil {
		return nil, fmt.Errorf("series: %w", err)
	}
	records := []SeriesRecord{}
	if len(selected) == 0 {
		return records, nil
	}

	var names []string
	if req.Habit != "" && req.Habit != AllHabits {
		names = []string{req.Habit}
	} else {
		for _, h := range selected {
			names = append(names, h.Name)
		}
	}

	now := a.clock.Now()
	for _, name := range names {
		h, events, found, err := a.history(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("series: %w", err)
		}
		if !found || len(events) == 0 {
			continue
		}

		entries, err := seriesLog(h.Period, now, events)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", h.Name, err)
		}

		a.logger.Debug("series scan",
			"habit", h.Name,
			"period", h.Period,
			"events", len(events),
			"entries", len(entries),
		)

		if !req.ReturnAll {
			records = append(records, SeriesRecord{Name: h.Name, StreakRun: longest(entries)})
			continue
		}
		for _, t := range entries {
			records = append(records, SeriesRecord{Name: h.Name, StreakRun: t.streak, BreakRun: t.brk})
		}
	}
	return records, nil
}
