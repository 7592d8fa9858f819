package analysis

import (
	"context"
	"fmt"

	"github.com/roach88/habitual/internal/period"
)

// HabitStatus summarises one active habit as of now.
type HabitStatus struct {
	Name                string      `json:"name"`
	Period              period.Kind `json:"period"`
	Description         string      `json:"description"`
	CurrentStreak       int         `json:"current_streak"`
	LongestStreak       int         `json:"longest_streak"`
	CompletedThisPeriod bool        `json:"completed_this_period"`
}

// Overview returns the status of every active habit matching filter (see
// ActiveHabitsForPeriod), in creation order. All values are derived from the
// history at call time.
func (a *Analyzer) Overview(ctx context.Context, filter string) ([]HabitStatus, error) {
	habits, err := a.activeHabits(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("overview: %w", err)
	}

	now := a.clock.Now()
	out := make([]HabitStatus, 0, len(habits))
	for _, h := range habits {
		events, err := a.src.TrackingEvents(ctx, h.Name)
		if err != nil {
			return nil, fmt.Errorf("overview: fetch tracking events %q: %w", h.Name, err)
		}
		events = newestFirst(events)

		st := HabitStatus{Name: h.Name, Period: h.Period, Description: h.Description}

		if st.CurrentStreak, err = countStreak(h.Period, now, events); err != nil {
			return nil, fmt.Errorf("overview %q: %w", h.Name, err)
		}
		entries, err := seriesLog(h.Period, now, events)
		if err != nil {
			return nil, fmt.Errorf("overview %q: %w", h.Name, err)
		}
		st.LongestStreak = longest(entries)
		if st.CompletedThisPeriod, err = completedIn(h.Period, now, events); err != nil {
			return nil, fmt.Errorf("overview %q: %w", h.Name, err)
		}

		out = append(out, st)
	}
	return out, nil
}
