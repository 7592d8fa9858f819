package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/habitual/internal/habit"
	"github.com/roach88/habitual/internal/period"
)

// CurrentStreak returns the number of consecutive periods, ending with the
// current one, in which the habit was completed.
//
// Returns 0 for an unknown habit or an empty history.
func (a *Analyzer) CurrentStreak(ctx context.Context, name string) (int, error) {
	h, events, found, err := a.history(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("current streak: %w", err)
	}
	if !found || len(events) == 0 {
		return 0, nil
	}

	n, err := countStreak(h.Period, a.clock.Now(), events)
	if err != nil {
		return 0, fmt.Errorf("current streak %q: %w", h.Name, err)
	}

	a.logger.Debug("current streak",
		"habit", h.Name,
		"period", h.Period,
		"events", len(events),
		"streak", n,
	)
	return n, nil
}

// CompletedThisPeriod reports whether the habit's newest event is a
// completion inside the current period window.
//
// Returns false for an unknown habit or an empty history.
func (a *Analyzer) CompletedThisPeriod(ctx context.Context, name string) (bool, error) {
	h, events, found, err := a.history(ctx, name)
	if err != nil {
		return false, fmt.Errorf("completed this period: %w", err)
	}
	if !found || len(events) == 0 {
		return false, nil
	}

	done, err := completedIn(h.Period, a.clock.Now(), events)
	if err != nil {
		return false, fmt.Errorf("completed this period %q: %w", h.Name, err)
	}
	return done, nil
}

// completedIn checks the newest of events (sorted newest first) against the
// window of kind containing now.
func completedIn(kind period.Kind, now time.Time, events []habit.TrackingEvent) (bool, error) {
	w, err := period.Compute(kind, now, false)
	if err != nil {
		return false, err
	}
	if len(events) == 0 {
		return false, nil
	}
	newest := events[0]
	return newest.Status.CountsTowardStreak() && w.Contains(newest.Timestamp), nil
}
