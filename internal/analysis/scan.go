package analysis

import (
	"time"

	"github.com/roach88/habitual/internal/habit"
	"github.com/roach88/habitual/internal/period"
)

// tally is one entry of the series log: the running streak and break counts
// after a completion was classified, or a run flushed when it ended.
type tally struct {
	streak int
	brk    int
}

// scanState is the accumulator threaded through a backward walk.
type scanState struct {
	window    period.Window
	streakRun int
	breakRun  int
}

// startScan opens a walk at the window of kind containing now.
func startScan(kind period.Kind, now time.Time) (scanState, error) {
	w, err := period.Compute(kind, now, false)
	if err != nil {
		return scanState{}, err
	}
	return scanState{window: w}, nil
}

// step classifies one completion and returns the next state together with the
// tallies to append to the series log.
//
// A completion inside the window extends the streak run and closes any
// pending break run. One outside it extends the break run and closes any
// pending streak run. Either way the window moves to the period preceding the
// completion and the running tally is appended after any flushed run.
func (s scanState) step(ev habit.TrackingEvent) (scanState, []tally, error) {
	var out []tally

	if s.window.Contains(ev.Timestamp) {
		s.streakRun++
		if s.breakRun > 0 {
			out = append(out, tally{streak: 0, brk: s.breakRun})
			s.breakRun = 0
		}
	} else {
		if s.streakRun > 0 {
			out = append(out, tally{streak: s.streakRun, brk: 0})
			s.streakRun = 0
		}
		s.breakRun++
	}

	w, err := period.Compute(ev.CurrentPeriod, ev.Timestamp, true)
	if err != nil {
		return s, nil, err
	}
	s.window = w

	out = append(out, tally{streak: s.streakRun, brk: s.breakRun})
	return s, out, nil
}

// countStreak walks events (newest first) from the window containing now and
// counts completions until the first one outside the window.
func countStreak(kind period.Kind, now time.Time, events []habit.TrackingEvent) (int, error) {
	s, err := startScan(kind, now)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, ev := range events {
		if !ev.Status.CountsTowardStreak() {
			continue
		}
		if !s.window.Contains(ev.Timestamp) {
			break
		}
		count++
		s.window, err = period.Compute(ev.CurrentPeriod, ev.Timestamp, true)
		if err != nil {
			return 0, err
		}
	}
	return count, nil
}

// seriesLog walks all of events (newest first) and returns the dense tally
// log for one habit.
func seriesLog(kind period.Kind, now time.Time, events []habit.TrackingEvent) ([]tally, error) {
	s, err := startScan(kind, now)
	if err != nil {
		return nil, err
	}

	var entries []tally
	for _, ev := range events {
		if !ev.Status.CountsTowardStreak() {
			continue
		}
		var out []tally
		s, out, err = s.step(ev)
		if err != nil {
			return nil, err
		}
		entries = append(entries, out...)
	}
	return entries, nil
}

// longest returns the largest streak in entries, or 0.
func longest(entries []tally) int {
	best := 0
	for _, t := range entries {
		best = max(best, t.streak)
	}
	return best
}
