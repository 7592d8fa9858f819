package analysis

import (
	"context"
	"time"

	"github.com/roach88/habitual/internal/habit"
	"github.com/roach88/habitual/internal/period"
	"github.com/roach88/habitual/internal/testutil"
)

// memSource is an in-memory Source. Events are returned oldest first, the
// opposite of the store, so every test also exercises the analyzer's sort.
type memSource struct {
	habits []habit.Habit
	events []habit.TrackingEvent
	nextID int64
	err    error
}

func (m *memSource) Habit(_ context.Context, name string) (habit.Habit, bool, error) {
	if m.err != nil {
		return habit.Habit{}, false, m.err
	}
	for _, h := range m.habits {
		if h.Name == name {
			return h, true, nil
		}
	}
	return habit.Habit{}, false, nil
}

func (m *memSource) Habits(context.Context) ([]habit.Habit, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]habit.Habit(nil), m.habits...), nil
}

func (m *memSource) TrackingEvents(_ context.Context, name string) ([]habit.TrackingEvent, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []habit.TrackingEvent{}
	for i := len(m.events) - 1; i >= 0; i-- {
		if name == "" || m.events[i].HabitName == name {
			out = append(out, m.events[i])
		}
	}
	return out, nil
}

// add registers an active habit with a creation marker 30 days before the
// reference time.
func (m *memSource) add(name string, kind period.Kind) *memSource {
	m.habits = append(m.habits, habit.Habit{Name: name, Period: kind, Active: true})
	return m.event(name, habit.StatusActive, kind, testutil.Reference.AddDate(0, 0, -30))
}

func (m *memSource) addInactive(name string, kind period.Kind) *memSource {
	m.habits = append(m.habits, habit.Habit{Name: name, Period: kind, Active: false})
	return m.event(name, habit.StatusInactive, kind, testutil.Reference.AddDate(0, 0, -30))
}

// complete records completions of name under kind at each offset before the
// reference time.
func (m *memSource) complete(name string, kind period.Kind, ago ...time.Duration) *memSource {
	for _, d := range ago {
		m.event(name, habit.StatusStreakComplete, kind, testutil.Reference.Add(-d))
	}
	return m
}

func (m *memSource) event(name string, st habit.Status, kind period.Kind, at time.Time) *memSource {
	m.nextID++
	m.events = append(m.events, habit.TrackingEvent{
		ID:            m.nextID,
		HabitName:     name,
		Status:        st,
		CurrentPeriod: kind,
		Timestamp:     at,
	})
	return m
}

const (
	hour = time.Hour
	day  = 24 * time.Hour
	week = 7 * day
)

func newTestAnalyzer(src Source) *Analyzer {
	return New(src, WithClock(testutil.NewFixedClock(testutil.Reference)))
}

func days(n ...int) []time.Duration {
	out := make([]time.Duration, len(n))
	for i, d := range n {
		out[i] = time.Duration(d) * day
	}
	return out
}
