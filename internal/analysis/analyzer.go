package analysis

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/roach88/habitual/internal/clock"
	"github.com/roach88/habitual/internal/habit"
)

// Source is the read side of the habit store.
type Source interface {
	// Habit returns the named habit; found is false if it does not exist.
	Habit(ctx context.Context, name string) (h habit.Habit, found bool, err error)

	// Habits returns every habit in creation order.
	Habits(ctx context.Context) ([]habit.Habit, error)

	// TrackingEvents returns the habit's events, or every habit's events when
	// name is empty.
	TrackingEvents(ctx context.Context, name string) ([]habit.TrackingEvent, error)
}

// Analyzer answers streak and series questions over a Source.
type Analyzer struct {
	src    Source
	clock  clock.Clock
	logger *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithClock sets the clock "now" is read from. Defaults to the wall clock.
func WithClock(c clock.Clock) Option {
	return func(a *Analyzer) {
		if c != nil {
			a.clock = c
		}
	}
}

// WithLogger sets the logger scan summaries are written to at debug level.
// Defaults to a logger that discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// New creates an Analyzer reading from src.
func New(src Source, opts ...Option) *Analyzer {
	a := &Analyzer{
		src:    src,
		clock:  clock.Wall{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// history fetches a habit and its events sorted newest first.
// found is false if the habit does not exist.
func (a *Analyzer) history(ctx context.Context, name string) (habit.Habit, []habit.TrackingEvent, bool, error) {
	name = habit.NormalizeName(name)

	h, found, err := a.src.Habit(ctx, name)
	if err != nil {
		return habit.Habit{}, nil, false, fmt.Errorf("fetch habit %q: %w", name, err)
	}
	if !found {
		return habit.Habit{}, nil, false, nil
	}

	events, err := a.src.TrackingEvents(ctx, name)
	if err != nil {
		return habit.Habit{}, nil, false, fmt.Errorf("fetch tracking events %q: %w", name, err)
	}
	return h, newestFirst(events), true, nil
}

// newestFirst returns a sorted copy of events: timestamp descending, then ID
// descending. The sort is stable so equal events keep the source's order.
func newestFirst(events []habit.TrackingEvent) []habit.TrackingEvent {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(x, y habit.TrackingEvent) int {
		if c := y.Timestamp.Compare(x.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(y.ID, x.ID)
	})
	return sorted
}
