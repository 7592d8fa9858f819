package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/habitual/internal/habit"
	"github.com/roach88/habitual/internal/period"
	"github.com/roach88/habitual/internal/testutil"
)

// createTestStore creates a new file-backed store in UTC with a clock frozen
// at testutil.Reference.
func createTestStore(t *testing.T) (*Store, *testutil.FixedClock) {
	t.Helper()
	clk := testutil.NewFixedClock(testutil.Reference)
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithLocation(time.UTC), WithClock(clk))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, clk
}

// mustAddHabit adds an active habit or fails the test.
func mustAddHabit(t *testing.T, s *Store, name string, kind period.Kind) {
	t.Helper()
	err := s.AddHabit(context.Background(), habit.Habit{
		Name:        name,
		Period:      kind,
		Active:      true,
		Description: "test description",
	})
	if err != nil {
		t.Fatalf("AddHabit(%q) failed: %v", name, err)
	}
}

// mustComplete records a completion at the given time or fails the test.
func mustComplete(t *testing.T, s *Store, name string, at time.Time) habit.TrackingEvent {
	t.Helper()
	ev, err := s.RecordCompletion(context.Background(), name, at)
	if err != nil {
		t.Fatalf("RecordCompletion(%q) failed: %v", name, err)
	}
	return ev
}

func bg() context.Context { return context.Background() }
