package store

import (
	"testing"
	"time"

	"github.com/roach88/habitual/internal/habit"
	"github.com/roach88/habitual/internal/period"
	"github.com/roach88/habitual/internal/testutil"
)

func TestHabit_NotFound(t *testing.T) {
	s, _ := createTestStore(t)

	h, found, err := s.Habit(bg(), "Nope")
	if err != nil {
		t.Fatalf("Habit() error = %v, want nil", err)
	}
	if found {
		t.Errorf("Habit() found = true for missing habit: %+v", h)
	}
}

func TestHabits_CreationOrder(t *testing.T) {
	s, _ := createTestStore(t)
	names := []string{"Workout", "Eat healthy", "Read", "Drink Enough"}
	for _, n := range names {
		mustAddHabit(t, s, n, period.Day)
	}

	habits, err := s.Habits(bg())
	if err != nil {
		t.Fatalf("Habits() failed: %v", err)
	}
	if len(habits) != len(names) {
		t.Fatalf("len(habits) = %d, want %d", len(habits), len(names))
	}
	for i, h := range habits {
		if h.Name != names[i] {
			t.Errorf("habits[%d] = %q, want %q", i, h.Name, names[i])
		}
	}
}

func TestHabits_Empty(t *testing.T) {
	s, _ := createTestStore(t)

	habits, err := s.Habits(bg())
	if err != nil {
		t.Fatalf("Habits() failed: %v", err)
	}
	if len(habits) != 0 {
		t.Errorf("len(habits) = %d, want 0", len(habits))
	}
}

func TestActiveAndInactiveNames(t *testing.T) {
	s, _ := createTestStore(t)
	mustAddHabit(t, s, "Workout", period.Week)
	mustAddHabit(t, s, "Read", period.Day)
	if err := s.AddHabit(bg(), habit.Habit{Name: "Paint", Period: period.Month}); err != nil {
		t.Fatalf("AddHabit() failed: %v", err)
	}

	active, err := s.ActiveNames(bg())
	if err != nil {
		t.Fatalf("ActiveNames() failed: %v", err)
	}
	if len(active) != 2 || active[0] != "Workout" || active[1] != "Read" {
		t.Errorf("ActiveNames() = %v, want [Workout Read]", active)
	}

	inactive, err := s.InactiveNames(bg())
	if err != nil {
		t.Fatalf("InactiveNames() failed: %v", err)
	}
	if len(inactive) != 1 || inactive[0] != "Paint" {
		t.Errorf("InactiveNames() = %v, want [Paint]", inactive)
	}
}

func TestTrackingEvents_NewestFirst(t *testing.T) {
	s, _ := createTestStore(t)
	mustAddHabit(t, s, "Eat healthy", period.Day)

	// Recorded out of order on purpose.
	for _, days := range []int{3, 1, 5, 2, 4} {
		mustComplete(t, s, "Eat healthy", testutil.Reference.AddDate(0, 0, -days))
	}

	events, err := s.TrackingEvents(bg(), "Eat healthy")
	if err != nil {
		t.Fatalf("TrackingEvents() failed: %v", err)
	}
	if len(events) != 6 {
		t.Fatalf("len(events) = %d, want 6", len(events))
	}
	// The creation marker is stamped at Reference, newer than every completion.
	if events[0].Status != habit.StatusActive {
		t.Errorf("events[0].Status = %q, want creation marker first", events[0].Status)
	}
	for i := 1; i < len(events); i++ {
		if events[i].Timestamp.After(events[i-1].Timestamp) {
			t.Errorf("events[%d] (%v) newer than events[%d] (%v)",
				i, events[i].Timestamp, i-1, events[i-1].Timestamp)
		}
	}
}

func TestTrackingEvents_TiesBreakOnID(t *testing.T) {
	s, _ := createTestStore(t)
	mustAddHabit(t, s, "Eat healthy", period.Day)

	at := testutil.Reference.Add(-time.Hour)
	first := mustComplete(t, s, "Eat healthy", at)
	second := mustComplete(t, s, "Eat healthy", at)

	events, _ := s.TrackingEvents(bg(), "Eat healthy")
	if events[1].ID != second.ID || events[2].ID != first.ID {
		t.Errorf("tie order = [%d %d], want [%d %d]", events[1].ID, events[2].ID, second.ID, first.ID)
	}
}

func TestTrackingEvents_AllHabits(t *testing.T) {
	s, _ := createTestStore(t)
	mustAddHabit(t, s, "Workout", period.Week)
	mustAddHabit(t, s, "Read", period.Day)
	mustComplete(t, s, "Read", testutil.Reference.Add(-time.Hour))

	events, err := s.TrackingEvents(bg(), "")
	if err != nil {
		t.Fatalf("TrackingEvents(all) failed: %v", err)
	}
	if len(events) != 3 {
		t.Errorf("len(events) = %d, want 3", len(events))
	}
}

func TestTrackingEvents_UnknownHabit(t *testing.T) {
	s, _ := createTestStore(t)

	events, err := s.TrackingEvents(bg(), "Nope")
	if err != nil {
		t.Fatalf("TrackingEvents() error = %v, want nil", err)
	}
	if events == nil {
		t.Error("TrackingEvents() returned nil, want empty slice")
	}
	if len(events) != 0 {
		t.Errorf("len(events) = %d, want 0", len(events))
	}
}

func TestTrackingEvents_Location(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	clk := testutil.NewFixedClock(testutil.Reference)
	s, err := Open(":memory:", WithLocation(loc), WithClock(clk))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	mustAddHabit(t, s, "Read", period.Day)
	events, _ := s.TrackingEvents(bg(), "Read")
	if events[0].Timestamp.Location() != loc {
		t.Errorf("location = %v, want %v", events[0].Timestamp.Location(), loc)
	}
	if !events[0].Timestamp.Equal(testutil.Reference) {
		t.Errorf("timestamp = %v, want same instant as %v", events[0].Timestamp, testutil.Reference)
	}
}
