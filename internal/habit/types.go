package habit

import (
	"time"

	"github.com/roach88/habitual/internal/period"
)

// Status is the kind of a tracking event.
type Status string

const (
	// StatusActive marks the creation of an active habit.
	StatusActive Status = "active"

	// StatusInactive marks the creation of a habit that starts out inactive.
	StatusInactive Status = "inactive"

	// StatusStreakComplete marks the fulfilment of one period.
	StatusStreakComplete Status = "streak complete"
)

// CountsTowardStreak reports whether events with this status take part in
// streak reconstruction. Creation markers do not.
func (s Status) CountsTowardStreak() bool {
	return s == StatusStreakComplete
}

// TimestampLayout is the storage and wire format of event timestamps.
const TimestampLayout = time.DateTime

// Habit is a recurring activity tracked against a calendar period.
type Habit struct {
	Name        string      `json:"name"`
	Period      period.Kind `json:"period"`
	Active      bool        `json:"active"`
	Description string      `json:"description"`
}

// TrackingEvent is one immutable entry of a habit's history.
type TrackingEvent struct {
	ID            int64       `json:"id"`
	HabitName     string      `json:"habit_name"`
	Status        Status      `json:"status"`
	CurrentPeriod period.Kind `json:"current_period"`
	Timestamp     time.Time   `json:"timestamp"`
}

// CreationStatus returns the marker written when a habit is created.
func CreationStatus(active bool) Status {
	if active {
		return StatusActive
	}
	return StatusInactive
}
