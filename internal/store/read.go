package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/habitual/internal/habit"
	"github.com/roach88/habitual/internal/period"
)

// Habit retrieves a single habit by name.
// Returns found=false (and no error) if the habit does not exist.
func (s *Store) Habit(ctx context.Context, name string) (habit.Habit, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT name, COALESCE(description, ''), COALESCE(period, ''), COALESCE(active, 0)
		FROM habits
		WHERE name = ?
	`, habit.NormalizeName(name))

	h, err := scanHabit(row)
	if err == sql.ErrNoRows {
		return habit.Habit{}, false, nil
	}
	if err != nil {
		return habit.Habit{}, false, fmt.Errorf("read habit: %w", err)
	}
	return h, true, nil
}

// Habits returns every habit in creation order.
func (s *Store) Habits(ctx context.Context) ([]habit.Habit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, COALESCE(description, ''), COALESCE(period, ''), COALESCE(active, 0)
		FROM habits
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query habits: %w", err)
	}
	defer rows.Close()

	habits := []habit.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan habit: %w", err)
		}
		habits = append(habits, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate habits: %w", err)
	}

	return habits, nil
}

// ActiveNames returns the names of active habits in creation order.
func (s *Store) ActiveNames(ctx context.Context) ([]string, error) {
	return s.namesByActive(ctx, true)
}

// InactiveNames returns the names of inactive habits in creation order.
func (s *Store) InactiveNames(ctx context.Context) ([]string, error) {
	return s.namesByActive(ctx, false)
}

func (s *Store) namesByActive(ctx context.Context, active bool) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM habits
		WHERE active = ?
		ORDER BY rowid ASC
	`, active)
	if err != nil {
		return nil, fmt.Errorf("query habit names: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan habit name: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate habit names: %w", err)
	}

	return names, nil
}

// TrackingEvents returns the tracking history of one habit, or of all habits
// when name is empty, newest first (timestamp DESC, tracking_id DESC).
//
// An unknown habit yields an empty slice, not an error.
func (s *Store) TrackingEvents(ctx context.Context, name string) ([]habit.TrackingEvent, error) {
	// CAST keeps the driver from converting columns declared DATETIME by
	// older databases into UTC time.Time values.
	query := `
		SELECT tracking_id, name, status, current_period, CAST(timestamp AS TEXT)
		FROM tracking
	`
	var args []any
	if name != "" {
		query += " WHERE name = ?"
		args = append(args, habit.NormalizeName(name))
	}
	query += " ORDER BY tracking.timestamp DESC, tracking_id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tracking: %w", err)
	}
	defer rows.Close()

	events := []habit.TrackingEvent{}
	for rows.Next() {
		var (
			ev     habit.TrackingEvent
			status string
			kind   string
			stamp  string
		)
		if err := rows.Scan(&ev.ID, &ev.HabitName, &status, &kind, &stamp); err != nil {
			return nil, fmt.Errorf("scan tracking: %w", err)
		}
		ts, err := s.decodeTimestamp(stamp)
		if err != nil {
			return nil, fmt.Errorf("scan tracking %d: %w", ev.ID, err)
		}
		ev.Status = habit.Status(status)
		ev.CurrentPeriod = period.Kind(kind)
		ev.Timestamp = ts
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tracking: %w", err)
	}

	return events, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(r rowScanner) (habit.Habit, error) {
	var (
		h    habit.Habit
		kind string
	)
	if err := r.Scan(&h.Name, &h.Description, &kind, &h.Active); err != nil {
		return habit.Habit{}, err
	}
	h.Period = period.Kind(kind)
	return h, nil
}
