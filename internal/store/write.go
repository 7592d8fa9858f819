package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/roach88/habitual/internal/habit"
	"github.com/roach88/habitual/internal/period"
)

// AddHabit inserts a habit together with its creation marker.
//
// The marker is a tracking event with status "active" (or "inactive" for a
// habit created inactive) stamped with the store clock. Both rows are written
// in one transaction. Returns ErrHabitExists if the name is taken and a
// period.KindError if the period is not recognised.
func (s *Store) AddHabit(ctx context.Context, h habit.Habit) error {
	name, err := habit.ValidateName(h.Name)
	if err != nil {
		return fmt.Errorf("add habit: %w", err)
	}
	kind, err := period.ParseKind(string(h.Period))
	if err != nil {
		return fmt.Errorf("add habit %q: %w", name, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("add habit: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	exists, err := habitExists(ctx, tx, name)
	if err != nil {
		return fmt.Errorf("add habit: %w", err)
	}
	if exists {
		return fmt.Errorf("add habit %q: %w", name, ErrHabitExists)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO habits (name, description, period, active)
		VALUES (?, ?, ?, ?)
	`, name, h.Description, string(kind), h.Active)
	if err != nil {
		return fmt.Errorf("add habit: insert habit: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tracking (name, status, current_period, timestamp)
		VALUES (?, ?, ?, ?)
	`, name, string(habit.CreationStatus(h.Active)), string(kind), s.encodeTimestamp(s.clock.Now()))
	if err != nil {
		return fmt.Errorf("add habit: insert creation marker: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("add habit: commit: %w", err)
	}
	return nil
}

// HabitUpdate lists the fields ModifyHabit should change. Nil fields are
// left as they are.
type HabitUpdate struct {
	NewName     *string
	Description *string
	Period      *period.Kind
	Active      *bool
}

// IsZero reports whether the update changes nothing.
func (u HabitUpdate) IsZero() bool {
	return u.NewName == nil && u.Description == nil && u.Period == nil && u.Active == nil
}

// ModifyHabit applies a partial update to a habit.
//
// A rename reaches the habit's tracking rows through ON UPDATE CASCADE.
// Changing the period does not touch history: past events keep the period
// they were recorded under.
//
// Returns ErrNoChanges for an empty update, ErrHabitNotFound if the habit
// does not exist and ErrHabitExists if the new name is taken.
func (s *Store) ModifyHabit(ctx context.Context, name string, upd HabitUpdate) error {
	if upd.IsZero() {
		return ErrNoChanges
	}
	name = habit.NormalizeName(name)

	var (
		sets   []string
		params []any
	)
	if upd.NewName != nil {
		newName, err := habit.ValidateName(*upd.NewName)
		if err != nil {
			return fmt.Errorf("modify habit %q: %w", name, err)
		}
		sets = append(sets, "name = ?")
		params = append(params, newName)
	}
	if upd.Description != nil {
		sets = append(sets, "description = ?")
		params = append(params, *upd.Description)
	}
	if upd.Period != nil {
		kind, err := period.ParseKind(string(*upd.Period))
		if err != nil {
			return fmt.Errorf("modify habit %q: %w", name, err)
		}
		sets = append(sets, "period = ?")
		params = append(params, string(kind))
	}
	if upd.Active != nil {
		sets = append(sets, "active = ?")
		params = append(params, *upd.Active)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("modify habit: begin tx: %w", err)
	}
	defer tx.Rollback()

	exists, err := habitExists(ctx, tx, name)
	if err != nil {
		return fmt.Errorf("modify habit: %w", err)
	}
	if !exists {
		return fmt.Errorf("modify habit %q: %w", name, ErrHabitNotFound)
	}

	if upd.NewName != nil {
		newName := habit.NormalizeName(*upd.NewName)
		if newName != name {
			taken, err := habitExists(ctx, tx, newName)
			if err != nil {
				return fmt.Errorf("modify habit: %w", err)
			}
			if taken {
				return fmt.Errorf("modify habit %q: rename to %q: %w", name, newName, ErrHabitExists)
			}
		}
	}

	query := "UPDATE habits SET " + strings.Join(sets, ", ") + " WHERE name = ?"
	params = append(params, name)
	if _, err := tx.ExecContext(ctx, query, params...); err != nil {
		return fmt.Errorf("modify habit: update: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("modify habit: commit: %w", err)
	}
	return nil
}

// DeleteHabit removes a habit and, through ON DELETE CASCADE, its history.
// Returns ErrHabitNotFound if the habit does not exist.
func (s *Store) DeleteHabit(ctx context.Context, name string) error {
	name = habit.NormalizeName(name)

	result, err := s.db.ExecContext(ctx, `DELETE FROM habits WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete habit: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete habit %q: %w", name, ErrHabitNotFound)
	}
	return nil
}

// RecordCompletion appends a "streak complete" event for the habit, stamped
// with the habit's current period. A zero at means now (store clock).
//
// Nothing stops two completions landing in the same period; the streak
// reconstruction decides what they mean.
func (s *Store) RecordCompletion(ctx context.Context, name string, at time.Time) (habit.TrackingEvent, error) {
	name = habit.NormalizeName(name)
	if at.IsZero() {
		at = s.clock.Now()
	}

	var kind string
	err := s.db.QueryRowContext(ctx, `SELECT period FROM habits WHERE name = ?`, name).Scan(&kind)
	if err == sql.ErrNoRows {
		return habit.TrackingEvent{}, fmt.Errorf("record completion %q: %w", name, ErrHabitNotFound)
	}
	if err != nil {
		return habit.TrackingEvent{}, fmt.Errorf("record completion: %w", err)
	}

	stamp := s.encodeTimestamp(at)
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO tracking (name, status, current_period, timestamp)
		VALUES (?, ?, ?, ?)
	`, name, string(habit.StatusStreakComplete), kind, stamp)
	if err != nil {
		return habit.TrackingEvent{}, fmt.Errorf("record completion: insert: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return habit.TrackingEvent{}, fmt.Errorf("record completion: last insert id: %w", err)
	}

	ts, err := s.decodeTimestamp(stamp)
	if err != nil {
		return habit.TrackingEvent{}, fmt.Errorf("record completion: %w", err)
	}
	return habit.TrackingEvent{
		ID:            id,
		HabitName:     name,
		Status:        habit.StatusStreakComplete,
		CurrentPeriod: period.Kind(kind),
		Timestamp:     ts,
	}, nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func habitExists(ctx context.Context, q queryer, name string) (bool, error) {
	var count int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM habits WHERE name = ?`, name).Scan(&count); err != nil {
		return false, fmt.Errorf("check habit exists: %w", err)
	}
	return count > 0, nil
}
