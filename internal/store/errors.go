package store

import "errors"

var (
	// ErrHabitExists is returned when adding or renaming onto a taken name.
	ErrHabitExists = errors.New("habit already exists")

	// ErrHabitNotFound is returned by writes addressed to an unknown habit.
	ErrHabitNotFound = errors.New("habit not found")

	// ErrNoChanges is returned by ModifyHabit when the update is empty.
	ErrNoChanges = errors.New("no changes requested")
)
