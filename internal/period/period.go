package period

import (
	"fmt"
	"time"
)

// Kind is the calendar granularity a habit is tracked against.
type Kind string

const (
	Day     Kind = "day"
	Week    Kind = "week"
	Month   Kind = "month"
	Quarter Kind = "quarter"
	Year    Kind = "year"
)

// Kinds returns all recognised period kinds, finest first.
func Kinds() []Kind {
	return []Kind{Day, Week, Month, Quarter, Year}
}

// Valid reports whether k is one of the recognised kinds.
func (k Kind) Valid() bool {
	switch k {
	case Day, Week, Month, Quarter, Year:
		return true
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind converts s into a Kind. Matching is exact.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", &KindError{Kind: s}
	}
	return k, nil
}

// Window is one calendar bucket, inclusive on both ends.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within the window. t is compared at second
// precision, the granularity windows are built at.
func (w Window) Contains(t time.Time) bool {
	t = t.Truncate(time.Second)
	return !t.Before(w.Start) && !t.After(w.End)
}

func (w Window) String() string {
	return fmt.Sprintf("[%s, %s]", w.Start.Format(time.DateTime), w.End.Format(time.DateTime))
}

// Compute returns the window of the given kind containing ref, or the window
// immediately before it when shiftBack is set.
func Compute(kind Kind, ref time.Time, shiftBack bool) (Window, error) {
	ref = ref.Truncate(time.Second)
	y, m, d := ref.Date()
	loc := ref.Location()

	back := 0
	if shiftBack {
		back = 1
	}

	switch kind {
	case Day:
		d -= back
		return Window{
			Start: time.Date(y, m, d, 0, 0, 0, 0, loc),
			End:   time.Date(y, m, d, 23, 59, 59, 0, loc),
		}, nil

	case Week:
		// time.Weekday counts from Sunday; weeks here start on Monday.
		monday := d - (int(ref.Weekday())+6)%7 - 7*back
		return Window{
			Start: time.Date(y, m, monday, 0, 0, 0, 0, loc),
			End:   time.Date(y, m, monday+6, 23, 59, 59, 0, loc),
		}, nil

	case Month:
		m -= time.Month(back)
		return monthSpan(y, m, 1, loc), nil

	case Quarter:
		first := ((m-1)/3)*3 + 1 - time.Month(3*back)
		return monthSpan(y, first, 3, loc), nil

	case Year:
		y -= back
		return Window{
			Start: time.Date(y, time.January, 1, 0, 0, 0, 0, loc),
			End:   time.Date(y, time.December, 31, 23, 59, 59, 0, loc),
		}, nil
	}

	return Window{}, &KindError{Kind: string(kind)}
}

// monthSpan covers n whole months starting at (y, m). Month values outside
// 1..12 are normalised by time.Date, which is what carries a shift across a
// year boundary.
func monthSpan(y int, m time.Month, n int, loc *time.Location) Window {
	start := time.Date(y, m, 1, 0, 0, 0, 0, loc)
	// Day 0 of the month after the span is the span's last calendar day.
	end := time.Date(y, m+time.Month(n), 0, 23, 59, 59, 0, loc)
	return Window{Start: start, End: end}
}
