// Package clock supplies the single implicit local clock analyses run against.
package clock

import "time"

// Clock reports the current instant.
//
// Implementations return second-precision times; windows and stored
// timestamps never carry sub-second parts.
type Clock interface {
	Now() time.Time
}

// Wall reads the system clock in the local time zone.
type Wall struct{}

// Now returns time.Now truncated to the second.
func (Wall) Now() time.Time {
	return time.Now().Truncate(time.Second)
}

// Func adapts a plain function to Clock.
type Func func() time.Time

// Now calls f.
func (f Func) Now() time.Time {
	return f()
}
