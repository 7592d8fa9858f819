// Package period maps a reference instant onto calendar buckets.
//
// A bucket ("window") is an inclusive [Start, End] pair at second precision:
//
//   - day:     00:00:00 .. 23:59:59 of the reference day
//   - week:    Monday 00:00:00 .. Sunday 23:59:59
//   - month:   1st 00:00:00 .. last calendar day 23:59:59 (leap-year aware)
//   - quarter: Jan-Mar, Apr-Jun, Jul-Sep, Oct-Dec
//   - year:    Jan 1 00:00:00 .. Dec 31 23:59:59
//
// Shifting back yields the immediately preceding bucket of the same kind.
// Month, quarter and year buckets have variable length, so the previous
// bucket is always rebuilt from calendar fields rather than by subtracting a
// fixed duration.
//
// All arithmetic happens in the location of the reference instant. The
// package has no state and no side effects.
package period
