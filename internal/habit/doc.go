// Package habit provides the record types shared by the store and the
// analysis packages.
//
// This package contains type definitions and name handling only. It imports
// nothing internal except period, so store and analysis can both depend on it
// without cycles.
//
// Key constraints:
//   - Habit names are the identity of a habit; they are NFC-normalised and
//     trimmed before every comparison or write (see NormalizeName)
//   - Tracking events are append-only and carry the period kind in effect
//     when they were recorded
//   - Timestamps have second precision on the implicit local clock
//   - All JSON tags use snake_case
package habit
