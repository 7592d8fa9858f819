// Package analysis reconstructs streaks and breaks from a habit's tracking
// history.
//
// Every operation reads the history once, sorts it newest first and walks it
// backward against a sliding period window. The window starts at the period
// containing now and, after each completion is classified, is re-anchored to
// the period preceding that completion, computed from the period kind the
// completion was recorded under. A habit may therefore change its period over
// its life without corrupting older history.
//
// Two walks share that window logic:
//
//   - CurrentStreak stops at the first completion outside the window.
//   - Series walks the whole history, alternating between streak runs and
//     break runs, and emits a running tally for every completion.
//
// The walk is a fold over an explicit scanState value. The Analyzer itself
// holds no per-scan state and is safe to reuse across calls.
//
// Absence is not an error: an unknown habit or an empty history yields a
// zero streak or no records. Invalid period kinds abort the operation with an
// error matching period.ErrInvalidPeriodKind.
package analysis
