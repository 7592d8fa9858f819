// Package store provides SQLite-backed durable storage for habits and their
// tracking history.
//
// The store holds two record types:
//   - Habits: name (primary key), description, period, active flag
//   - Tracking: an append-only log of timestamped events per habit
//     (creation markers and "streak complete" entries)
//
// # Critical Patterns
//
// Append-only history:
//   - Tracking rows are only ever inserted; renames and deletes reach them
//     through ON UPDATE / ON DELETE CASCADE on the habit foreign key
//   - Each event records the period kind in effect when it was written, so a
//     later period change never rewrites history
//
// Deterministic query results:
//   - Habits are returned in creation order (rowid)
//   - Tracking events are returned newest first:
//     ORDER BY timestamp DESC, tracking_id DESC
//
// Absence is not an error:
//   - Unknown habits read as found=false; empty histories read as empty
//     slices, never nil
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity (required for cascades)
//
// Timestamps are stored as "YYYY-MM-DD HH:MM:SS" text in the store's
// location (time.Local unless WithLocation is given), which keeps them
// lexically sortable and readable by databases created by earlier versions
// of the tracker.
package store
