package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
	if s.Location() != time.Local {
		t.Errorf("default location = %v, want time.Local", s.Location())
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("final Open() failed: %v", err)
	}
	defer s.Close()

	for _, table := range []string{"habits", "tracking"} {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found after idempotent opens: %v", table, err)
		}
	}
}

func TestOpen_InMemory(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer s.Close()

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM habits").Scan(&count); err != nil {
		t.Errorf("query failed: %v", err)
	}
}

func TestOpen_InvalidPath(t *testing.T) {
	_, err := Open("/nonexistent/dir/test.db")
	if err == nil {
		t.Error("expected error for invalid path, got nil")
	}
}

func TestOpen_Pragmas(t *testing.T) {
	s, _ := createTestStore(t)

	checks := map[string]string{
		"journal_mode": "wal",
		"foreign_keys": "1",
		"busy_timeout": "5000",
		"user_version": "1",
	}
	for name, want := range checks {
		if err := s.verifyPragma(name, want); err != nil {
			t.Error(err)
		}
	}
}

func TestOpen_CreatesTrackingIndex(t *testing.T) {
	s, _ := createTestStore(t)

	var name string
	err := s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='index' AND name='idx_tracking_name_timestamp'",
	).Scan(&name)
	if err != nil {
		t.Errorf("tracking index not found: %v", err)
	}
}

// Databases written by earlier versions of the tracker declare the timestamp
// column as DATETIME and have no index; opening one must migrate it and read
// timestamps in the store's location.
func TestOpen_MigratesLegacyDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.db")

	raw, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("sql.Open failed: %v", err)
	}
	stmts := []string{
		`CREATE TABLE habits (name TEXT UNIQUE, description TEXT, period TEXT, active BOOLEAN, PRIMARY KEY (name))`,
		`CREATE TABLE tracking (
			tracking_id Integer PRIMARY KEY AUTOINCREMENT,
			name TEXT, status TEXT, current_period TEXT, timestamp DATETIME,
			FOREIGN KEY (name) REFERENCES habits(name) ON DELETE CASCADE ON UPDATE CASCADE)`,
		`INSERT INTO habits VALUES ('Workout', NULL, 'week', 1)`,
		`INSERT INTO tracking (name, status, current_period, timestamp) VALUES ('Workout', 'active', 'week', '2025-02-01 08:00:00')`,
		`INSERT INTO tracking (name, status, current_period, timestamp) VALUES ('Workout', 'streak complete', 'week', '2025-02-10 18:30:00')`,
	}
	for _, stmt := range stmts {
		if _, err := raw.Exec(stmt); err != nil {
			t.Fatalf("legacy setup %q failed: %v", stmt, err)
		}
	}
	raw.Close()

	loc := time.FixedZone("UTC+1", 60*60)
	s, err := Open(path, WithLocation(loc))
	if err != nil {
		t.Fatalf("Open(legacy) failed: %v", err)
	}
	defer s.Close()

	if err := s.verifyPragma("user_version", "1"); err != nil {
		t.Error(err)
	}

	h, found, err := s.Habit(bg(), "Workout")
	if err != nil || !found {
		t.Fatalf("Habit() = found %v, err %v", found, err)
	}
	if h.Description != "" {
		t.Errorf("NULL description read as %q, want empty", h.Description)
	}

	events, err := s.TrackingEvents(bg(), "Workout")
	if err != nil {
		t.Fatalf("TrackingEvents() failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	want := time.Date(2025, 2, 10, 18, 30, 0, 0, loc)
	if !events[0].Timestamp.Equal(want) {
		t.Errorf("newest timestamp = %v, want %v", events[0].Timestamp, want)
	}
}

func TestClose_NilDB(t *testing.T) {
	s := &Store{db: nil}
	if err := s.Close(); err != nil {
		t.Errorf("Close() on nil db should not error: %v", err)
	}
}

func TestDB_ReturnsUnderlyingConnection(t *testing.T) {
	s, _ := createTestStore(t)
	if s.DB() == nil {
		t.Fatal("DB() returned nil")
	}
	if err := s.DB().Ping(); err != nil {
		t.Errorf("Ping() failed: %v", err)
	}
}
