package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/habitual/internal/testutil"
)

const testTraceID = "test-trace-0001"

// newTestOptions returns root options over a fresh database file with the
// clock frozen at testutil.Reference and a fixed trace id.
func newTestOptions(t *testing.T, format string) *RootOptions {
	t.Helper()
	dir := t.TempDir()
	return &RootOptions{
		Format:   format,
		Database: filepath.Join(dir, "habits.db"),
		Home:     dir,
		Cwd:      dir,
		Clock:    testutil.NewFixedClock(testutil.Reference),
		Location: time.UTC,
		TraceGen: testutil.NewFixedTraceGenerator(testTraceID),
	}
}

// execute runs cmd with args and returns what it wrote to stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// mustExecute runs cmd and fails the test on error.
func mustExecute(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	out, err := execute(t, cmd, args...)
	require.NoError(t, err, "output: %s", out)
	return out
}

// decodeResponse parses a JSON CLI response, decoding Data into data.
func decodeResponse(t *testing.T, out string, data any) CLIResponse {
	t.Helper()
	var raw struct {
		CLIResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &raw), "output: %s", out)
	if data != nil {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return raw.CLIResponse
}

// seedHabits adds "Read" (daily) and "Workout" (weekly) and completes Read
// on the three days before the reference time.
func seedHabits(t *testing.T, opts *RootOptions) {
	t.Helper()
	mustExecute(t, NewAddCommand(opts), "Read", "--period", "day", "--description", "ten pages")
	mustExecute(t, NewAddCommand(opts), "Workout", "--period", "week")
	for _, at := range []string{"2025-02-09 20:00:00", "2025-02-10 20:00:00", "2025-02-11 20:00:00"} {
		mustExecute(t, NewCompleteCommand(opts), "Read", "--at", at)
	}
}
