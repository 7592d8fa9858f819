package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `name: three-days
description: "Three days in a row ending today"
now: "2025-02-12 14:30:00"
habits:
  - name: Read
    period: day
completions:
  - habit: Read
    ago: [0d, 1d, 2d]
expect:
  current_streak:
    Read: 3
  completed:
    Read: true
`

const failingScenario = `name: wrong-streak
description: "Expects a streak the history does not have"
now: "2025-02-12 14:30:00"
habits:
  - name: Read
    period: day
completions:
  - habit: Read
    ago: [1d, 2d]
expect:
  current_streak:
    Read: 2
`

const schemaViolation = `name: bad-period
description: "Unknown period kind"
now: "2025-02-12 14:30:00"
habits:
  - name: Read
    period: fortnight
`

// writeScenarios creates a scenarios directory holding the given files.
func writeScenarios(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "scenarios")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestTestCommandMissingArgs(t *testing.T) {
	opts := newTestOptions(t, "text")
	_, err := execute(t, NewTestCommand(opts))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	opts := newTestOptions(t, "text")
	_, err := execute(t, NewTestCommand(opts), "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenarios directory not found")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommandEmptyScenariosDir(t *testing.T) {
	opts := newTestOptions(t, "text")
	dir := writeScenarios(t, nil)

	out := mustExecute(t, NewTestCommand(opts), dir)
	assert.Contains(t, out, "No scenarios found")
}

func TestTestCommandEmptyScenariosDirJSON(t *testing.T) {
	opts := newTestOptions(t, "json")
	dir := writeScenarios(t, nil)

	out := mustExecute(t, NewTestCommand(opts), dir)

	var result TestResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, testTraceID, resp.TraceID)
	assert.Equal(t, 0, result.Total)
}

func TestTestCommandPassing(t *testing.T) {
	opts := newTestOptions(t, "text")
	dir := writeScenarios(t, map[string]string{"three-days.yaml": passingScenario})

	out := mustExecute(t, NewTestCommand(opts), dir)
	assert.Contains(t, out, "✓ three-days")
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTestCommandFailing(t *testing.T) {
	opts := newTestOptions(t, "json")
	dir := writeScenarios(t, map[string]string{
		"three-days.yaml":   passingScenario,
		"wrong-streak.yaml": failingScenario,
		"bad-period.yaml":   schemaViolation,
	})

	out, err := execute(t, NewTestCommand(opts), dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var result TestResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_TEST_FAILED", resp.Error.Code)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Passed)
	assert.Equal(t, 2, result.Failed)

	byName := map[string]ScenarioResult{}
	for _, s := range result.Scenarios {
		byName[s.Name] = s
	}
	require.Contains(t, byName, "wrong-streak")
	assert.Contains(t, byName["wrong-streak"].Errors[0], "current_streak[Read]")
	require.Contains(t, byName, "bad-period.yaml")
	assert.Contains(t, byName["bad-period.yaml"].Errors[0], "failed to load scenario")
}

func TestTestCommandFilter(t *testing.T) {
	opts := newTestOptions(t, "text")
	dir := writeScenarios(t, map[string]string{
		"three-days.yaml":   passingScenario,
		"wrong-streak.yaml": failingScenario,
	})

	out := mustExecute(t, NewTestCommand(opts), dir, "--filter", "three-*")
	assert.Contains(t, out, "1 total")
	assert.NotContains(t, out, "wrong-streak")
}

func TestTestCommandGoldenUpdateAndCompare(t *testing.T) {
	opts := newTestOptions(t, "text")
	dir := writeScenarios(t, map[string]string{"three-days.yaml": passingScenario})
	goldenPath := filepath.Join(dir, "golden", "three-days.golden")

	out := mustExecute(t, NewTestCommand(opts), dir, "--update")
	assert.Contains(t, out, "✓ three-days (golden updated)")
	require.FileExists(t, goldenPath)

	golden, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	var snapshot map[string]any
	require.NoError(t, json.Unmarshal(golden, &snapshot))
	assert.Equal(t, "three-days", snapshot["scenario"])
	assert.Equal(t, "2025-02-12 14:30:00", snapshot["now"])

	// Unchanged output matches.
	mustExecute(t, NewTestCommand(opts), dir)

	// A drifted golden file fails.
	require.NoError(t, os.WriteFile(goldenPath, bytes.Replace(golden, []byte(`"streak_run": 3`), []byte(`"streak_run": 4`), 1), 0o644))
	out, err = execute(t, NewTestCommand(opts), dir)
	require.Error(t, err)
	assert.Contains(t, out, "does not match golden file")
}

func TestTestHelpText(t *testing.T) {
	opts := newTestOptions(t, "text")
	out := mustExecute(t, NewTestCommand(opts), "--help")

	assert.Contains(t, out, "golden")
	assert.Contains(t, out, "--update")
	assert.Contains(t, out, "--filter")
	assert.Contains(t, out, "scenarios-dir")
}

func TestFindScenarioFiles(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "test1.yaml"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "test2.yml"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "ignore.txt"), []byte(""), 0o644))

	files, err := findScenarioFiles(tmpDir, "")
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestFindScenarioFilesWithFilter(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "daily-streak.yaml"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "daily-gap.yaml"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "weekly-workout.yaml"), []byte(""), 0o644))

	files, err := findScenarioFiles(tmpDir, "daily-*")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	for _, f := range files {
		assert.Contains(t, filepath.Base(f), "daily-")
	}

	_, err = findScenarioFiles(tmpDir, "[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter pattern")
}

func TestFindScenarioFilesSubdirectories(t *testing.T) {
	tmpDir := t.TempDir()
	subDir := filepath.Join(tmpDir, "subdir")
	goldenDir := filepath.Join(tmpDir, "golden")
	require.NoError(t, os.MkdirAll(subDir, 0o755))
	require.NoError(t, os.MkdirAll(goldenDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "root.yaml"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(subDir, "sub.yaml"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(goldenDir, "stray.yaml"), []byte(""), 0o644))

	files, err := findScenarioFiles(tmpDir, "")
	require.NoError(t, err)
	assert.Len(t, files, 2, "golden directories are skipped")
}

func TestGoldenFilePath(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"/path/to/scenario.yaml", "/path/to/golden/scenario.golden"},
		{"/path/to/scenario.yml", "/path/to/golden/scenario.golden"},
		{"scenarios/test.yaml", "scenarios/golden/test.golden"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, goldenFilePath(tc.input))
	}
}
