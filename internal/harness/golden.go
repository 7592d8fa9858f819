package harness

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/habitual/internal/analysis"
	"github.com/roach88/habitual/internal/habit"
)

// Snapshot is the golden form of a scenario run. Field order is fixed by the
// struct, so the encoding is byte-for-byte reproducible.
type Snapshot struct {
	Scenario string                  `json:"scenario"`
	Now      string                  `json:"now"`
	Habits   []analysis.HabitStatus  `json:"habits"`
	Series   []analysis.SeriesRecord `json:"series"`
}

// NewSnapshot captures the analysis output of result.
func NewSnapshot(scenarioName string, result *Result) Snapshot {
	return Snapshot{
		Scenario: scenarioName,
		Now:      result.Now.Format(habit.TimestampLayout),
		Habits:   result.Habits,
		Series:   result.Series,
	}
}

// MarshalSnapshot encodes the snapshot of result as indented JSON with a
// trailing newline, the format golden files are stored in.
func MarshalSnapshot(scenarioName string, result *Result) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewSnapshot(scenarioName, result)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file. The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares the given result's snapshot against a golden file.
// This is useful when you've already run a scenario and want to compare
// the result against a golden file without re-running.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
