package cli

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenarios(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"a.yaml": passingScenario,
		"b.yaml": failingScenario,
	})

	loaded, errs := LoadScenarios(dir, "", LoadModeFailFast)
	require.Empty(t, errs)
	require.Len(t, loaded, 2)
	assert.Equal(t, "three-days", loaded[0].Scenario.Name)
	assert.Equal(t, filepath.Join(dir, "a.yaml"), loaded[0].Path)
	assert.Equal(t, "wrong-streak", loaded[1].Scenario.Name)
}

func TestLoadScenariosModes(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"a.yaml": schemaViolation,
		"b.yaml": unknownFieldScenario,
		"c.yaml": passingScenario,
	})

	loaded, errs := LoadScenarios(dir, "", LoadModeFailFast)
	assert.Len(t, errs, 1, "fail fast stops at the first bad file")
	assert.Empty(t, loaded)

	loaded, errs = LoadScenarios(dir, "", LoadModeCollectAll)
	assert.Len(t, errs, 2)
	require.Len(t, loaded, 1)
	assert.Equal(t, "three-days", loaded[0].Scenario.Name)

	var loadErr *LoadError
	require.True(t, errors.As(errs[0], &loadErr))
	assert.Equal(t, ErrCodeSchema, loadErr.Code)
	assert.Equal(t, filepath.Join(dir, "a.yaml"), loadErr.Path)
	assert.Contains(t, loadErr.Error(), "a.yaml: E006: ")
}

func TestLoadScenariosFilter(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"daily.yaml":  passingScenario,
		"weekly.yaml": schemaViolation,
	})

	loaded, errs := LoadScenarios(dir, "daily", LoadModeCollectAll)
	require.Empty(t, errs)
	require.Len(t, loaded, 1)
}

func TestLoadScenariosDirectoryErrors(t *testing.T) {
	loaded, errs := LoadScenarios("/nonexistent/scenarios", "", LoadModeCollectAll)
	assert.Nil(t, loaded)
	require.Len(t, errs, 1)

	var loadErr *LoadError
	require.True(t, errors.As(errs[0], &loadErr))
	assert.Equal(t, ErrCodeNotFound, loadErr.Code)
	assert.Equal(t, "E005: scenarios directory not found: /nonexistent/scenarios", loadErr.Error())

	file := filepath.Join(writeScenarios(t, map[string]string{"a.yaml": passingScenario}), "a.yaml")
	loaded, errs = LoadScenarios(file, "", LoadModeCollectAll)
	assert.Nil(t, loaded)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "not a directory")
}
