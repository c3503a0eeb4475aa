package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	harnessScenarios = "../harness/testdata/scenarios"
	harnessGoldens   = "../harness/testdata/golden"
)

const feetScenario = `name: feet
description: "One foot in meters"
steps:
  - op: convert
    dimension: length
    amount: 1
    from: ft
    to: m
    expect:
      value: 0.3048
`

const wrongScenario = `name: wrong
description: "Deliberately wrong expectation"
steps:
  - op: convert
    dimension: length
    amount: 1
    from: ft
    to: m
    expect:
      value: 0.5
`

func TestTestCommand_HarnessScenarios(t *testing.T) {
	out, _, err := execute(t, "test", harnessScenarios, "--golden-dir", harnessGoldens)
	require.NoError(t, err, out)

	assert.Contains(t, out, "✓ riprap_worked_example")
	assert.Contains(t, out, "Test Summary: 4 passed, 0 failed, 4 total")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTestCommand_Filter(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "test", harnessScenarios,
		"--golden-dir", harnessGoldens, "--filter", "riprap*")
	require.NoError(t, err)

	resp, data := decodeJSON(t, out)
	assert.Equal(t, "ok", resp.Status)
	var got TestResult
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, 1, got.Total)
	assert.Equal(t, "riprap_worked_example", got.Scenarios[0].Name)
}

func TestTestCommand_UpdateThenCompare(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "feet.yaml"), []byte(feetScenario), 0o644))

	out, _, err := execute(t, "test", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ feet (golden updated)")

	golden, err := os.ReadFile(filepath.Join(dir, "golden", "feet.golden"))
	require.NoError(t, err)
	assert.Contains(t, string(golden), `"scenario_name": "feet"`)
	assert.Contains(t, string(golden), `"value": "0.3048"`)

	_, _, err = execute(t, "test", dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "golden", "feet.golden"), []byte("{}\n"), 0o644))
	out, _, err = execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "trace does not match golden file")
}

func TestTestCommand_FailingScenario(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wrong.yaml"), []byte(wrongScenario), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "feet.yaml"), []byte(feetScenario), 0o644))

	out, _, err := execute(t, "--format", "json", "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp, data := decodeJSON(t, out)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_TEST_FAILED", resp.Error.Code)

	var got TestResult
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, 1, got.Passed)
	assert.Equal(t, 1, got.Failed)
	assert.Equal(t, "feet", got.Scenarios[0].Name)
	assert.Equal(t, "wrong", got.Scenarios[1].Name)
	assert.NotEmpty(t, got.Scenarios[1].Errors)
}

func TestTestCommand_LoadError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("name: bad\nsteps: []\n"), 0o644))

	out, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ bad.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestTestCommand_NoScenarios(t *testing.T) {
	out, _, err := execute(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestTestCommand_MissingDir(t *testing.T) {
	_, _, err := execute(t, "test", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
