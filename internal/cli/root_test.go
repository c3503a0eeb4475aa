package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sitecalc/internal/testutil"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	opts := &RootOptions{IDs: testutil.NewFixedIDGenerator("test-trace")}
	cmd := newRootCommand(opts)
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// decodeJSON decodes a single JSON response, with Data left as raw JSON.
func decodeJSON(t *testing.T, out string) (CLIResponse, json.RawMessage) {
	t.Helper()
	var raw struct {
		CLIResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &raw), out)
	return raw.CLIResponse, raw.Data
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCommand()

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"convert", "composite", "pitch", "fmt", "units", "pages", "calc", "validate", "test"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	_, _, err := execute(t, "--format", "yaml", "units")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), `invalid format "yaml"`)
}

func TestRootCommand_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitecalc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display:\n  max_fraction_digits: 4\n"), 0o644))

	out, _, err := execute(t, "--config", path, "convert", "1", "ft", "m")
	require.NoError(t, err)
	assert.Equal(t, "1 ft = 0.3048 m\n", out)
}

func TestRootCommand_BadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitecalc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  format: xml\n"), 0o644))

	_, _, err := execute(t, "--config", path, "units")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRootCommand_VerboseLogsToStderr(t *testing.T) {
	out, errOut, err := execute(t, "--verbose", "--format", "json", "convert", "1", "ft", "m")
	require.NoError(t, err)

	resp, _ := decodeJSON(t, out)
	assert.Equal(t, "ok", resp.Status)
	assert.Contains(t, errOut, "command started")
	assert.Contains(t, errOut, "converted")
}

func TestRootCommand_CatalogDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gravel.cue"), []byte(gravelPage), 0o644))
	path := filepath.Join(t.TempDir(), "sitecalc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog:\n  dir: "+dir+"\n"), 0o644))

	out, _, err := execute(t, "--config", path, "pages")
	require.NoError(t, err)
	assert.Contains(t, out, "riprap")
	assert.Contains(t, out, "gravel")
}

const gravelPage = `
page: gravel: {
	title:   "Gravel Calculator"
	formula: "sand"
	fields: {
		area:    {dimension: "area", units: ["m²", "ft²"], default_unit: "m²"}
		depth:   {dimension: "length", units: ["cm", "in"], default_unit: "cm"}
		density: {dimension: "density", default_value: 1680}
		volume:  {dimension: "volume", units: ["m³", "yd³"], default_unit: "yd³", output: true}
		weight:  {dimension: "weight", units: ["t", "ton"], default_unit: "ton", output: true}
	}
}
`
