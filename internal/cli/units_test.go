package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnits_Dimension(t *testing.T) {
	out, _, err := execute(t, "units", "length")
	require.NoError(t, err)

	assert.Contains(t, out, "length (base m)")
	assert.Contains(t, out, "feet")
	assert.Contains(t, out, "0.3048")
	assert.Contains(t, out, "composites: ft/in, m/cm, yd/ft")
	assert.NotContains(t, out, "area")
}

func TestUnits_All(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "units")
	require.NoError(t, err)

	_, data := decodeJSON(t, out)
	var got UnitsResult
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got.Tables, 9)

	density := got.Tables[4]
	assert.Equal(t, "density", density.Dimension)
	assert.Equal(t, "kg/m³", density.Base)
	for _, u := range density.Units {
		if u.Symbol == "g/L" {
			assert.Equal(t, "kg/m³", u.AliasOf)
			assert.Equal(t, 1.0, u.Factor)
		}
	}
}

func TestUnits_UnknownDimension(t *testing.T) {
	out, _, err := execute(t, "units", "loudness")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E004]")
}
