package pitch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sitecalc/internal/units"
)

func TestPitchToDegrees_NotLinear(t *testing.T) {
	assert.InDelta(t, 45, PitchToDegrees(12), 1e-9)
	assert.InDelta(t, 26.565051177, PitchToDegrees(6), 1e-6)

	// A linear factor fitted at 12:12 would put 6:12 at 22.5°.
	k := PitchToDegrees(12) / 12
	assert.Greater(t, math.Abs(PitchToDegrees(6)-6*k), 4.0)
}

func TestPitchNotLinearTableUnit(t *testing.T) {
	// Percent and rise-per-12 are not members of the linear angle table.
	assert.False(t, units.AngleTable.Has("%"))
	assert.False(t, units.AngleTable.Has(":12"))
}

func TestKnownValues(t *testing.T) {
	assert.InDelta(t, 100, DegreesToPitchPercent(45), 1e-9)
	assert.InDelta(t, 12, DegreesToPitch12(45), 1e-9)
	assert.InDelta(t, 45, PercentToDegrees(100), 1e-9)
	assert.InDelta(t, 50, Pitch12ToPercent(6), 1e-12)
	assert.InDelta(t, 6, PercentToPitch12(50), 1e-12)
	assert.Equal(t, 0.0, PitchToDegrees(0))
}

func TestRoundTrip(t *testing.T) {
	for _, rise := range []float64{0.5, 3, 4, 6, 8, 12, 18} {
		deg := PitchToDegrees(rise)
		assert.InDelta(t, rise, DegreesToPitch12(deg), 1e-9)

		pct := DegreesToPitchPercent(deg)
		assert.InDelta(t, deg, PercentToDegrees(pct), 1e-9)
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		from  Notation
		to    Notation
		want  float64
	}{
		{"rise12 to degrees", 12, Rise12, Degrees, 45},
		{"degrees to percent", 45, Degrees, Percent, 100},
		{"percent to rise12", 50, Percent, Rise12, 6},
		{"rise12 to percent", 4, Rise12, Percent, 33.333333333},
		{"identity", 7, Rise12, Rise12, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.value, tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-6)
		})
	}

	got, err := Convert(math.NaN(), Rise12, Degrees)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got))

	_, err = Convert(1, NotationUnknown, Degrees)
	assert.Error(t, err)
	_, err = Convert(1, Degrees, NotationUnknown)
	assert.Error(t, err)
}

func TestParseNotation(t *testing.T) {
	for in, want := range map[string]Notation{
		"deg":     Degrees,
		"°":       Degrees,
		"Percent": Percent,
		"%":       Percent,
		":12":     Rise12,
		"rise12":  Rise12,
	} {
		got, err := ParseNotation(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseNotation("slope")
	assert.Error(t, err)
	assert.Equal(t, "rise12", Rise12.String())
}

func TestSlopeFactor(t *testing.T) {
	assert.InDelta(t, math.Sqrt2, SlopeFactor(45), 1e-12)
	assert.Equal(t, 1.0, SlopeFactor(0))
}
