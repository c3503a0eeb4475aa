package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sitecalc/internal/units"
)

func TestDeck_Compute(t *testing.T) {
	gallon, err := units.ToBase(1, "gal", units.VolumeTable)
	require.NoError(t, err)

	r, err := Deck{
		Length:          4,
		Width:           3,
		RailingLength:   10,
		RailingHeight:   0.9,
		BalusterWidth:   0.04,
		BalusterSpacing: 0.1,
		Coverage:        30,
		ContainerVolume: gallon,
		Coats:           2,
	}.Compute()
	require.NoError(t, err)

	assert.Equal(t, 12.0, r.DeckArea)
	assert.Equal(t, 72.0, r.Balusters)
	assert.InDelta(t, 10.368, r.RailingArea, 1e-9)
	assert.InDelta(t, 22.368, r.SurfaceArea, 1e-9)
	assert.Equal(t, 2.0, r.Containers)
	assert.InDelta(t, 1.4912*gallon, r.Volume, 1e-12)
}

func TestDeck_NoRailingOneCoat(t *testing.T) {
	r, err := Deck{Length: 5, Width: 6, Coverage: 30, ContainerVolume: 0.004}.Compute()
	require.NoError(t, err)
	assert.Equal(t, 0.0, r.Balusters)
	assert.Equal(t, 30.0, r.SurfaceArea)
	assert.Equal(t, 1.0, r.Containers)
	assert.InDelta(t, 0.004, r.Volume, 1e-15)
}

func TestDeck_Errors(t *testing.T) {
	_, err := Deck{Length: 1, Width: 1, Coverage: 0}.Compute()
	assert.EqualError(t, err, "coverage: must be greater than zero, got 0")

	_, err = Deck{Length: 1, Width: 1, Coverage: 10, RailingLength: 3}.Compute()
	assert.True(t, IsInputError(err))
}

func TestDeck_EmptyCoverage(t *testing.T) {
	r, err := Deck{Length: 4, Width: 3, Coverage: math.NaN()}.Compute()
	require.NoError(t, err)
	assert.Equal(t, 12.0, r.DeckArea)
	assert.True(t, math.IsNaN(r.Containers))
}
