package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrout_Compute(t *testing.T) {
	r, err := Grout{TileLength: 0.3, TileWidth: 0.3, JointWidth: 0.003, JointDepth: 0.008, Area: 10}.Compute()
	require.NoError(t, err)

	assert.InDelta(t, 0.98029604941, r.GapRatio, 1e-9)
	assert.InDelta(t, 0.0015763160474, r.Volume, 1e-12)
	assert.InDelta(t, 2.99500049015, r.Weight, 1e-9)
	assert.Equal(t, 109.0, r.Tiles)
}

func TestGrout_NoJoint(t *testing.T) {
	r, err := Grout{TileLength: 0.5, TileWidth: 0.25, JointWidth: 0, JointDepth: 0.01, Area: 1}.Compute()
	require.NoError(t, err)
	assert.Equal(t, 1.0, r.GapRatio)
	assert.Equal(t, 0.0, r.Volume)
	assert.Equal(t, 8.0, r.Tiles)
}

func TestGrout_EmptyAndInvalid(t *testing.T) {
	r, err := Grout{TileLength: math.NaN(), TileWidth: 0.3, JointWidth: 0.003, JointDepth: 0.008, Area: 10}.Compute()
	require.NoError(t, err)
	assert.True(t, math.IsNaN(r.Volume))

	_, err = Grout{TileLength: 0.3, TileWidth: 0.3, JointWidth: -0.003, JointDepth: 0.008, Area: 10}.Compute()
	assert.EqualError(t, err, "joint_width: must not be negative, got -0.003")

	_, err = Grout{Area: 1, JointDepth: 0.01}.Compute()
	assert.True(t, IsInputError(err))
}
