package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoom_Rectangle(t *testing.T) {
	r, err := Room{Shape: ShapeRectangle, Walls: []float64{4, 3}, Height: 2.4, Doors: 1, Windows: 1}.Compute()
	require.NoError(t, err)

	assert.Equal(t, 14.0, r.Perimeter)
	assert.InDelta(t, 33.6, r.GrossArea, 1e-9)
	assert.InDelta(t, 3.06, r.Openings, 1e-9)
	assert.InDelta(t, 30.54, r.NetArea, 1e-9)
}

func TestRoom_Shapes(t *testing.T) {
	sq, err := Room{Shape: ShapeSquare, Walls: []float64{3}, Height: 2}.Compute()
	require.NoError(t, err)
	assert.Equal(t, 12.0, sq.Perimeter)
	assert.Equal(t, 24.0, sq.NetArea)

	walls, err := Room{Shape: ShapeWalls, Walls: []float64{4, 3, 4, 2.5, 0.5}, Height: 2}.Compute()
	require.NoError(t, err)
	assert.Equal(t, 14.0, walls.Perimeter)
	assert.Equal(t, 28.0, walls.GrossArea)
}

func TestRoom_CustomOpenings(t *testing.T) {
	r, err := Room{Walls: []float64{5, 5}, Height: 2.5, Doors: 2, DoorArea: 2, Windows: 3, WindowArea: 1}.Compute()
	require.NoError(t, err)
	assert.Equal(t, 7.0, r.Openings)
	assert.Equal(t, 43.0, r.NetArea)
}

func TestRoom_Errors(t *testing.T) {
	_, err := Room{Shape: ShapeRectangle, Walls: []float64{4}, Height: 2}.Compute()
	assert.True(t, IsInputError(err))

	_, err = Room{Walls: []float64{1, 1}, Height: 1, Doors: 5}.Compute()
	assert.EqualError(t, err, "openings: doors and windows (9.75 m²) exceed the wall area (4 m²)")

	_, err = Room{Walls: []float64{1, -1}, Height: 1}.Compute()
	assert.EqualError(t, err, "wall2: must not be negative, got -1")

	_, err = Room{Shape: ShapeWalls, Height: 1}.Compute()
	assert.True(t, IsInputError(err))
}

func TestRoom_EmptyHeight(t *testing.T) {
	r, err := Room{Walls: []float64{4, 3}, Height: math.NaN()}.Compute()
	require.NoError(t, err)
	assert.Equal(t, 14.0, r.Perimeter)
	assert.True(t, math.IsNaN(r.NetArea))
}

func TestParseShape(t *testing.T) {
	for in, want := range map[string]Shape{"": ShapeRectangle, "Square": ShapeSquare, "walls": ShapeWalls} {
		got, err := ParseShape(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseShape("hexagon")
	assert.Error(t, err)
}
