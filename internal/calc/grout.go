package calc

import "math"

// DefaultGroutDensity is cured cementitious grout, in kg/m³.
const DefaultGroutDensity = 1900.0

// Grout describes a tiled area and its joints.
type Grout struct {
	TileLength float64 // m
	TileWidth  float64 // m
	JointWidth float64 // m
	JointDepth float64 // m, usually the tile thickness
	Area       float64 // m²
	Density    float64 // kg/m³; zero means DefaultGroutDensity
}

// GroutResult is the grout needed to fill every joint.
type GroutResult struct {
	GapRatio float64 // share of the area covered by tile
	Volume   float64 // m³
	Weight   float64 // kg
	Tiles    float64
}

// Compute treats the area as a continuous grid of tile-plus-joint cells:
// R = tile / ((length + gap)·(width + gap)), volume = area·(1 − R)·depth.
func (g Grout) Compute() (GroutResult, error) {
	nan := math.NaN()
	out := GroutResult{nan, nan, nan, nan}

	for _, f := range []struct {
		name string
		v    float64
	}{
		{"tile_length", g.TileLength},
		{"tile_width", g.TileWidth},
		{"joint_width", g.JointWidth},
		{"joint_depth", g.JointDepth},
		{"area", g.Area},
	} {
		if err := requireNonNegative(f.name, f.v); err != nil {
			return out, err
		}
	}
	density := orDefault(g.Density, DefaultGroutDensity)

	cell := (g.TileLength + g.JointWidth) * (g.TileWidth + g.JointWidth)
	if empty(cell) {
		return out, nil
	}
	if cell == 0 {
		return out, invalid("tile_length", "tile and joint sizes are all zero")
	}
	out.GapRatio = g.TileLength * g.TileWidth / cell
	out.Volume = g.Area * (1 - out.GapRatio) * g.JointDepth
	out.Weight = out.Volume * density
	out.Tiles = ceilCount(g.Area / cell)
	return out, nil
}
