package calc

import (
	"math"

	"github.com/roach88/sitecalc/internal/pitch"
)

// DefaultTrussSpacing is 24 inches on center, in m.
const DefaultTrussSpacing = 0.6096

// Roof is a gable roof framed with common trusses.
type Roof struct {
	BuildingLength float64 // m, along the ridge
	Span           float64 // m, wall to wall
	Spacing        float64 // m on center; zero means DefaultTrussSpacing
	Pitch          float64 // rise per 12 of run
	Overhang       float64 // m, horizontal eave projection
}

// RoofResult lists truss count and rafter geometry.
type RoofResult struct {
	Trusses float64
	Rise    float64 // m
	Rafter  float64 // m, ridge to eave along the slope
	Angle   float64 // degrees
}

// Compute places a truss at each end and every Spacing between, and sizes
// the rafter as the hypotenuse of half the span and the rise plus the sloped
// overhang.
func (r Roof) Compute() (RoofResult, error) {
	nan := math.NaN()
	out := RoofResult{nan, nan, nan, nan}

	for _, f := range []struct {
		name string
		v    float64
	}{
		{"building_length", r.BuildingLength},
		{"span", r.Span},
		{"pitch", r.Pitch},
		{"overhang", r.Overhang},
	} {
		if err := requireNonNegative(f.name, f.v); err != nil {
			return out, err
		}
	}
	spacing := orDefault(r.Spacing, DefaultTrussSpacing)
	if err := requirePositive("spacing", spacing); err != nil {
		return out, err
	}

	out.Trusses = ceilCount(r.BuildingLength/spacing) + 1
	out.Angle = pitch.PitchToDegrees(r.Pitch)

	run := r.Span / 2
	out.Rise = run * r.Pitch / 12
	out.Rafter = math.Hypot(run, out.Rise) + zeroIfEmpty(r.Overhang)*pitch.SlopeFactor(out.Angle)
	if empty(run, r.Pitch) {
		out.Rafter = nan
	}
	return out, nil
}
