package calc

import "math"

// Deck describes a deck surface with a balustrade.
type Deck struct {
	Length float64 // m
	Width  float64 // m

	RailingLength   float64 // m; zero for no railing
	RailingHeight   float64 // m
	BalusterWidth   float64 // m, square section
	BalusterSpacing float64 // m, clear gap between balusters

	Coverage        float64 // m² covered by one container, one coat
	ContainerVolume float64 // m³
	Coats           float64 // zero means one coat
}

// StainResult is the stain needed for a deck.
type StainResult struct {
	DeckArea    float64 // m²
	Balusters   float64
	RailingArea float64 // m², four faces of every baluster
	SurfaceArea float64 // m²
	Containers  float64
	Volume      float64 // m³
}

// Compute counts balusters along the railing and the containers of stain
// for every coat.
func (d Deck) Compute() (StainResult, error) {
	nan := math.NaN()
	out := StainResult{nan, nan, nan, nan, nan, nan}

	for _, f := range []struct {
		name string
		v    float64
	}{
		{"length", d.Length},
		{"width", d.Width},
		{"railing_length", d.RailingLength},
		{"railing_height", d.RailingHeight},
		{"baluster_width", d.BalusterWidth},
		{"baluster_spacing", d.BalusterSpacing},
		{"container_volume", d.ContainerVolume},
		{"coats", d.Coats},
	} {
		if err := requireNonNegative(f.name, f.v); err != nil {
			return out, err
		}
	}
	if err := requirePositive("coverage", d.Coverage); err != nil {
		return out, err
	}
	coats := orDefault(d.Coats, 1)

	out.DeckArea = d.Length * d.Width
	out.Balusters, out.RailingArea = 0, 0
	if railing := zeroIfEmpty(d.RailingLength); railing > 0 {
		pitch := d.BalusterWidth + d.BalusterSpacing
		if pitch == 0 {
			return out, invalid("baluster_spacing", "baluster width and spacing are both zero")
		}
		out.Balusters = ceilCount(railing / pitch)
		out.RailingArea = out.Balusters * 4 * d.BalusterWidth * d.RailingHeight
	}
	out.SurfaceArea = out.DeckArea + out.RailingArea

	coverUnits := out.SurfaceArea * coats / d.Coverage
	out.Containers = ceilCount(coverUnits)
	out.Volume = coverUnits * d.ContainerVolume
	return out, nil
}
