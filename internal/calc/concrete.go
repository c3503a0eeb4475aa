package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DryVolumeFactor converts a wet concrete volume to the dry volume of
// ingredients needed to produce it.
const DryVolumeFactor = 1.54

// CementDensity is the bulk density of Portland cement, in kg/m³.
const CementDensity = 1440.0

// DefaultBagWeight is a metric cement bag, in kg.
const DefaultBagWeight = 50.0

// Mix is a nominal cement:sand:aggregate ratio by volume.
type Mix struct {
	Cement    float64
	Sand      float64
	Aggregate float64
}

// Common nominal mixes.
var (
	MixM10 = Mix{Cement: 1, Sand: 3, Aggregate: 6}
	MixM15 = Mix{Cement: 1, Sand: 2, Aggregate: 4}
	MixM20 = Mix{Cement: 1, Sand: 1.5, Aggregate: 3}
	MixM25 = Mix{Cement: 1, Sand: 1, Aggregate: 2}
)

// DefaultMix is used when a slab carries no mix.
var DefaultMix = Mix{Cement: 1, Sand: 2, Aggregate: 3}

func (m Mix) String() string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return f(m.Cement) + ":" + f(m.Sand) + ":" + f(m.Aggregate)
}

// ParseMix reads a ratio written "1:2:3" or one of the grade names
// "M10", "M15", "M20", "M25".
func ParseMix(s string) (Mix, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "M10":
		return MixM10, nil
	case "M15":
		return MixM15, nil
	case "M20":
		return MixM20, nil
	case "M25":
		return MixM25, nil
	}
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return Mix{}, fmt.Errorf("mix %q: want cement:sand:aggregate", s)
	}
	var vals [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || v < 0 {
			return Mix{}, fmt.Errorf("mix %q: invalid part %q", s, p)
		}
		vals[i] = v
	}
	m := Mix{Cement: vals[0], Sand: vals[1], Aggregate: vals[2]}
	if m.total() <= 0 {
		return Mix{}, fmt.Errorf("mix %q: parts sum to zero", s)
	}
	return m, nil
}

func (m Mix) total() float64 { return m.Cement + m.Sand + m.Aggregate }

// Slab is a rectangular concrete pour.
type Slab struct {
	Length    float64 // m
	Width     float64 // m
	Depth     float64 // m
	Mix       Mix     // zero value means DefaultMix
	BagWeight float64 // kg; zero means DefaultBagWeight
}

// SlabResult lists the ingredient quantities for a slab.
type SlabResult struct {
	WetVolume       float64 // m³
	DryVolume       float64 // m³
	CementVolume    float64 // m³
	CementWeight    float64 // kg
	Bags            float64
	SandVolume      float64 // m³
	AggregateVolume float64 // m³
}

// Compute splits the dry volume across the mix parts.
func (s Slab) Compute() (SlabResult, error) {
	nan := math.NaN()
	out := SlabResult{nan, nan, nan, nan, nan, nan, nan}

	for _, f := range []struct {
		name string
		v    float64
	}{{"length", s.Length}, {"width", s.Width}, {"depth", s.Depth}} {
		if err := requireNonNegative(f.name, f.v); err != nil {
			return out, err
		}
	}
	mix := s.Mix
	if mix == (Mix{}) {
		mix = DefaultMix
	}
	if mix.Cement < 0 || mix.Sand < 0 || mix.Aggregate < 0 || mix.total() <= 0 {
		return out, invalid("mix", "invalid ratio %s", mix)
	}
	bag := orDefault(s.BagWeight, DefaultBagWeight)
	if err := requirePositive("bag_weight", bag); err != nil {
		return out, err
	}

	out.WetVolume = s.Length * s.Width * s.Depth
	if empty(out.WetVolume) {
		return out, nil
	}
	out.DryVolume = out.WetVolume * DryVolumeFactor
	total := mix.total()
	out.CementVolume = out.DryVolume * mix.Cement / total
	out.CementWeight = out.CementVolume * CementDensity
	out.Bags = ceilCount(out.CementWeight / bag)
	out.SandVolume = out.DryVolume * mix.Sand / total
	out.AggregateVolume = out.DryVolume * mix.Aggregate / total
	return out, nil
}

// DefaultSandDensity is dry loose sand, in kg/m³.
const DefaultSandDensity = 1600.0

// Fill is a layer of loose material spread over an area.
type Fill struct {
	Area    float64 // m²
	Depth   float64 // m
	Density float64 // kg/m³; zero means DefaultSandDensity
}

// FillResult is the volume and weight of a fill layer.
type FillResult struct {
	Volume float64 // m³
	Weight float64 // kg
}

// Compute returns area × depth and its weight.
func (f Fill) Compute() (FillResult, error) {
	out := FillResult{Volume: math.NaN(), Weight: math.NaN()}
	if err := requireNonNegative("area", f.Area); err != nil {
		return out, err
	}
	if err := requireNonNegative("depth", f.Depth); err != nil {
		return out, err
	}
	density := orDefault(f.Density, DefaultSandDensity)
	if err := requirePositive("density", density); err != nil {
		return out, err
	}
	out.Volume = f.Area * f.Depth
	out.Weight = out.Volume * density
	return out, nil
}
