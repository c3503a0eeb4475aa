package calc

import (
	"fmt"
	"math"
	"strings"
)

// Isbash turbulence coefficients.
const (
	IsbashHighTurbulence = 0.86
	IsbashLowTurbulence  = 1.20
)

// ParseTurbulence returns the Isbash constant for "high" or "low"
// turbulence.
func ParseTurbulence(s string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return IsbashHighTurbulence, nil
	case "low":
		return IsbashLowTurbulence, nil
	}
	return math.NaN(), fmt.Errorf("unknown turbulence %q: want high or low", s)
}

// StandardGravity is the gravitational acceleration the calculator pages
// default to, in m/s².
const StandardGravity = 9.806

// WaterDensity is fresh water at 4 °C, in kg/m³.
const WaterDensity = 1000.0

// Riprap holds inputs to the Isbash stone sizing equation.
type Riprap struct {
	Velocity        float64 // m/s
	Gravity         float64 // m/s²; zero means StandardGravity
	IsbashConstant  float64 // zero means IsbashHighTurbulence
	SpecificGravity float64 // of the stone, dimensionless
}

// RiprapResult is the median stone size and the weight of one such stone.
type RiprapResult struct {
	D50         float64 // m
	StoneWeight float64 // kg, sphere of diameter D50
}

// Compute evaluates D50 = v² / (2·g·C²·(SG − 1)).
func (r Riprap) Compute() (RiprapResult, error) {
	g := orDefault(r.Gravity, StandardGravity)
	c := orDefault(r.IsbashConstant, IsbashHighTurbulence)
	nan := RiprapResult{D50: math.NaN(), StoneWeight: math.NaN()}

	if err := requireNonNegative("velocity", r.Velocity); err != nil {
		return nan, err
	}
	if err := requirePositive("gravity", g); err != nil {
		return nan, err
	}
	if err := requirePositive("isbash_constant", c); err != nil {
		return nan, err
	}
	if r.SpecificGravity <= 1 {
		return nan, invalid("specific_gravity", "must be greater than 1, got %v", r.SpecificGravity)
	}
	if empty(r.Velocity, g, c, r.SpecificGravity) {
		return nan, nil
	}

	d50 := r.Velocity * r.Velocity / (2 * g * c * c * (r.SpecificGravity - 1))
	weight := math.Pi / 6 * d50 * d50 * d50 * r.SpecificGravity * WaterDensity
	return RiprapResult{D50: d50, StoneWeight: weight}, nil
}
