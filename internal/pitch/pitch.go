// Package pitch converts roof slope between degrees, percent grade and
// rise-per-12 notation.
//
// These notations are related through tan and atan, not a fixed ratio, so
// they are kept out of the linear unit tables in package units.
// Degrees pivot every conversion the way the base unit does for linear tables.
//
// Inputs outside the physical range (90° or more, negative slopes) are not
// rejected here; the roof formulas above this package decide what is valid.
package pitch

import (
	"fmt"
	"math"
	"strings"
)

// Notation names a way of writing roof slope.
type Notation int

const (
	NotationUnknown Notation = iota
	Degrees
	Percent
	Rise12
)

var notationNames = map[Notation]string{
	Degrees: "degrees",
	Percent: "percent",
	Rise12:  "rise12",
}

func (n Notation) String() string {
	if name, ok := notationNames[n]; ok {
		return name
	}
	return fmt.Sprintf("notation(%d)", int(n))
}

// ParseNotation accepts "degrees"/"deg"/"°", "percent"/"%" and
// "rise12"/":12"/"x:12".
func ParseNotation(s string) (Notation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "degrees", "degree", "deg", "°":
		return Degrees, nil
	case "percent", "%", "grade":
		return Percent, nil
	case "rise12", ":12", "x:12", "in/ft":
		return Rise12, nil
	}
	return NotationUnknown, fmt.Errorf("unknown pitch notation %q", s)
}

const radToDeg = 180 / math.Pi

// PitchToDegrees converts a rise per 12 units of run to an angle in degrees.
func PitchToDegrees(rise12 float64) float64 {
	return math.Atan(rise12/12) * radToDeg
}

// DegreesToPitch12 converts an angle in degrees to rise per 12 units of run.
func DegreesToPitch12(deg float64) float64 {
	return math.Tan(deg/radToDeg) * 12
}

// PercentToDegrees converts a percent grade to an angle in degrees.
func PercentToDegrees(percent float64) float64 {
	return math.Atan(percent/100) * radToDeg
}

// DegreesToPitchPercent converts an angle in degrees to percent grade.
func DegreesToPitchPercent(deg float64) float64 {
	return math.Tan(deg/radToDeg) * 100
}

// Pitch12ToPercent converts rise-per-12 directly to percent grade.
func Pitch12ToPercent(rise12 float64) float64 {
	return rise12 / 12 * 100
}

// PercentToPitch12 converts percent grade directly to rise-per-12.
func PercentToPitch12(percent float64) float64 {
	return percent / 100 * 12
}

// Convert re-expresses value from one notation to another through degrees.
// NaN propagates as NaN.
func Convert(value float64, from, to Notation) (float64, error) {
	if from == to {
		if _, ok := notationNames[from]; !ok {
			return math.NaN(), fmt.Errorf("unknown pitch notation %s", from)
		}
		return value, nil
	}

	var deg float64
	switch from {
	case Degrees:
		deg = value
	case Percent:
		deg = PercentToDegrees(value)
	case Rise12:
		deg = PitchToDegrees(value)
	default:
		return math.NaN(), fmt.Errorf("unknown pitch notation %s", from)
	}

	switch to {
	case Degrees:
		return deg, nil
	case Percent:
		if from == Rise12 {
			return Pitch12ToPercent(value), nil
		}
		return DegreesToPitchPercent(deg), nil
	case Rise12:
		if from == Percent {
			return PercentToPitch12(value), nil
		}
		return DegreesToPitch12(deg), nil
	default:
		return math.NaN(), fmt.Errorf("unknown pitch notation %s", to)
	}
}

// SlopeFactor returns the length multiplier from horizontal run to sloped
// length (1/cos of the angle) for an angle in degrees.
func SlopeFactor(deg float64) float64 {
	return 1 / math.Cos(deg/radToDeg)
}
