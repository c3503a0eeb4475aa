package units

import (
	"fmt"
	"strings"
)

// Dimension identifies a physical quantity kind. Each dimension owns exactly
// one table and one base unit.
type Dimension int

const (
	DimensionUnknown Dimension = iota
	Length
	Area
	Volume
	Weight
	Density
	Velocity
	Acceleration
	Angle
	Time
)

var dimensionNames = map[Dimension]string{
	Length:       "length",
	Area:         "area",
	Volume:       "volume",
	Weight:       "weight",
	Density:      "density",
	Velocity:     "velocity",
	Acceleration: "acceleration",
	Angle:        "angle",
	Time:         "time",
}

// Dimensions lists every known dimension in declaration order.
func Dimensions() []Dimension {
	return []Dimension{Length, Area, Volume, Weight, Density, Velocity, Acceleration, Angle, Time}
}

func (d Dimension) String() string {
	if name, ok := dimensionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("dimension(%d)", int(d))
}

// ParseDimension resolves a dimension by name, case-insensitively.
// "mass" is accepted for Weight and "pitch" for Angle.
func ParseDimension(name string) (Dimension, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "mass":
		return Weight, nil
	case "pitch":
		return Angle, nil
	}
	for d, n := range dimensionNames {
		if n == key {
			return d, nil
		}
	}
	return DimensionUnknown, fmt.Errorf("unknown dimension %q", name)
}
