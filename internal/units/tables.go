package units

import (
	"fmt"
	"math"
)

// Exact definitions, in SI base units. Derived factors are written as
// constant expressions so they are evaluated exactly before rounding to
// float64 once.
const (
	inch        = 0.0254
	foot        = 12 * inch
	yard        = 3 * foot
	mile        = 5280 * foot
	pound       = 0.45359237
	ounce       = pound / 16
	shortTon    = 2000 * pound
	usGallon    = 231 * inch * inch * inch
	cubicFoot   = foot * foot * foot
	cubicYard   = yard * yard * yard
	nauticalMi  = 1852.0
	standardG   = 9.80665
	secondsHour = 3600.0
)

// LengthTable is the canonical length table. Base: meter.
var LengthTable = MustTable(Length,
	Entry{Symbol: "mm", Name: "millimeters", Factor: 0.001},
	Entry{Symbol: "cm", Name: "centimeters", Factor: 0.01},
	Entry{Symbol: "m", Name: "meters", Factor: 1},
	Entry{Symbol: "km", Name: "kilometers", Factor: 1000},
	Entry{Symbol: "in", Name: "inches", Factor: inch},
	Entry{Symbol: "ft", Name: "feet", Factor: foot},
	Entry{Symbol: "yd", Name: "yards", Factor: yard},
	Entry{Symbol: "mi", Name: "miles", Factor: mile},
)

// AreaTable is the canonical area table. Base: square meter.
var AreaTable = MustTable(Area,
	Entry{Symbol: "mm²", Name: "square millimeters", Factor: 1e-6},
	Entry{Symbol: "cm²", Name: "square centimeters", Factor: 1e-4},
	Entry{Symbol: "m²", Name: "square meters", Factor: 1},
	Entry{Symbol: "ha", Name: "hectares", Factor: 1e4},
	Entry{Symbol: "km²", Name: "square kilometers", Factor: 1e6},
	Entry{Symbol: "in²", Name: "square inches", Factor: inch * inch},
	Entry{Symbol: "ft²", Name: "square feet", Factor: foot * foot},
	Entry{Symbol: "yd²", Name: "square yards", Factor: yard * yard},
	Entry{Symbol: "ac", Name: "acres", Factor: 43560 * foot * foot},
)

// VolumeTable is the canonical volume table. Base: cubic meter.
var VolumeTable = MustTable(Volume,
	Entry{Symbol: "cm³", Name: "cubic centimeters", Factor: 1e-6},
	Entry{Symbol: "mL", Name: "milliliters", AliasOf: "cm³"},
	Entry{Symbol: "L", Name: "liters", Factor: 0.001},
	Entry{Symbol: "m³", Name: "cubic meters", Factor: 1},
	Entry{Symbol: "in³", Name: "cubic inches", Factor: inch * inch * inch},
	Entry{Symbol: "ft³", Name: "cubic feet", Factor: cubicFoot},
	Entry{Symbol: "yd³", Name: "cubic yards", Factor: cubicYard},
	Entry{Symbol: "qt", Name: "US quarts", Factor: usGallon / 4},
	Entry{Symbol: "gal", Name: "US gallons", Factor: usGallon},
)

// WeightTable is the canonical weight (mass) table. Base: kilogram.
var WeightTable = MustTable(Weight,
	Entry{Symbol: "g", Name: "grams", Factor: 0.001},
	Entry{Symbol: "kg", Name: "kilograms", Factor: 1},
	Entry{Symbol: "t", Name: "metric tonnes", Factor: 1000},
	Entry{Symbol: "oz", Name: "ounces", Factor: ounce},
	Entry{Symbol: "lb", Name: "pounds", Factor: pound},
	Entry{Symbol: "ton", Name: "US short tons", Factor: shortTon},
)

// DensityTable is the canonical density table. Base: kilogram per cubic meter.
var DensityTable = MustTable(Density,
	Entry{Symbol: "kg/m³", Name: "kilograms per cubic meter", Factor: 1},
	Entry{Symbol: "g/L", Name: "grams per liter", AliasOf: "kg/m³"},
	Entry{Symbol: "g/cm³", Name: "grams per cubic centimeter", Factor: 1000},
	Entry{Symbol: "t/m³", Name: "tonnes per cubic meter", AliasOf: "g/cm³"},
	Entry{Symbol: "lb/ft³", Name: "pounds per cubic foot", Factor: pound / cubicFoot},
	Entry{Symbol: "lb/yd³", Name: "pounds per cubic yard", Factor: pound / cubicYard},
	Entry{Symbol: "lb/gal", Name: "pounds per US gallon", Factor: pound / usGallon},
)

// VelocityTable is the canonical velocity table. Base: meter per second.
var VelocityTable = MustTable(Velocity,
	Entry{Symbol: "m/s", Name: "meters per second", Factor: 1},
	Entry{Symbol: "km/h", Name: "kilometers per hour", Factor: 1000 / secondsHour},
	Entry{Symbol: "ft/s", Name: "feet per second", Factor: foot},
	Entry{Symbol: "mph", Name: "miles per hour", Factor: mile / secondsHour},
	Entry{Symbol: "kn", Name: "knots", Factor: nauticalMi / secondsHour},
)

// AccelerationTable is the canonical acceleration table. Base: meter per
// second squared.
var AccelerationTable = MustTable(Acceleration,
	Entry{Symbol: "m/s²", Name: "meters per second squared", Factor: 1},
	Entry{Symbol: "cm/s²", Name: "centimeters per second squared", Factor: 0.01},
	Entry{Symbol: "ft/s²", Name: "feet per second squared", Factor: foot},
	Entry{Symbol: "g", Name: "standard gravity", Factor: standardG},
)

// AngleTable is the canonical linear angle table. Base: degree.
// Percent grade and rise-per-12 are not linear in degrees; see package pitch.
var AngleTable = MustTable(Angle,
	Entry{Symbol: "deg", Name: "degrees", Factor: 1},
	Entry{Symbol: "°", Name: "degrees", AliasOf: "deg"},
	Entry{Symbol: "rad", Name: "radians", Factor: 180 / math.Pi},
	Entry{Symbol: "grad", Name: "gradians", Factor: 0.9},
	Entry{Symbol: "arcmin", Name: "minutes of arc", Factor: 1.0 / 60},
	Entry{Symbol: "turn", Name: "turns", Factor: 360},
)

// TimeTable is the canonical time table. Base: second.
var TimeTable = MustTable(Time,
	Entry{Symbol: "ms", Name: "milliseconds", Factor: 0.001},
	Entry{Symbol: "s", Name: "seconds", Factor: 1},
	Entry{Symbol: "min", Name: "minutes", Factor: 60},
	Entry{Symbol: "h", Name: "hours", Factor: secondsHour},
	Entry{Symbol: "d", Name: "days", Factor: 24 * secondsHour},
	Entry{Symbol: "wk", Name: "weeks", Factor: 7 * 24 * secondsHour},
)

var canonical = map[Dimension]*Table{
	Length:       LengthTable,
	Area:         AreaTable,
	Volume:       VolumeTable,
	Weight:       WeightTable,
	Density:      DensityTable,
	Velocity:     VelocityTable,
	Acceleration: AccelerationTable,
	Angle:        AngleTable,
	Time:         TimeTable,
}

// TableFor returns the canonical table of d.
func TableFor(d Dimension) (*Table, error) {
	t, ok := canonical[d]
	if !ok {
		return nil, fmt.Errorf("no unit table for %s", d)
	}
	return t, nil
}
