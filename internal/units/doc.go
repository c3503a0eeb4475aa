// Package units converts measured quantities between units of one physical
// dimension.
//
// Every conversion pivots through the dimension's base unit: an amount is
// multiplied by the source unit's factor and divided by the target unit's
// factor. Tables therefore only store "1 unit = factor base units" and any two
// units of the same table compose correctly.
//
// Composite units (feet+inches, meters+centimeters, pounds+ounces) express one
// quantity as a whole count of a major unit plus a remainder in a minor unit at
// a fixed subdivision ratio. They are modelled as a Unit variant so callers
// dispatch on shape instead of comparing symbol strings.
//
// Key design constraints:
//   - No package state is mutated after init; every function is pure
//   - NaN amounts mean "no input yet" and propagate without error
//   - Unknown symbols fail with UNKNOWN_UNIT, never a silent factor of 1
//   - Roof pitch is not linear and lives in package pitch
package units
