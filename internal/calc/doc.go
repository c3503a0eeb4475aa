// Package calc implements the closed-form formulas behind each calculator
// page.
//
// Every formula consumes and produces base-unit amounts (meters, square
// meters, cubic meters, kilograms, kilograms per cubic meter, meters per
// second, meters per second squared, degrees). Callers convert to and from
// display units with package units.
//
// Empty inputs (NaN) are not errors: they propagate to NaN outputs so a half
// filled form shows blank results. Inputs that are present but physically
// impossible fail with *InputError.
//
// Counts of discrete things (trusses, balusters, bags, tiles, containers) are
// rounded up to whole items.
package calc
