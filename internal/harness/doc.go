// Package harness runs worked-example scenarios against the conversion
// engine and the calculator formulas.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: riprap_worked_example
//	description: "Isbash D50 for 3 m/s in high turbulence"
//	steps:
//	  - op: convert
//	    dimension: length
//	    amount: 1
//	    from: ft
//	    to: m
//	    expect:
//	      value: 0.3048
//	  - op: calc
//	    formula: riprap
//	    inputs:
//	      velocity: { value: 3, unit: m/s }
//	    expect:
//	      outputs:
//	        d50: { value: 37.6, unit: cm }
//	      tolerance: 0.01
//
// # Operations
//
//   - convert: amount from one plain unit to another
//   - to_composite: plain amount to a whole/fraction pair
//   - from_composite: whole/fraction pair to a plain amount
//   - between_composites: pair to pair
//   - format: amount to display text
//   - pitch: roof pitch between notations (degrees, percent, rise12)
//   - calc: run a named formula on measured inputs
//   - page: replay form events on a catalog page
//
// # Expectations
//
// A step may expect a value (compared within tolerance), a whole/fraction
// pair, display text, an empty result, an error code, formula outputs, or
// page field text and inline errors. Unknown YAML keys are rejected.
//
// Every step is recorded in the trace, which tests snapshot with goldie
// under testdata/golden.
package harness
