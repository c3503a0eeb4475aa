// Package catalog holds calculator page profiles: which fields a page shows,
// the dimension of each, which units its dropdown offers and which unit it
// starts in.
//
// Profiles are written in CUE. The built-in pages are embedded; more can be
// loaded from a directory. Every profile is unified with the embedded schema
// (closed definitions, so misspelled keys fail), compiled into Page values
// and validated against the unit tables and the formula registry.
//
// Example profile:
//
//	page: sand: {
//		title:   "Sand Calculator"
//		formula: "sand"
//		fields: {
//			area:   {dimension: "area", units: ["m²", "ft²"], default_unit: "m²"}
//			depth:  {dimension: "length", units: ["cm", "in"], default_unit: "cm"}
//			volume: {dimension: "volume", units: ["m³", "yd³"], default_unit: "m³", output: true}
//			weight: {dimension: "weight", units: ["t", "lb"], default_unit: "t", output: true}
//		}
//	}
package catalog
