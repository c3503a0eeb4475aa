// Package form models a calculator page as a single state value driven by a
// pure reducer.
//
// Each user action is an Event; Reduce(state, event) returns the next state
// without modifying the old one. Text is kept exactly as typed so partial
// input ("", "-", "1.") survives; it is parsed only when a formula needs the
// value. Unit changes re-express the current value in the new unit, and every
// input change re-runs the page formula to refresh the computed fields.
//
// Problems never surface as Go errors from Reduce. They land in
// State.Errors keyed by field name, for display next to the field.
package form
