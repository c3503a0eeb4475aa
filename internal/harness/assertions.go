package harness

import (
	"fmt"
	"math"

	"github.com/roach88/sitecalc/internal/units"
)

// defaultRelTolerance applies when a step sets no tolerance.
const defaultRelTolerance = 1e-9

// check compares an outcome against the step's expectation and returns one
// message per mismatch.
func check(want Expect, got outcome) []string {
	var msgs []string
	fail := func(format string, args ...any) {
		msgs = append(msgs, fmt.Sprintf(format, args...))
	}

	if want.Error != "" {
		if got.code != want.Error {
			fail("expected error %s, got %s", want.Error, describeCode(got))
		}
		return msgs
	}
	if got.code != "" {
		fail("unexpected error %s: %v", got.code, got.err)
		return msgs
	}

	if want.Empty && !isEmpty(got) {
		fail("expected an empty result, got %v", got.trace())
	}

	if want.Value != nil {
		if !near(got.value, *want.Value, want.Tolerance) {
			fail("value: expected %v, got %v", *want.Value, got.value)
		}
	}

	if want.Whole != nil || want.Fraction != nil {
		if got.pair == nil {
			fail("expected a whole/fraction pair")
		} else {
			msgs = append(msgs, checkPair(want.Whole, want.Fraction, *got.pair, want.Tolerance)...)
		}
	}

	if want.Text != nil {
		switch {
		case got.text == nil:
			fail("expected text %q", *want.Text)
		case *got.text != *want.Text:
			fail("text: expected %q, got %q", *want.Text, *got.text)
		}
	}

	for _, name := range sortedKeys(want.Outputs) {
		m, ok := got.outputs[name]
		if !ok {
			fail("output %s: not produced", name)
			continue
		}
		for _, msg := range checkOutput(want.Outputs[name], m, want.Tolerance) {
			fail("output %s: %s", name, msg)
		}
	}

	for _, name := range sortedKeys(want.Fields) {
		text, ok := got.fields[name]
		switch {
		case !ok:
			fail("field %s: no such field", name)
		case text != want.Fields[name]:
			fail("field %s: expected %q, got %q", name, want.Fields[name], text)
		}
	}

	for _, name := range sortedKeys(want.Errors) {
		if msg := got.errors[name]; msg != want.Errors[name] {
			fail("error on %s: expected %q, got %q", name, want.Errors[name], msg)
		}
	}

	return msgs
}

// checkOutput re-expresses a base-unit output in the expected unit and
// compares it.
func checkOutput(want Measure, got units.Measurement, tol float64) []string {
	if want.Unit != "" && got.Unit != nil {
		u, err := units.ParseUnit(got.Unit.Dim(), want.Unit)
		if err != nil {
			return []string{err.Error()}
		}
		got, err = units.Reexpress(got, u)
		if err != nil {
			return []string{err.Error()}
		}
	}

	if _, ok := got.Unit.(units.Composite); ok {
		return checkPair(want.Whole, want.Fraction, got.Pair, tol)
	}
	if want.Value != nil && !near(got.Amount, *want.Value, tol) {
		return []string{fmt.Sprintf("expected %v %s, got %v", *want.Value, want.Unit, got.Amount)}
	}
	return nil
}

func checkPair(whole, fraction *float64, got units.Pair, tol float64) []string {
	var msgs []string
	if whole != nil && !near(got.Whole, *whole, tol) {
		msgs = append(msgs, fmt.Sprintf("whole: expected %v, got %v", *whole, got.Whole))
	}
	if fraction != nil && !near(got.Fraction, *fraction, tol) {
		msgs = append(msgs, fmt.Sprintf("fraction: expected %v, got %v", *fraction, got.Fraction))
	}
	return msgs
}

// near compares within tol, or within a relative 1e-9 when tol is zero.
// NaN is near only NaN.
func near(got, want, tol float64) bool {
	if math.IsNaN(want) || math.IsNaN(got) {
		return math.IsNaN(want) && math.IsNaN(got)
	}
	if tol == 0 {
		tol = defaultRelTolerance * math.Max(1, math.Abs(want))
	}
	return math.Abs(got-want) <= tol
}

func isEmpty(o outcome) bool {
	switch {
	case o.pair != nil:
		return o.pair.IsEmpty()
	case o.text != nil:
		return *o.text == ""
	default:
		return units.IsEmpty(o.value)
	}
}

func describeCode(o outcome) string {
	if o.code == "" {
		return "no error"
	}
	return o.code
}
