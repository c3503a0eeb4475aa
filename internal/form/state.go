package form

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/text/language"

	"github.com/roach88/sitecalc/internal/calc"
	"github.com/roach88/sitecalc/internal/catalog"
	"github.com/roach88/sitecalc/internal/numfmt"
	"github.com/roach88/sitecalc/internal/units"
)

// inputDigits is the precision of input text written after a unit change.
// The value itself is kept exactly in Field.Exact. Input text is always
// rendered without grouping so it parses back.
const inputDigits = 10

var inputOptions = numfmt.Options{MaximumFractionDigits: inputDigits, Locale: language.English}

// Field is the live state of one page field.
type Field struct {
	Spec catalog.Field

	// Unit is the currently selected unit, nil for unitless fields.
	Unit units.Unit

	// Raw is the text of the field, or of the major part of a composite.
	Raw string

	// RawMinor is the text of the minor part of a composite.
	RawMinor string

	// Value is the base-unit result of a computed field, NaN when blank.
	Value float64

	// Exact is the full-precision base value behind Raw after the input was
	// re-expressed in another unit. Nil once the text is edited.
	Exact *float64
}

// Name returns the field's name.
func (f Field) Name() string { return f.Spec.Name }

// Composite reports whether the field currently shows two parts.
func (f Field) Composite() bool {
	_, ok := f.Unit.(units.Composite)
	return ok
}

// Measurement parses the field text in its current unit.
func (f Field) Measurement() units.Measurement {
	switch u := f.Unit.(type) {
	case units.Composite:
		return units.CompositeValue(numfmt.ParseAmount(f.Raw), numfmt.ParseAmount(f.RawMinor), u)
	case units.Plain:
		return units.PlainValue(numfmt.ParseAmount(f.Raw), u)
	}
	return units.Measurement{Amount: numfmt.ParseAmount(f.Raw), Pair: units.EmptyPair()}
}

// Base returns the field's value in its dimension's base unit. Unitless
// fields return the typed number. Blank fields return NaN.
func (f Field) Base() (float64, error) {
	if f.Spec.Output {
		return f.Value, nil
	}
	if f.Unit == nil {
		return numfmt.ParseAmount(f.Raw), nil
	}
	if f.Exact != nil {
		return *f.Exact, nil
	}
	m := f.Measurement()
	if m.IsEmpty() {
		return math.NaN(), nil
	}
	t, err := f.Spec.Table()
	if err != nil {
		return math.NaN(), err
	}
	return m.BaseIn(t)
}

// withBase fills f with a base-unit amount expressed in its current unit.
func withBase(f Field, base float64) (Field, error) {
	f.Raw, f.RawMinor, f.Exact = "", "", nil
	if f.Unit == nil {
		f.Raw = formatInput(base)
		return f, nil
	}
	if units.IsEmpty(base) {
		return f, nil
	}
	t, err := f.Spec.Table()
	if err != nil {
		return f, err
	}
	m, err := units.Express(base, f.Unit, t)
	if err != nil {
		return f, err
	}
	switch u := m.Unit.(type) {
	case units.Composite:
		f.Raw, f.RawMinor = numfmt.FormatComposite(m.Pair.Whole, m.Pair.Fraction, u.Ratio, inputOptions)
	default:
		f.Raw = formatInput(m.Amount)
	}
	f.Exact = &base
	return f, nil
}

// State is the whole page.
type State struct {
	Page    catalog.Page
	Fields  []Field
	Errors  map[string]string
	Display numfmt.Options
}

// New builds the initial state of page: default units, default values and
// computed fields evaluated.
func New(page catalog.Page, display numfmt.Options) (State, error) {
	if errs := catalog.Validate(page); len(errs) > 0 {
		return State{}, fmt.Errorf("page %s: %w", page.Name, errs[0])
	}
	if _, ok := calc.Lookup(page.Formula); !ok {
		return State{}, fmt.Errorf("page %s: unknown formula %q", page.Name, page.Formula)
	}
	return initial(page, display), nil
}

func initial(page catalog.Page, display numfmt.Options) State {
	s := State{
		Page:    page,
		Fields:  make([]Field, len(page.Fields)),
		Errors:  map[string]string{},
		Display: display,
	}
	for i, spec := range page.Fields {
		f := Field{Spec: spec, Unit: spec.Unit(), Value: math.NaN()}
		if !spec.Output && spec.HasDefault() {
			f = withAmount(f, spec.DefaultValue)
		}
		s.Fields[i] = f
	}
	return s.recompute()
}

// withAmount fills an input with an amount given in the major unit of its
// current unit.
func withAmount(f Field, amount float64) Field {
	switch u := f.Unit.(type) {
	case units.Composite:
		t, err := f.Spec.Table()
		if err != nil {
			f.Raw = formatInput(amount)
			return f
		}
		p, err := t.ToComposite(amount, u.Major, u)
		if err != nil {
			f.Raw = formatInput(amount)
			return f
		}
		f.Raw = formatInput(p.Whole)
		f.RawMinor = formatInput(p.Fraction)
	default:
		f.Raw = formatInput(amount)
	}
	return f
}

func formatInput(v float64) string {
	return numfmt.Format(v, inputOptions)
}

// Field returns the field named name.
func (s State) Field(name string) (Field, bool) {
	i := s.index(name)
	if i < 0 {
		return Field{}, false
	}
	return s.Fields[i], true
}

// Values returns every input in base units, as the page formula sees them.
// Inputs that do not parse read as NaN.
func (s State) Values() calc.Values {
	v := make(calc.Values, len(s.Fields))
	for _, f := range s.Fields {
		if f.Spec.Output {
			continue
		}
		b, err := f.Base()
		if err != nil {
			b = math.NaN()
		}
		v[f.Name()] = b
	}
	return v
}

// Outputs returns every computed field's base-unit value.
func (s State) Outputs() calc.Values {
	v := make(calc.Values)
	for _, f := range s.Fields {
		if f.Spec.Output {
			v[f.Name()] = f.Value
		}
	}
	return v
}

func (s State) index(name string) int {
	for i, f := range s.Fields {
		if f.Name() == name {
			return i
		}
	}
	return -1
}

// clone copies the parts of s that Reduce writes to.
func (s State) clone() State {
	n := s
	n.Fields = append([]Field(nil), s.Fields...)
	n.Errors = make(map[string]string, len(s.Errors))
	for k, v := range s.Errors {
		n.Errors[k] = v
	}
	return n
}

// recompute re-derives every error and computed field from the input text.
func (s State) recompute() State {
	s.Errors = map[string]string{}
	for _, f := range s.Fields {
		if f.Spec.Output {
			continue
		}
		if msg := inputProblem(f); msg != "" {
			s.Errors[f.Name()] = msg
		}
	}

	formula, _ := calc.Lookup(s.Page.Formula)
	var out calc.Values
	var err error
	if formula.Run != nil {
		out, err = formula.Run(s.Values())
	}
	var ie *calc.InputError
	if errors.As(err, &ie) {
		if _, taken := s.Errors[ie.Field]; !taken {
			s.Errors[ie.Field] = ie.Message
		}
	} else if err != nil {
		s.Errors[""] = err.Error()
	}

	for i, f := range s.Fields {
		if !f.Spec.Output {
			continue
		}
		v := math.NaN()
		if err == nil {
			v = out.Get(f.Name())
		}
		s.Fields[i] = s.render(f, v)
	}
	return s
}

func inputProblem(f Field) string {
	for _, raw := range []string{f.Raw, f.RawMinor} {
		v, err := numfmt.Parse(raw)
		if err != nil {
			return "enter a number"
		}
		if v < 0 {
			return "must not be negative"
		}
	}
	if _, err := f.Base(); err != nil {
		return err.Error()
	}
	return ""
}

// render stores base value v in a computed field and formats it in the
// field's unit.
func (s State) render(f Field, v float64) Field {
	f.Value = v
	f.Raw, f.RawMinor = "", ""
	if units.IsEmpty(v) {
		return f
	}
	if f.Unit == nil {
		f.Raw = numfmt.Format(v, s.Display)
		return f
	}
	t, err := f.Spec.Table()
	if err != nil {
		return f
	}
	m, err := units.Express(v, f.Unit, t)
	if err != nil {
		return f
	}
	switch u := f.Unit.(type) {
	case units.Composite:
		f.Raw, f.RawMinor = numfmt.FormatComposite(m.Pair.Whole, m.Pair.Fraction, u.Ratio, s.Display)
	default:
		f.Raw = numfmt.Format(m.Amount, s.Display)
	}
	return f
}
