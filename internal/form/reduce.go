package form

import (
	"fmt"
	"sort"

	"github.com/roach88/sitecalc/internal/calc"
)

// Event is a user action on a page.
type Event interface {
	event() // Sealed
}

// EditValue replaces the text of a field (the major part of a composite).
type EditValue struct {
	Field string
	Raw   string
}

// EditMinor replaces the text of the minor part of a composite field.
type EditMinor struct {
	Field string
	Raw   string
}

// ChangeUnit selects another unit for a field. Inputs keep their value,
// re-expressed in the new unit; computed fields are re-rendered.
type ChangeUnit struct {
	Field string
	Unit  string
}

// Choose applies a named formula choice, such as a concrete mix grade, to
// the inputs it fills.
type Choose struct {
	Name  string
	Value string
}

// SetComputed stores a base-unit result in a computed field.
type SetComputed struct {
	Field string
	Base  float64
}

// Reset restores default units and values.
type Reset struct{}

func (EditValue) event()   {}
func (EditMinor) event()   {}
func (ChangeUnit) event()  {}
func (Choose) event()      {}
func (SetComputed) event() {}
func (Reset) event()       {}

// Reduce applies e to s and returns the next state. s is not modified.
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case EditValue:
		return editText(s, e.Field, e.Raw, false)
	case EditMinor:
		return editText(s, e.Field, e.Raw, true)
	case ChangeUnit:
		return changeUnit(s, e.Field, e.Unit)
	case Choose:
		return choose(s, e.Name, e.Value)
	case SetComputed:
		return setComputed(s, e.Field, e.Base)
	case Reset:
		return initial(s.Page, s.Display)
	}
	return s
}

// ReduceAll folds events over s.
func ReduceAll(s State, events ...Event) State {
	for _, e := range events {
		s = Reduce(s, e)
	}
	return s
}

func reject(s State, field, format string, args ...any) State {
	n := s.clone()
	n.Errors[field] = fmt.Sprintf(format, args...)
	return n
}

func editText(s State, name, raw string, minor bool) State {
	i := s.index(name)
	if i < 0 {
		return reject(s, name, "no such field")
	}
	f := s.Fields[i]
	if f.Spec.Output {
		return reject(s, name, "field is computed")
	}
	if minor && !f.Composite() {
		return reject(s, name, "field has no minor part")
	}

	n := s.clone()
	if minor {
		f.RawMinor = raw
	} else {
		f.Raw = raw
	}
	f.Exact = nil
	n.Fields[i] = f
	return n.recompute()
}

func changeUnit(s State, name, symbol string) State {
	i := s.index(name)
	if i < 0 {
		return reject(s, name, "no such field")
	}
	f := s.Fields[i]
	if f.Spec.Unitless() {
		return reject(s, name, "field has no units")
	}
	to, err := f.Spec.ParseUnit(symbol)
	if err != nil {
		return reject(s, name, "%s", err.Error())
	}

	n := s.clone()
	if f.Spec.Output {
		f.Unit = to
		n.Fields[i] = n.render(f, f.Value)
		return n
	}

	// Text that does not read as a valid amount cannot be re-expressed; the
	// unit waits until it is fixed.
	if problem := inputProblem(f); problem != "" {
		return reject(s, name, "%s; fix the value before changing units", problem)
	}
	base, err := f.Base()
	if err != nil {
		return reject(s, name, "%s", err.Error())
	}
	f.Unit = to
	f, err = withBase(f, base)
	if err != nil {
		return reject(s, name, "%s", err.Error())
	}
	n.Fields[i] = f
	return n.recompute()
}

func choose(s State, name, value string) State {
	formula, _ := calc.Lookup(s.Page.Formula)
	c, ok := formula.Choice(name)
	if !ok {
		return reject(s, name, "no such field or choice")
	}
	values, err := c.Apply(value)
	if err != nil {
		return reject(s, name, "%s", err.Error())
	}

	n := s.clone()
	for _, field := range sortedNames(values) {
		i := n.index(field)
		if i < 0 || n.Fields[i].Spec.Output {
			return reject(s, name, "page has no input %s", field)
		}
		f, err := withBase(n.Fields[i], values[field])
		if err != nil {
			return reject(s, name, "%s", err.Error())
		}
		n.Fields[i] = f
	}
	return n.recompute()
}

func sortedNames(v calc.Values) []string {
	names := make([]string, 0, len(v))
	for k := range v {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func setComputed(s State, name string, base float64) State {
	i := s.index(name)
	if i < 0 {
		return reject(s, name, "no such field")
	}
	if !s.Fields[i].Spec.Output {
		return reject(s, name, "field is not computed")
	}
	n := s.clone()
	n.Fields[i] = n.render(n.Fields[i], base)
	return n
}
