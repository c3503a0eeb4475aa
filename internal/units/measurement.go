package units

import (
	"fmt"
	"math"
)

// Measurement is a value expressed in a Unit of either shape. Amount is used
// when Unit is Plain; Pair when Unit is Composite.
type Measurement struct {
	Unit   Unit
	Amount float64
	Pair   Pair
}

// PlainValue builds a plain measurement.
func PlainValue(amount float64, u Plain) Measurement {
	return Measurement{Unit: u, Amount: amount, Pair: EmptyPair()}
}

// CompositeValue builds a composite measurement.
func CompositeValue(whole, fraction float64, c Composite) Measurement {
	return Measurement{Unit: c, Amount: math.NaN(), Pair: Pair{Whole: whole, Fraction: fraction}}
}

// IsEmpty reports whether the measurement carries no input.
func (m Measurement) IsEmpty() bool {
	switch m.Unit.(type) {
	case Composite:
		return m.Pair.IsEmpty()
	default:
		return IsEmpty(m.Amount)
	}
}

// Base returns the measurement in its dimension's base unit.
func (m Measurement) Base() (float64, error) {
	if m.Unit == nil {
		return math.NaN(), fmt.Errorf("measurement has no unit")
	}
	t, err := TableFor(m.Unit.Dim())
	if err != nil {
		return math.NaN(), err
	}
	return m.BaseIn(t)
}

// BaseIn is Base against table t, which may be a view of the canonical table.
func (m Measurement) BaseIn(t *Table) (float64, error) {
	if m.Unit == nil {
		return math.NaN(), fmt.Errorf("measurement has no unit")
	}
	if m.Unit.Dim() != t.Dimension() {
		return math.NaN(), dimensionMismatch(m.Unit.Dim(), t.Dimension())
	}
	switch u := m.Unit.(type) {
	case Plain:
		return ToBase(m.Amount, u.Sym, t)
	case Composite:
		return t.FromComposite(m.Pair.Whole, m.Pair.Fraction, u, t.Base())
	default:
		return math.NaN(), fmt.Errorf("unsupported unit type %T", m.Unit)
	}
}

// Express builds the measurement of a base-unit amount in unit u of table t.
func Express(base float64, u Unit, t *Table) (Measurement, error) {
	if u == nil {
		return Measurement{}, fmt.Errorf("target unit is required")
	}
	if u.Dim() != t.Dimension() {
		return Measurement{}, dimensionMismatch(u.Dim(), t.Dimension())
	}
	switch u := u.(type) {
	case Plain:
		v, err := FromBase(base, u.Sym, t)
		if err != nil {
			return Measurement{}, err
		}
		return PlainValue(v, u), nil
	case Composite:
		p, err := t.ToComposite(base, t.Base(), u)
		if err != nil {
			return Measurement{}, err
		}
		return Measurement{Unit: u, Amount: math.NaN(), Pair: p}, nil
	}
	return Measurement{}, fmt.Errorf("unsupported unit type %T", u)
}

// Reexpress converts m into unit to, dispatching on the shapes of both units:
// plain to plain uses Convert, plain to composite ToComposite, composite to
// plain FromComposite and composite to composite BetweenComposites.
func Reexpress(m Measurement, to Unit) (Measurement, error) {
	if m.Unit == nil || to == nil {
		return Measurement{}, fmt.Errorf("measurement and target unit are required")
	}
	t, err := TableFor(to.Dim())
	if err != nil {
		return Measurement{}, err
	}
	return ReexpressIn(m, to, t)
}

// ReexpressIn is Reexpress against table t, which may be a view of the
// canonical table.
func ReexpressIn(m Measurement, to Unit, t *Table) (Measurement, error) {
	if m.Unit == nil || to == nil {
		return Measurement{}, fmt.Errorf("measurement and target unit are required")
	}
	if m.Unit.Dim() != to.Dim() {
		return Measurement{}, dimensionMismatch(m.Unit.Dim(), to.Dim())
	}
	if to.Dim() != t.Dimension() {
		return Measurement{}, dimensionMismatch(to.Dim(), t.Dimension())
	}

	switch from := m.Unit.(type) {
	case Plain:
		switch target := to.(type) {
		case Plain:
			v, err := Convert(m.Amount, from.Sym, target.Sym, t)
			if err != nil {
				return Measurement{}, err
			}
			return PlainValue(v, target), nil
		case Composite:
			p, err := t.ToComposite(m.Amount, from.Sym, target)
			if err != nil {
				return Measurement{}, err
			}
			return Measurement{Unit: target, Amount: math.NaN(), Pair: p}, nil
		}
	case Composite:
		switch target := to.(type) {
		case Plain:
			v, err := t.FromComposite(m.Pair.Whole, m.Pair.Fraction, from, target.Sym)
			if err != nil {
				return Measurement{}, err
			}
			return PlainValue(v, target), nil
		case Composite:
			p, err := t.BetweenComposites(m.Pair.Whole, m.Pair.Fraction, from, target)
			if err != nil {
				return Measurement{}, err
			}
			return Measurement{Unit: target, Amount: math.NaN(), Pair: p}, nil
		}
	}
	return Measurement{}, fmt.Errorf("unsupported unit types %T -> %T", m.Unit, to)
}
