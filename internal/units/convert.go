package units

import "math"

// Convert re-expresses amount from one unit of table to another, pivoting
// through the base unit: amount * factor(from) / factor(to).
//
// Both symbols are checked before the amount, so an unknown unit fails even
// when the amount is empty. A NaN or infinite amount is "no input yet" and
// yields NaN with a nil error. Converting a unit to itself returns amount
// unchanged. The table's base unit is accepted even by a view that does not
// offer it.
func Convert(amount float64, from, to string, table *Table) (float64, error) {
	fromFactor, err := table.pivot(from)
	if err != nil {
		return math.NaN(), err
	}
	toFactor, err := table.pivot(to)
	if err != nil {
		return math.NaN(), err
	}
	if IsEmpty(amount) {
		return math.NaN(), nil
	}
	if normalizeSymbol(from) == normalizeSymbol(to) {
		return amount, nil
	}
	return amount * fromFactor / toFactor, nil
}

// ToBase converts amount in unit to the table's base unit.
func ToBase(amount float64, unit string, table *Table) (float64, error) {
	return Convert(amount, unit, table.Base(), table)
}

// FromBase converts a base-unit amount to unit.
func FromBase(amount float64, unit string, table *Table) (float64, error) {
	return Convert(amount, table.Base(), unit, table)
}

// IsEmpty reports whether amount represents missing input: NaN or infinite.
func IsEmpty(amount float64) bool {
	return math.IsNaN(amount) || math.IsInf(amount, 0)
}

// Quantity is an amount tagged with its unit and dimension.
// A NaN Amount is a valid empty quantity.
type Quantity struct {
	Amount    float64
	Unit      string
	Dimension Dimension
}

// NewQuantity builds a quantity, resolving the dimension's canonical table.
func NewQuantity(amount float64, unit string, d Dimension) (Quantity, error) {
	t, err := TableFor(d)
	if err != nil {
		return Quantity{}, err
	}
	sym, err := t.Canonical(unit)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Amount: amount, Unit: sym, Dimension: d}, nil
}

// IsEmpty reports whether the quantity carries no usable amount.
func (q Quantity) IsEmpty() bool {
	return IsEmpty(q.Amount)
}

// To converts the quantity to another unit of its dimension.
func (q Quantity) To(unit string) (Quantity, error) {
	t, err := TableFor(q.Dimension)
	if err != nil {
		return Quantity{}, err
	}
	v, err := Convert(q.Amount, q.Unit, unit, t)
	if err != nil {
		return Quantity{}, err
	}
	sym, _ := t.Canonical(unit)
	return Quantity{Amount: v, Unit: sym, Dimension: q.Dimension}, nil
}

// Base returns the quantity's amount in its dimension's base unit.
func (q Quantity) Base() (float64, error) {
	t, err := TableFor(q.Dimension)
	if err != nil {
		return math.NaN(), err
	}
	return ToBase(q.Amount, q.Unit, t)
}
