package catalog

import (
	"math"

	"github.com/roach88/sitecalc/internal/units"
)

// Page is a compiled calculator page profile.
type Page struct {
	Name    string
	Title   string
	Formula string
	Fields  []Field
}

// Field is one input or output of a page.
type Field struct {
	Name  string
	Label string

	// Dimension is units.DimensionUnknown for plain numbers (counts,
	// ratios, coefficients).
	Dimension units.Dimension

	// Units are the symbols the field offers, plain or composite, in display
	// order. Empty means the whole canonical table.
	Units []string

	DefaultUnit string

	// DefaultValue is in DefaultUnit. NaN when the field starts blank.
	DefaultValue float64

	Output bool
}

// Field returns the field named name.
func (p Page) Field(name string) (Field, bool) {
	for _, f := range p.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Inputs returns the editable fields in declaration order.
func (p Page) Inputs() []Field {
	var out []Field
	for _, f := range p.Fields {
		if !f.Output {
			out = append(out, f)
		}
	}
	return out
}

// Outputs returns the computed fields in declaration order.
func (p Page) Outputs() []Field {
	var out []Field
	for _, f := range p.Fields {
		if f.Output {
			out = append(out, f)
		}
	}
	return out
}

// Unitless reports whether the field holds a plain number.
func (f Field) Unitless() bool {
	return f.Dimension == units.DimensionUnknown
}

// HasDefault reports whether the field starts with a value.
func (f Field) HasDefault() bool {
	return !math.IsNaN(f.DefaultValue)
}

// Offers reports whether the field's dropdown offers u.
func (f Field) Offers(u units.Unit) bool {
	if f.Unitless() || u == nil || u.Dim() != f.Dimension {
		return false
	}
	if len(f.Units) == 0 {
		return true
	}
	for _, s := range f.Units {
		offered, err := units.ParseUnit(f.Dimension, s)
		if err == nil && offered == u {
			return true
		}
	}
	return false
}

// ParseUnit resolves symbol against the units the field offers. Symbols the
// dimension defines but the field does not offer fail with UNKNOWN_UNIT.
func (f Field) ParseUnit(symbol string) (units.Unit, error) {
	if f.Unitless() {
		return nil, units.NewUnknownUnit(symbol, f.Dimension)
	}
	u, err := units.ParseUnit(f.Dimension, symbol)
	if err != nil {
		return nil, err
	}
	if !f.Offers(u) {
		return nil, units.NewUnknownUnit(symbol, f.Dimension)
	}
	return u, nil
}

// Unit returns the field's starting unit, nil for unitless fields.
func (f Field) Unit() units.Unit {
	if f.Unitless() {
		return nil
	}
	sym := f.DefaultUnit
	if sym == "" {
		if len(f.Units) > 0 {
			sym = f.Units[0]
		} else if t, err := units.TableFor(f.Dimension); err == nil {
			sym = t.Base()
		}
	}
	u, err := units.ParseUnit(f.Dimension, sym)
	if err != nil {
		return nil
	}
	return u
}

// Table returns the canonical table narrowed to the units the field offers.
// A composite contributes its major and minor units.
func (f Field) Table() (*units.Table, error) {
	t, err := units.TableFor(f.Dimension)
	if err != nil {
		return nil, err
	}
	if len(f.Units) == 0 {
		return t, nil
	}
	var plain []string
	for _, s := range f.Units {
		u, err := units.ParseUnit(f.Dimension, s)
		if err != nil {
			return nil, err
		}
		switch u := u.(type) {
		case units.Plain:
			plain = append(plain, u.Sym)
		case units.Composite:
			plain = append(plain, u.Major, u.Minor)
		}
	}
	return t.Select(plain...)
}
