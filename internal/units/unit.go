package units

import (
	"fmt"
	"math"
)

// Unit is a sealed variant: either Plain or Composite.
// Callers switch on the concrete type rather than matching symbol strings.
type Unit interface {
	// Symbol is the display symbol ("ft", "ft/in").
	Symbol() string

	// Dim is the dimension the unit belongs to.
	Dim() Dimension

	unit() // Sealed
}

// Plain is a single-field unit backed by one table entry.
type Plain struct {
	Sym       string
	Dimension Dimension
}

func (Plain) unit() {}

// Symbol implements Unit.
func (p Plain) Symbol() string { return p.Sym }

// Dim implements Unit.
func (p Plain) Dim() Dimension { return p.Dimension }

// Composite is a two-field unit: a whole count of Major plus a remainder in
// Minor, where one Major equals Ratio Minors.
type Composite struct {
	Major     string
	Minor     string
	Ratio     float64
	Dimension Dimension
}

func (Composite) unit() {}

// Symbol implements Unit. The symbol is "major/minor".
func (c Composite) Symbol() string { return c.Major + "/" + c.Minor }

// Dim implements Unit.
func (c Composite) Dim() Dimension { return c.Dimension }

// Predefined composites, checked against their tables at init.
var (
	FeetInches        = mustComposite(LengthTable, "ft", "in", 12)
	MetersCentimeters = mustComposite(LengthTable, "m", "cm", 100)
	YardsFeet         = mustComposite(LengthTable, "yd", "ft", 3)
	PoundsOunces      = mustComposite(WeightTable, "lb", "oz", 16)
)

var composites = map[Dimension][]Composite{
	Length: {FeetInches, MetersCentimeters, YardsFeet},
	Weight: {PoundsOunces},
}

// Composites returns the predefined composites of d.
func Composites(d Dimension) []Composite {
	return append([]Composite(nil), composites[d]...)
}

// ratioTolerance bounds the relative disagreement between a composite's
// declared ratio and the ratio implied by its table (0.3048/0.0254 is not
// exactly 12 in float64).
const ratioTolerance = 1e-9

// NewComposite validates a composite against table.
func NewComposite(table *Table, major, minor string, ratio float64) (Composite, error) {
	c := Composite{Major: major, Minor: minor, Ratio: ratio, Dimension: table.Dimension()}
	if err := table.checkComposite(c); err != nil {
		return Composite{}, err
	}
	c.Major, _ = table.Canonical(major)
	c.Minor, _ = table.Canonical(minor)
	return c, nil
}

func mustComposite(table *Table, major, minor string, ratio float64) Composite {
	c, err := NewComposite(table, major, minor, ratio)
	if err != nil {
		panic(err)
	}
	return c
}

func (t *Table) checkComposite(c Composite) error {
	if c.Dimension != t.dimension {
		return dimensionMismatch(c.Dimension, t.dimension)
	}
	majorFactor, err := t.Factor(c.Major)
	if err != nil {
		return err
	}
	minorFactor, err := t.Factor(c.Minor)
	if err != nil {
		return err
	}
	if math.IsNaN(c.Ratio) || math.IsInf(c.Ratio, 0) || c.Ratio <= 1 {
		return &ConversionError{
			Code:      ErrCodeInvalidComposite,
			Message:   fmt.Sprintf("subdivision ratio must be greater than 1, got %v", c.Ratio),
			Unit:      c.Symbol(),
			Dimension: t.dimension,
		}
	}
	implied := majorFactor / minorFactor
	if math.Abs(implied-c.Ratio) > ratioTolerance*c.Ratio {
		return &ConversionError{
			Code:      ErrCodeInvalidComposite,
			Message:   fmt.Sprintf("ratio %v disagrees with table ratio %v", c.Ratio, implied),
			Unit:      c.Symbol(),
			Dimension: t.dimension,
		}
	}
	return nil
}

// ParseUnit resolves symbol within dimension d, returning a Composite when
// symbol names a predefined composite and a Plain otherwise.
func ParseUnit(d Dimension, symbol string) (Unit, error) {
	t, err := TableFor(d)
	if err != nil {
		return nil, err
	}
	key := normalizeSymbol(symbol)
	for _, c := range composites[d] {
		if normalizeSymbol(c.Symbol()) == key {
			return c, nil
		}
	}
	sym, err := t.Canonical(symbol)
	if err != nil {
		return nil, err
	}
	return Plain{Sym: sym, Dimension: d}, nil
}

// MustParseUnit is ParseUnit for literals known to be valid.
func MustParseUnit(d Dimension, symbol string) Unit {
	u, err := ParseUnit(d, symbol)
	if err != nil {
		panic(err)
	}
	return u
}
