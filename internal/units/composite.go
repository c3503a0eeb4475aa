package units

import "math"

// Pair is a composite value: Whole major units plus Fraction minor units.
// 0 <= Fraction < Ratio is expected but not enforced.
type Pair struct {
	Whole    float64
	Fraction float64
}

// EmptyPair is the composite counterpart of a NaN amount.
func EmptyPair() Pair {
	return Pair{Whole: math.NaN(), Fraction: math.NaN()}
}

// IsEmpty reports whether neither field carries input. A pair with only one
// field filled in is not empty; the blank field counts as zero.
func (p Pair) IsEmpty() bool {
	return IsEmpty(p.Whole) && IsEmpty(p.Fraction)
}

// snapTolerance absorbs float error at the whole-unit boundary, so
// 1.8288 m becomes 6 ft 0 in rather than 5 ft 11.999999999 in.
const snapTolerance = 1e-9

// split decomposes a non-negative amount of the major unit.
// The whole part is floored.
func split(v, ratio float64) Pair {
	if v == 0 {
		return Pair{}
	}
	whole := math.Floor(v)
	frac := (v - whole) * ratio
	switch {
	case ratio-frac <= snapTolerance*ratio:
		whole++
		frac = 0
	case frac <= snapTolerance*ratio:
		frac = 0
	}
	return Pair{Whole: whole, Fraction: frac}
}

// ToComposite converts amount in unit from to the composite c.
//
// Negative amounts fail with NEGATIVE_MEASUREMENT. Zero yields (0, 0) and an
// empty amount yields EmptyPair with a nil error.
func (t *Table) ToComposite(amount float64, from string, c Composite) (Pair, error) {
	if err := t.checkComposite(c); err != nil {
		return EmptyPair(), err
	}
	v, err := Convert(amount, from, c.Major, t)
	if err != nil {
		return EmptyPair(), err
	}
	if IsEmpty(v) {
		return EmptyPair(), nil
	}
	if v < 0 {
		return EmptyPair(), negativeMeasurement(amount, from, t.dimension)
	}
	return split(v, c.Ratio), nil
}

// FromComposite converts whole major plus fraction minor units of c to unit
// to. Fields outside [0, Ratio) are converted as given, never clamped.
func (t *Table) FromComposite(whole, fraction float64, c Composite, to string) (float64, error) {
	if err := t.checkComposite(c); err != nil {
		return math.NaN(), err
	}
	if _, err := t.pivot(to); err != nil {
		return math.NaN(), err
	}
	p := Pair{Whole: whole, Fraction: fraction}
	if p.IsEmpty() {
		return math.NaN(), nil
	}
	v := zeroIfEmpty(whole) + zeroIfEmpty(fraction)/c.Ratio
	return Convert(v, c.Major, to, t)
}

// BetweenComposites re-expresses a value of composite from in composite to by
// composing FromComposite into the base unit with ToComposite.
func (t *Table) BetweenComposites(whole, fraction float64, from, to Composite) (Pair, error) {
	if from.Dimension != to.Dimension {
		return EmptyPair(), dimensionMismatch(from.Dimension, to.Dimension)
	}
	base, err := t.FromComposite(whole, fraction, from, t.base)
	if err != nil {
		return EmptyPair(), err
	}
	return t.ToComposite(base, t.base, to)
}

// ToComposite converts amount using the canonical table of c's dimension.
func ToComposite(amount float64, from string, c Composite) (Pair, error) {
	t, err := TableFor(c.Dimension)
	if err != nil {
		return EmptyPair(), err
	}
	return t.ToComposite(amount, from, c)
}

// FromComposite converts a composite value using the canonical table of c's
// dimension.
func FromComposite(whole, fraction float64, c Composite, to string) (float64, error) {
	t, err := TableFor(c.Dimension)
	if err != nil {
		return math.NaN(), err
	}
	return t.FromComposite(whole, fraction, c, to)
}

// BetweenComposites converts between two composites of the same dimension.
func BetweenComposites(whole, fraction float64, from, to Composite) (Pair, error) {
	if from.Dimension != to.Dimension {
		return EmptyPair(), dimensionMismatch(from.Dimension, to.Dimension)
	}
	t, err := TableFor(from.Dimension)
	if err != nil {
		return EmptyPair(), err
	}
	return t.BetweenComposites(whole, fraction, from, to)
}

func zeroIfEmpty(v float64) float64 {
	if IsEmpty(v) {
		return 0
	}
	return v
}
