package units

import (
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Entry declares one unit of a table.
type Entry struct {
	// Symbol is the display symbol, unique within the table after normalization.
	Symbol string

	// Name is a human-readable label ("feet").
	Name string

	// Factor is how many base units one of this unit equals.
	// Ignored when AliasOf is set.
	Factor float64

	// AliasOf names another entry whose factor this entry shares exactly
	// (kg/m³ and g/L). Aliases are excluded from the one-base and
	// distinct-factor checks.
	AliasOf string
}

// Table maps unit symbols to scale factors for one dimension.
// Tables are immutable after construction and safe for concurrent use.
type Table struct {
	dimension Dimension
	base      string
	entries   []Entry
	factors   map[string]float64 // normalized symbol -> factor
	symbols   map[string]string  // normalized symbol -> display symbol
}

// NewTable validates entries and builds a table.
//
// Invariants enforced:
//   - at least one entry, and exactly one non-alias entry with factor 1
//   - every factor finite and strictly positive
//   - no two non-alias entries share a factor
//   - symbols unique after NFKC normalization
//   - aliases reference a declared non-alias entry
func NewTable(d Dimension, entries ...Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, invalidTable(d, "table has no units")
	}

	entries = append([]Entry(nil), entries...)
	t := &Table{
		dimension: d,
		factors:   make(map[string]float64, len(entries)),
		symbols:   make(map[string]string, len(entries)),
	}

	seenFactor := make(map[float64]string)
	for _, e := range entries {
		if e.AliasOf != "" {
			continue
		}
		key := normalizeSymbol(e.Symbol)
		if key == "" {
			return nil, invalidTable(d, "empty unit symbol")
		}
		if _, dup := t.factors[key]; dup {
			return nil, invalidTable(d, "duplicate unit symbol %q", e.Symbol)
		}
		if math.IsNaN(e.Factor) || math.IsInf(e.Factor, 0) || e.Factor <= 0 {
			return nil, invalidTable(d, "unit %q has non-positive factor %v", e.Symbol, e.Factor)
		}
		if other, dup := seenFactor[e.Factor]; dup {
			return nil, invalidTable(d, "units %q and %q share factor %v; declare one as an alias", other, e.Symbol, e.Factor)
		}
		seenFactor[e.Factor] = e.Symbol
		if e.Factor == 1 {
			t.base = e.Symbol
		}
		t.factors[key] = e.Factor
		t.symbols[key] = e.Symbol
	}
	if t.base == "" {
		return nil, invalidTable(d, "table has no base unit with factor 1")
	}

	for i, e := range entries {
		if e.AliasOf == "" {
			continue
		}
		key := normalizeSymbol(e.Symbol)
		if _, dup := t.factors[key]; dup {
			return nil, invalidTable(d, "duplicate unit symbol %q", e.Symbol)
		}
		target, ok := t.factors[normalizeSymbol(e.AliasOf)]
		if !ok {
			return nil, invalidTable(d, "alias %q refers to unknown unit %q", e.Symbol, e.AliasOf)
		}
		entries[i].Factor = target
		t.factors[key] = target
		t.symbols[key] = e.Symbol
	}

	t.entries = entries
	return t, nil
}

// MustTable is NewTable for package-level tables; it panics on invalid input.
func MustTable(d Dimension, entries ...Entry) *Table {
	t, err := NewTable(d, entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// Dimension returns the table's dimension.
func (t *Table) Dimension() Dimension {
	return t.dimension
}

// Base returns the display symbol of the base unit.
func (t *Table) Base() string {
	return t.base
}

// Factor returns how many base units one symbol equals.
// Unknown symbols fail with UNKNOWN_UNIT.
func (t *Table) Factor(symbol string) (float64, error) {
	key := normalizeSymbol(symbol)
	if _, ok := t.symbols[key]; !ok {
		return 0, unknownUnit(symbol, t.dimension)
	}
	return t.factors[key], nil
}

// pivot is Factor except that the base unit always resolves, even in a view
// that does not offer it.
func (t *Table) pivot(symbol string) (float64, error) {
	f, ok := t.factors[normalizeSymbol(symbol)]
	if !ok {
		return 0, unknownUnit(symbol, t.dimension)
	}
	return f, nil
}

// Has reports whether symbol is defined in the table.
func (t *Table) Has(symbol string) bool {
	_, ok := t.symbols[normalizeSymbol(symbol)]
	return ok
}

// Canonical returns the display spelling of symbol ("m3" -> "m³").
func (t *Table) Canonical(symbol string) (string, error) {
	s, ok := t.symbols[normalizeSymbol(symbol)]
	if !ok {
		return "", unknownUnit(symbol, t.dimension)
	}
	return s, nil
}

// Symbols returns display symbols in declaration order.
func (t *Table) Symbols() []string {
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Symbol
	}
	return out
}

// Entries returns a copy of the table's entries with alias factors resolved.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Select returns a view of t restricted to symbols, for pages that offer only
// part of a table in their dropdown. Factors are unchanged, so the view still
// pivots through t's base unit even when the base is not offered: Convert and
// the composite conversions accept the base symbol, while Factor, Has and
// Canonical answer for the offered symbols only.
func (t *Table) Select(symbols ...string) (*Table, error) {
	baseKey := normalizeSymbol(t.base)
	view := &Table{
		dimension: t.dimension,
		base:      t.base,
		factors:   map[string]float64{baseKey: t.factors[baseKey]},
		symbols:   make(map[string]string, len(symbols)),
	}
	for _, s := range symbols {
		key := normalizeSymbol(s)
		f, ok := t.factors[key]
		if !ok {
			return nil, unknownUnit(s, t.dimension)
		}
		if _, dup := view.symbols[key]; dup {
			continue
		}
		view.factors[key] = f
		view.symbols[key] = t.symbols[key]
		for _, e := range t.entries {
			if normalizeSymbol(e.Symbol) == key {
				view.entries = append(view.entries, e)
				break
			}
		}
	}
	return view, nil
}

// normalizeSymbol folds compatibility characters so "m³" and "m3" or the
// micro sign and Greek mu resolve to the same key. Case is preserved: "Mm"
// and "mm" are different units.
func normalizeSymbol(s string) string {
	return norm.NFKC.String(strings.TrimSpace(s))
}
