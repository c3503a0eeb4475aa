package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalTables_HaveOneBase(t *testing.T) {
	bases := map[Dimension]string{
		Length:       "m",
		Area:         "m²",
		Volume:       "m³",
		Weight:       "kg",
		Density:      "kg/m³",
		Velocity:     "m/s",
		Acceleration: "m/s²",
		Angle:        "deg",
		Time:         "s",
	}
	for d, want := range bases {
		table, err := TableFor(d)
		require.NoError(t, err)
		assert.Equal(t, want, table.Base(), d.String())
		assert.Equal(t, d, table.Dimension())

		f, err := table.Factor(want)
		require.NoError(t, err)
		assert.Equal(t, 1.0, f)
	}
}

func TestCanonicalTables_PositiveFactors(t *testing.T) {
	for _, table := range allTables() {
		for _, e := range table.Entries() {
			assert.Greater(t, e.Factor, 0.0, "%s %s", table.Dimension(), e.Symbol)
		}
	}
}

func TestNewTable_Validation(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		wantMsg string
	}{
		{
			name:    "empty",
			entries: nil,
			wantMsg: "no units",
		},
		{
			name: "no base",
			entries: []Entry{
				{Symbol: "cm", Factor: 0.01},
				{Symbol: "mm", Factor: 0.001},
			},
			wantMsg: "no base unit",
		},
		{
			name: "two bases",
			entries: []Entry{
				{Symbol: "m", Factor: 1},
				{Symbol: "metre", Factor: 1},
			},
			wantMsg: "share factor",
		},
		{
			name: "non-positive factor",
			entries: []Entry{
				{Symbol: "m", Factor: 1},
				{Symbol: "bad", Factor: 0},
			},
			wantMsg: "non-positive factor",
		},
		{
			name: "duplicate after normalization",
			entries: []Entry{
				{Symbol: "m³", Factor: 1},
				{Symbol: "m3", Factor: 2},
			},
			wantMsg: "duplicate unit symbol",
		},
		{
			name: "dangling alias",
			entries: []Entry{
				{Symbol: "m", Factor: 1},
				{Symbol: "metre", AliasOf: "meter"},
			},
			wantMsg: "refers to unknown unit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(Length, tt.entries...)
			require.Error(t, err)
			assert.Equal(t, ErrCodeInvalidTable, CodeOf(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestNewTable_AliasSharesFactor(t *testing.T) {
	table, err := NewTable(Length,
		Entry{Symbol: "m", Factor: 1},
		Entry{Symbol: "metre", AliasOf: "m"},
		Entry{Symbol: "cm", Factor: 0.01},
	)
	require.NoError(t, err)
	assert.Equal(t, "m", table.Base())

	f, err := table.Factor("metre")
	require.NoError(t, err)
	assert.Equal(t, 1.0, f)
	assert.Equal(t, []string{"m", "metre", "cm"}, table.Symbols())
}

func TestNewTable_DoesNotMutateInput(t *testing.T) {
	entries := []Entry{
		{Symbol: "m", Factor: 1},
		{Symbol: "metre", AliasOf: "m"},
	}
	_, err := NewTable(Length, entries...)
	require.NoError(t, err)
	assert.Equal(t, 0.0, entries[1].Factor)
}

func TestTable_Canonical(t *testing.T) {
	sym, err := AreaTable.Canonical("ft2")
	require.NoError(t, err)
	assert.Equal(t, "ft²", sym)

	_, err = AreaTable.Canonical("ft")
	assert.True(t, IsUnknownUnit(err))

	assert.True(t, AngleTable.Has("°"))
	assert.False(t, AngleTable.Has("%"))
}

func TestTable_Select(t *testing.T) {
	view, err := LengthTable.Select("ft", "in", "ft")
	require.NoError(t, err)
	assert.Equal(t, []string{"ft", "in"}, view.Symbols())
	assert.Equal(t, "m", view.Base())

	got, err := Convert(18, "in", "ft", view)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, got, 1e-12)

	_, err = Convert(1, "yd", "ft", view)
	assert.True(t, IsUnknownUnit(err), "units outside the selection are rejected")
	_, err = view.Factor("m")
	assert.True(t, IsUnknownUnit(err))
	assert.False(t, view.Has("m"))

	_, err = LengthTable.Select("ft", "furlong")
	assert.True(t, IsUnknownUnit(err))
}

func TestTable_SelectPivotsThroughBase(t *testing.T) {
	view, err := LengthTable.Select("ft", "in")
	require.NoError(t, err)

	base, err := ToBase(1, "ft", view)
	require.NoError(t, err)
	assert.Equal(t, 0.3048, base)

	back, err := FromBase(0.3048, "ft", view)
	require.NoError(t, err)
	assert.Equal(t, 1.0, back)

	p, err := view.BetweenComposites(1, 6, FeetInches, FeetInches)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p.Whole)
	assert.InDelta(t, 6, p.Fraction, 1e-9)

	p, err = view.ToComposite(0.4572, view.Base(), FeetInches)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p.Whole)
	assert.InDelta(t, 6, p.Fraction, 1e-9)

	m, err := ReexpressIn(PlainValue(18, Plain{Sym: "in", Dimension: Length}), FeetInches, view)
	require.NoError(t, err)
	assert.Equal(t, 1.0, m.Pair.Whole)
	assert.InDelta(t, 6, m.Pair.Fraction, 1e-9)
}

func TestParseDimension(t *testing.T) {
	for _, d := range Dimensions() {
		got, err := ParseDimension(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}

	got, err := ParseDimension(" Mass ")
	require.NoError(t, err)
	assert.Equal(t, Weight, got)

	got, err = ParseDimension("pitch")
	require.NoError(t, err)
	assert.Equal(t, Angle, got)

	_, err = ParseDimension("temperature")
	assert.Error(t, err)
	assert.Equal(t, "dimension(0)", DimensionUnknown.String())
}

func TestTableFor_Unknown(t *testing.T) {
	_, err := TableFor(DimensionUnknown)
	assert.Error(t, err)
}
