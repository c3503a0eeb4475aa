package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleAmounts = []float64{0, 0.001, 1, 5.5, 12.5, 1234.5678, 1e6}

func allTables() []*Table {
	var out []*Table
	for _, d := range Dimensions() {
		t, err := TableFor(d)
		if err != nil {
			panic(err)
		}
		out = append(out, t)
	}
	return out
}

func TestConvert_RoundTripAllTables(t *testing.T) {
	for _, table := range allTables() {
		t.Run(table.Dimension().String(), func(t *testing.T) {
			for _, a := range table.Symbols() {
				for _, b := range table.Symbols() {
					for _, x := range sampleAmounts {
						there, err := Convert(x, a, b, table)
						require.NoError(t, err)
						back, err := Convert(there, b, a, table)
						require.NoError(t, err)
						if x == 0 {
							assert.Equal(t, 0.0, back, "%s -> %s -> %s", a, b, a)
							continue
						}
						assert.InEpsilon(t, x, back, 1e-9, "%v %s -> %s -> %s", x, a, b, a)
					}
				}
			}
		})
	}
}

func TestConvert_IdentityIsExact(t *testing.T) {
	for _, table := range allTables() {
		for _, sym := range table.Symbols() {
			for _, x := range []float64{0.1, 1.0 / 3, 123456.789, math.Pi} {
				got, err := Convert(x, sym, sym, table)
				require.NoError(t, err)
				assert.Equal(t, x, got, "%s in %s", sym, table.Dimension())
			}
		}
	}
}

func TestConvert_PivotsThroughBase(t *testing.T) {
	for _, table := range allTables() {
		for _, a := range table.Symbols() {
			for _, b := range table.Symbols() {
				if normalizeSymbol(a) == normalizeSymbol(b) {
					continue
				}
				fa, err := table.Factor(a)
				require.NoError(t, err)
				fb, err := table.Factor(b)
				require.NoError(t, err)

				got, err := Convert(7.25, a, b, table)
				require.NoError(t, err)
				assert.Equal(t, 7.25*fa/fb, got, "%s -> %s", a, b)
			}
		}
	}
}

func TestConvert_KnownValues(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		from   string
		to     string
		table  *Table
		want   float64
	}{
		{"foot to meter", 1, "ft", "m", LengthTable, 0.3048},
		{"centimeters to meter", 100, "cm", "m", LengthTable, 1},
		{"mile to feet", 1, "mi", "ft", LengthTable, 5280},
		{"square yard to square feet", 1, "yd²", "ft²", AreaTable, 9},
		{"cubic yard to cubic feet", 1, "yd³", "ft³", VolumeTable, 27},
		{"pound to ounces", 1, "lb", "oz", WeightTable, 16},
		{"lb/ft3 to kg/m3", 1, "lb/ft³", "kg/m³", DensityTable, 16.018463373960138},
		{"mph to m/s", 1, "mph", "m/s", VelocityTable, 0.44704},
		{"standard gravity", 1, "g", "m/s²", AccelerationTable, 9.80665},
		{"radian to degrees", math.Pi, "rad", "deg", AngleTable, 180},
		{"hour to minutes", 1, "h", "min", TimeTable, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.amount, tt.from, tt.to, tt.table)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9*math.Max(1, tt.want))
		})
	}
}

func TestConvert_EmptyPropagates(t *testing.T) {
	for _, x := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		got, err := Convert(x, "ft", "m", LengthTable)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(got))
	}
}

func TestConvert_UnknownUnitFailsLoudly(t *testing.T) {
	got, err := Convert(1, "ft", "parsecs", LengthTable)
	require.Error(t, err)
	assert.True(t, IsUnknownUnit(err))
	assert.True(t, math.IsNaN(got), "must not pass the amount through")
	assert.NotEqual(t, 1.0, got)

	_, err = Convert(1, "parsecs", "ft", LengthTable)
	assert.True(t, IsUnknownUnit(err))

	// Empty input does not hide a bad unit.
	_, err = Convert(math.NaN(), "ft", "parsecs", LengthTable)
	assert.True(t, IsUnknownUnit(err))

	// Units of another dimension are unknown here.
	_, err = Convert(1, "kg", "m", LengthTable)
	assert.True(t, IsUnknownUnit(err))
}

func TestConvert_NormalizedSymbols(t *testing.T) {
	got, err := Convert(1, "m3", "L", VolumeTable)
	require.NoError(t, err)
	assert.InDelta(t, 1000, got, 1e-9)

	got, err = Convert(1, "kg/m3", "g/L", DensityTable)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	got, err = Convert(2, " ft ", "in", LengthTable)
	require.NoError(t, err)
	assert.InDelta(t, 24, got, 1e-12)
}

func TestToBaseFromBase(t *testing.T) {
	base, err := ToBase(12, "in", LengthTable)
	require.NoError(t, err)
	assert.InDelta(t, 0.3048, base, 1e-12)

	ft, err := FromBase(base, "ft", LengthTable)
	require.NoError(t, err)
	assert.InDelta(t, 1, ft, 1e-12)
}

func TestQuantity(t *testing.T) {
	q, err := NewQuantity(100, "cm", Length)
	require.NoError(t, err)
	assert.False(t, q.IsEmpty())

	m, err := q.To("m")
	require.NoError(t, err)
	assert.Equal(t, 1.0, m.Amount)
	assert.Equal(t, "m", m.Unit)

	base, err := q.Base()
	require.NoError(t, err)
	assert.Equal(t, 1.0, base)

	v, err := NewQuantity(2, "m3", Volume)
	require.NoError(t, err)
	assert.Equal(t, "m³", v.Unit)

	empty, err := NewQuantity(math.NaN(), "ft", Length)
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
	converted, err := empty.To("m")
	require.NoError(t, err)
	assert.True(t, converted.IsEmpty())

	_, err = NewQuantity(1, "parsecs", Length)
	assert.True(t, IsUnknownUnit(err))
}
