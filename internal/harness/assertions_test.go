package harness

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/sitecalc/internal/units"
)

func TestCheck(t *testing.T) {
	text := "1,234.5"
	pair := units.Pair{Whole: 5, Fraction: 6}

	tests := []struct {
		name string
		want Expect
		got  outcome
		msgs []string
	}{
		{
			name: "value within default tolerance",
			want: Expect{Value: ptr(0.3)},
			got:  valued(0.30000000000000004),
		},
		{
			name: "value outside tolerance",
			want: Expect{Value: ptr(0.3)},
			got:  valued(0.31),
			msgs: []string{"value: expected 0.3, got 0.31"},
		},
		{
			name: "pair",
			want: Expect{Whole: ptr(5.0), Fraction: ptr(6.0)},
			got:  paired(pair),
		},
		{
			name: "pair expected but value produced",
			want: Expect{Whole: ptr(5.0)},
			got:  valued(5),
			msgs: []string{"expected a whole/fraction pair"},
		},
		{
			name: "wrong fraction",
			want: Expect{Fraction: ptr(5.0)},
			got:  paired(pair),
			msgs: []string{"fraction: expected 5, got 6"},
		},
		{
			name: "text",
			want: Expect{Text: ptr("1,234.5")},
			got:  outcome{value: math.NaN(), text: &text},
		},
		{
			name: "empty",
			want: Expect{Empty: true},
			got:  valued(math.NaN()),
		},
		{
			name: "error code",
			want: Expect{Error: "UNKNOWN_UNIT"},
			got:  failed("UNKNOWN_UNIT", errors.New("boom")),
		},
		{
			name: "error expected but none",
			want: Expect{Error: "UNKNOWN_UNIT"},
			got:  valued(1),
			msgs: []string{"expected error UNKNOWN_UNIT, got no error"},
		},
		{
			name: "page fields and errors",
			want: Expect{Fields: map[string]string{"d50": ""}, Errors: map[string]string{"velocity": "enter a number"}},
			got: outcome{
				value:  math.NaN(),
				fields: map[string]string{"d50": "", "velocity": "x"},
				errors: map[string]string{"velocity": "enter a number"},
			},
		},
		{
			name: "missing field",
			want: Expect{Fields: map[string]string{"depth": "1"}},
			got:  outcome{value: math.NaN(), fields: map[string]string{}},
			msgs: []string{"field depth: no such field"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.msgs, check(tt.want, tt.got))
		})
	}
}

func TestCheckOutput_Reexpresses(t *testing.T) {
	d50 := units.PlainValue(0.3760449650301749, units.Plain{Sym: "m", Dimension: units.Length})

	assert.Empty(t, checkOutput(Measure{Value: ptr(37.6), Unit: "cm"}, d50, 0.01))
	assert.Empty(t, checkOutput(Measure{Whole: ptr(1.0), Fraction: ptr(2.8), Unit: "ft/in"}, d50, 0.01))
	assert.NotEmpty(t, checkOutput(Measure{Value: ptr(37.6), Unit: "kg"}, d50, 0.01))
	assert.NotEmpty(t, checkOutput(Measure{Value: ptr(38.0), Unit: "cm"}, d50, 0.01))
}
