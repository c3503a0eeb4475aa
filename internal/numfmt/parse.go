package numfmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseAmount reads a typed amount leniently. Grouping commas, underscores
// and surrounding spaces are ignored. Input that is blank, partial ("-",
// ".", "-.") or malformed yields NaN, the empty amount.
func ParseAmount(raw string) float64 {
	v, err := Parse(raw)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Parse is the strict form of ParseAmount: blank and partial input yields
// NaN with a nil error, malformed input an error. Non-finite spellings
// ("Inf", "NaN") are rejected.
func Parse(raw string) (float64, error) {
	s := clean(raw)
	switch s {
	case "", "-", "+", ".", "-.", "+.":
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN(), fmt.Errorf("invalid amount %q", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return math.NaN(), fmt.Errorf("invalid amount %q", raw)
	}
	return v, nil
}

func clean(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}
