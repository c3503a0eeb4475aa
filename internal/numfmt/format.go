// Package numfmt renders computed amounts for display and reads amounts back
// from partially typed input.
package numfmt

import (
	"math"
	"math/big"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// MaxFractionDigitsLimit caps Options.MaximumFractionDigits.
const MaxFractionDigitsLimit = 20

// Options controls Format.
type Options struct {
	// MaximumFractionDigits is the number of decimals kept before trailing
	// zeros are trimmed.
	MaximumFractionDigits int

	// UseCommas inserts grouping separators into the integer part.
	UseCommas bool

	// Locale selects the grouping and decimal symbols. The zero value
	// formats as English.
	Locale language.Tag
}

// DefaultOptions are the display settings used when none are configured.
func DefaultOptions() Options {
	return Options{MaximumFractionDigits: 2, UseCommas: true, Locale: language.English}
}

// Format renders amount with at most MaximumFractionDigits decimals, halves
// rounded away from zero, trailing zeros trimmed.
//
// NaN and infinite amounts format as "". Format never panics.
func Format(amount float64, opts Options) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ""
	}
	digits := clampDigits(opts.MaximumFractionDigits)

	v, err := strconv.ParseFloat(roundHalfAway(amount, digits), 64)
	if err != nil {
		return ""
	}
	if v == 0 {
		// Drops the sign of -0 and of negatives that round to zero.
		v = 0
	}

	tag := opts.Locale
	if tag == language.Und {
		tag = language.English
	}
	numOpts := []number.Option{number.MaxFractionDigits(digits)}
	if !opts.UseCommas {
		numOpts = append(numOpts, number.NoSeparator())
	}
	return message.NewPrinter(tag).Sprint(number.Decimal(v, numOpts...))
}

// roundHalfAway rounds the exact binary value of v to digits decimals.
// big.Rat.FloatString rounds halves away from zero, unlike strconv which
// rounds them to even.
func roundHalfAway(v float64, digits int) string {
	r := new(big.Rat).SetFloat64(v)
	if r == nil {
		return strconv.FormatFloat(v, 'f', digits, 64)
	}
	return r.FloatString(digits)
}

// FormatComposite renders whole major units plus fraction minor units, where
// one major equals ratio minors. The fraction is rounded first, and a
// fraction that rounds up to ratio carries into whole, so 5 ft 11.996 in
// shows as 6 ft 0 in at two decimals.
func FormatComposite(whole, fraction, ratio float64, opts Options) (string, string) {
	digits := clampDigits(opts.MaximumFractionDigits)
	if !math.IsNaN(fraction) && !math.IsInf(fraction, 0) {
		if v, err := strconv.ParseFloat(roundHalfAway(fraction, digits), 64); err == nil {
			fraction = v
		}
	}
	if ratio > 0 && fraction >= ratio && !math.IsNaN(whole) && !math.IsInf(whole, 0) {
		carry := math.Floor(fraction / ratio)
		whole += carry
		fraction -= carry * ratio
	}
	return Format(whole, opts), Format(fraction, opts)
}

func clampDigits(digits int) int {
	if digits < 0 {
		return 0
	}
	if digits > MaxFractionDigitsLimit {
		return MaxFractionDigitsLimit
	}
	return digits
}
