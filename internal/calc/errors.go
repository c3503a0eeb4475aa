package calc

import (
	"errors"
	"fmt"
	"math"
)

// InputError reports an input value the formula cannot use.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsInputError reports whether err is an *InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

func invalid(field, format string, args ...any) *InputError {
	return &InputError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// empty reports whether any of vs carries no input.
func empty(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}

// requireNonNegative checks present values only; empty values pass.
func requireNonNegative(field string, v float64) error {
	if v < 0 {
		return invalid(field, "must not be negative, got %v", v)
	}
	return nil
}

func requirePositive(field string, v float64) error {
	if v <= 0 {
		return invalid(field, "must be greater than zero, got %v", v)
	}
	return nil
}

// ceilCount rounds a continuous item count up, leaving NaN as NaN.
func ceilCount(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	// Absorb float noise so 3.0000000000000004 bags is still 3.
	return math.Ceil(v - 1e-9)
}

func orDefault(v, def float64) float64 {
	if v == 0 || math.IsNaN(v) {
		return def
	}
	return v
}
