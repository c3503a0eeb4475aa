package units

import (
	"errors"
	"fmt"
)

// ConversionError reports a conversion that cannot produce a trustworthy
// answer. Empty (NaN) input is not an error and never produces one.
type ConversionError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Unit is the offending symbol, if any.
	Unit string

	// Dimension is the table the lookup ran against.
	Dimension Dimension
}

// ErrorCode categorizes conversion errors.
type ErrorCode string

const (
	// ErrCodeUnknownUnit indicates a symbol absent from the dimension's table.
	ErrCodeUnknownUnit ErrorCode = "UNKNOWN_UNIT"

	// ErrCodeNegativeMeasurement indicates composite decomposition of a negative amount.
	ErrCodeNegativeMeasurement ErrorCode = "NEGATIVE_MEASUREMENT"

	// ErrCodeDimensionMismatch indicates units from two different dimensions.
	ErrCodeDimensionMismatch ErrorCode = "DIMENSION_MISMATCH"

	// ErrCodeInvalidTable indicates a table that breaks the base-unit invariants.
	ErrCodeInvalidTable ErrorCode = "INVALID_TABLE"

	// ErrCodeInvalidComposite indicates a composite whose ratio disagrees with its table.
	ErrCodeInvalidComposite ErrorCode = "INVALID_COMPOSITE"
)

// Error implements the error interface.
func (e *ConversionError) Error() string {
	if e.Unit != "" {
		return fmt.Sprintf("%s: %s (unit=%q, dimension=%s)", e.Code, e.Message, e.Unit, e.Dimension)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf returns the ErrorCode carried by err, or "" when err is not a
// ConversionError.
func CodeOf(err error) ErrorCode {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// IsUnknownUnit reports whether err is an UNKNOWN_UNIT error.
func IsUnknownUnit(err error) bool {
	return CodeOf(err) == ErrCodeUnknownUnit
}

// IsNegativeMeasurement reports whether err is a NEGATIVE_MEASUREMENT error.
func IsNegativeMeasurement(err error) bool {
	return CodeOf(err) == ErrCodeNegativeMeasurement
}

// IsDimensionMismatch reports whether err is a DIMENSION_MISMATCH error.
func IsDimensionMismatch(err error) bool {
	return CodeOf(err) == ErrCodeDimensionMismatch
}

// NewUnknownUnit builds the UNKNOWN_UNIT error for symbol. Layers that offer
// a subset of a table use it to reject symbols outside their subset.
func NewUnknownUnit(symbol string, d Dimension) *ConversionError {
	return unknownUnit(symbol, d)
}

func unknownUnit(symbol string, d Dimension) *ConversionError {
	return &ConversionError{
		Code:      ErrCodeUnknownUnit,
		Message:   "unit not defined for dimension",
		Unit:      symbol,
		Dimension: d,
	}
}

func negativeMeasurement(amount float64, symbol string, d Dimension) *ConversionError {
	return &ConversionError{
		Code:      ErrCodeNegativeMeasurement,
		Message:   fmt.Sprintf("measurement must not be negative, got %g", amount),
		Unit:      symbol,
		Dimension: d,
	}
}

func dimensionMismatch(from, to Dimension) *ConversionError {
	return &ConversionError{
		Code:    ErrCodeDimensionMismatch,
		Message: fmt.Sprintf("cannot convert %s to %s", from, to),
	}
}

func invalidTable(d Dimension, format string, args ...any) *ConversionError {
	return &ConversionError{
		Code:      ErrCodeInvalidTable,
		Message:   fmt.Sprintf(format, args...),
		Dimension: d,
	}
}
