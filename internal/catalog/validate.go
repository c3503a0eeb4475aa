package catalog

import (
	"fmt"

	"github.com/roach88/sitecalc/internal/calc"
	"github.com/roach88/sitecalc/internal/units"
)

// Validation error codes (E200-E299)
const (
	ErrUnknownFormula     = "E201" // formula not registered
	ErrUnknownParam       = "E202" // field is not a formula parameter
	ErrDimensionMismatch  = "E203" // field dimension differs from the parameter
	ErrOutputMismatch     = "E204" // output flag differs from the formula
	ErrUnknownUnit        = "E205" // offered unit not defined for the dimension
	ErrDefaultUnitMissing = "E206" // default unit not among offered units
	ErrUnitsOnNumber      = "E207" // unitless field offers units
	ErrNoInputsOrOutputs  = "E208" // page has no inputs or no outputs
	ErrDuplicateUnit      = "E209" // unit offered twice
	ErrNegativeDefault    = "E210" // default value below zero
)

// ValidationError represents a page profile problem.
type ValidationError struct {
	Page    string `json:"page"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Page, e.Message)
	}
	return fmt.Sprintf("[%s] %s.%s: %s", e.Code, e.Page, e.Field, e.Message)
}

// Validate checks a page against the formula registry and the unit tables.
// Returns all errors found (does not fail-fast).
func Validate(p Page) []ValidationError {
	var errs []ValidationError
	add := func(field, code, format string, args ...any) {
		errs = append(errs, ValidationError{
			Page:    p.Name,
			Field:   field,
			Message: fmt.Sprintf(format, args...),
			Code:    code,
		})
	}

	formula, ok := calc.Lookup(p.Formula)
	if !ok {
		add("", ErrUnknownFormula, "formula %q is not registered", p.Formula)
	}

	if len(p.Inputs()) == 0 || len(p.Outputs()) == 0 {
		add("", ErrNoInputsOrOutputs, "page needs at least one input and one output")
	}

	for _, f := range p.Fields {
		if ok {
			param, found := formula.Param(f.Name)
			switch {
			case !found:
				add(f.Name, ErrUnknownParam, "formula %q has no parameter %q", p.Formula, f.Name)
			case param.Dimension != f.Dimension:
				add(f.Name, ErrDimensionMismatch, "field is %s, formula expects %s", dimensionName(f.Dimension), dimensionName(param.Dimension))
			case formula.Output(f.Name) != f.Output:
				add(f.Name, ErrOutputMismatch, "output is %v, formula says %v", f.Output, formula.Output(f.Name))
			}
		}

		if f.HasDefault() && f.DefaultValue < 0 {
			add(f.Name, ErrNegativeDefault, "default value %v is negative", f.DefaultValue)
		}

		if f.Unitless() {
			if len(f.Units) > 0 || f.DefaultUnit != "" {
				add(f.Name, ErrUnitsOnNumber, "number fields take no units")
			}
			continue
		}

		seen := make(map[units.Unit]bool)
		for _, sym := range f.Units {
			u, err := units.ParseUnit(f.Dimension, sym)
			if err != nil {
				add(f.Name, ErrUnknownUnit, "unit %q is not defined for %s", sym, f.Dimension)
				continue
			}
			if seen[u] {
				add(f.Name, ErrDuplicateUnit, "unit %q is offered twice", sym)
			}
			seen[u] = true
		}

		if f.DefaultUnit != "" {
			u, err := units.ParseUnit(f.Dimension, f.DefaultUnit)
			switch {
			case err != nil:
				add(f.Name, ErrUnknownUnit, "default unit %q is not defined for %s", f.DefaultUnit, f.Dimension)
			case !f.Offers(u):
				add(f.Name, ErrDefaultUnitMissing, "default unit %q is not offered", f.DefaultUnit)
			}
		}
	}

	return errs
}

func dimensionName(d units.Dimension) string {
	if d == units.DimensionUnknown {
		return DimensionNumber
	}
	return d.String()
}
