package catalog

import (
	"fmt"
	"math"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/sitecalc/internal/units"
)

// DimensionNumber is the CUE spelling of a unitless field.
const DimensionNumber = "number"

// CompilePage parses a CUE page value into a Page.
//
// The value should be the page struct itself, already unified with the
// schema, e.g. the result of LookupPath("page.sand").
func CompilePage(v cue.Value) (*Page, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	page := &Page{}
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		page.Name = labels[len(labels)-1].String()
	}

	var err error
	if page.Title, err = requiredString(v, "title"); err != nil {
		return nil, err
	}
	if page.Formula, err = requiredString(v, "formula"); err != nil {
		return nil, err
	}

	fieldsVal := v.LookupPath(cue.ParsePath("fields"))
	if !fieldsVal.Exists() {
		return nil, &CompileError{Field: "fields", Message: "fields are required", Pos: v.Pos()}
	}
	iter, err := fieldsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		f, err := compileField(iter.Selector().Unquoted(), iter.Value())
		if err != nil {
			return nil, err
		}
		page.Fields = append(page.Fields, f)
	}
	if len(page.Fields) == 0 {
		return nil, &CompileError{Field: "fields", Message: "at least one field is required", Pos: fieldsVal.Pos()}
	}

	return page, nil
}

func compileField(name string, v cue.Value) (Field, error) {
	f := Field{Name: name, Label: name, DefaultValue: math.NaN()}

	if label := v.LookupPath(cue.ParsePath("label")); label.Exists() {
		s, err := label.String()
		if err != nil {
			return f, formatCUEError(err)
		}
		f.Label = s
	}

	dimName, err := requiredString(v, "dimension")
	if err != nil {
		return f, err
	}
	if dimName != DimensionNumber {
		d, err := units.ParseDimension(dimName)
		if err != nil {
			return f, &CompileError{
				Field:   fmt.Sprintf("fields.%s.dimension", name),
				Message: err.Error(),
				Pos:     v.LookupPath(cue.ParsePath("dimension")).Pos(),
			}
		}
		f.Dimension = d
	}

	if unitsVal := v.LookupPath(cue.ParsePath("units")); unitsVal.Exists() {
		list, err := unitsVal.List()
		if err != nil {
			return f, formatCUEError(err)
		}
		for list.Next() {
			s, err := list.Value().String()
			if err != nil {
				return f, formatCUEError(err)
			}
			f.Units = append(f.Units, s)
		}
	}

	if du := v.LookupPath(cue.ParsePath("default_unit")); du.Exists() {
		s, err := du.String()
		if err != nil {
			return f, formatCUEError(err)
		}
		f.DefaultUnit = s
	}

	if dv := v.LookupPath(cue.ParsePath("default_value")); dv.Exists() {
		x, err := dv.Float64()
		if err != nil {
			return f, formatCUEError(err)
		}
		f.DefaultValue = x
	}

	if out := v.LookupPath(cue.ParsePath("output")); out.Exists() {
		if d, ok := out.Default(); ok {
			out = d
		}
		b, err := out.Bool()
		if err != nil {
			return f, formatCUEError(err)
		}
		f.Output = b
	}

	return f, nil
}

func requiredString(v cue.Value, field string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", &CompileError{
			Field:   field,
			Message: field + " is required",
			Pos:     v.Pos(),
		}
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
