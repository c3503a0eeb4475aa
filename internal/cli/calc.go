package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sitecalc/internal/calc"
	"github.com/roach88/sitecalc/internal/catalog"
	"github.com/roach88/sitecalc/internal/form"
)

// FieldValue is one field of a calculated page.
type FieldValue struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Unit   string `json:"unit,omitempty"`
	Value  string `json:"value"`
	Minor  string `json:"minor,omitempty"`
	Output bool   `json:"output"`

	// Composite marks a major/minor unit; Value holds the major part.
	Composite bool `json:"composite,omitempty"`
}

// PageResult is the payload of the calc command.
type PageResult struct {
	Page   string            `json:"page"`
	Title  string            `json:"title"`
	Fields []FieldValue      `json:"fields"`
	Errors map[string]string `json:"errors,omitempty"`
}

func (r PageResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.Title)
	for _, fv := range r.Fields {
		marker := " "
		if fv.Output {
			marker = "="
		}
		fmt.Fprintf(&b, "%s %-28s %s\n", marker, fv.Label, fv.text())
	}
	names := make([]string, 0, len(r.Errors))
	for name := range r.Errors {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "! %s: %s\n", name, r.Errors[name])
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (fv FieldValue) text() string {
	if fv.Composite && (fv.Value != "" || fv.Minor != "") {
		major, minor, _ := strings.Cut(fv.Unit, "/")
		return fmt.Sprintf("%s %s %s %s", fv.Value, major, fv.Minor, minor)
	}
	if fv.Value == "" {
		return ""
	}
	return strings.TrimSpace(fv.Value + " " + fv.Unit)
}

// NewCalcCommand creates the calc command.
func NewCalcCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "calc <page> [field=value ...]",
		Short: "Fill in a calculator page and show the results",
		Long: `Fill in a calculator page and show every field.

Settings are applied in order:
  field=value       type a value
  field.minor=value type the minor part of a composite (the inches of ft/in)
  field.unit=symbol switch the field's unit
  choice=value      apply a page choice (mix=M20 on cement, shape=square on
                    wall, turbulence=low on riprap)

Fields left alone keep their defaults. Computed fields are refreshed after
every setting. Exits with code 1 when a field has an error.

Examples:
  sitecalc calc riprap velocity=3
  sitecalc calc wall wall1.unit=ft/in wall1=10 wall1.minor=6 height=8
  sitecalc calc cement mix=M20 length=4 width=3 depth=10`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(cmd, opts, args)
		},
	}
}

func runCalc(cmd *cobra.Command, opts *RootOptions, args []string) error {
	f := opts.formatter(cmd)
	cfg, err := opts.settings(cmd)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
	}
	c, err := opts.loadCatalog(cmd)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeCatalog, err.Error(), nil)
	}

	p, ok := c.Page(args[0])
	if !ok {
		return f.Fail(ExitCommandError, ErrCodeNotFound,
			fmt.Sprintf("page %q not found", args[0]), map[string]any{"pages": c.Names()})
	}

	events := make([]form.Event, 0, len(args)-1)
	for _, arg := range args[1:] {
		e, err := parseSetting(arg, p)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeInvalidInput, err.Error(), nil)
		}
		events = append(events, e)
	}

	s, err := form.New(p, cfg.NumberOptions())
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeCatalog, err.Error(), nil)
	}
	for _, e := range events {
		s = form.Reduce(s, e)
		opts.log(cmd).Debug("page event", "page", p.Name, "event", fmt.Sprintf("%T", e), "errors", len(s.Errors))
	}

	result := pageResult(s)
	if len(result.Errors) == 0 {
		return f.Success(result)
	}

	if f.Format != "json" {
		fmt.Fprintln(f.Writer, result)
	}
	return f.Fail(ExitFailure, ErrCodeInvalidInput,
		fmt.Sprintf("%d field(s) need attention", len(result.Errors)), result)
}

// parseSetting turns "name=value", "name.minor=value" or "name.unit=sym"
// into a form event. A name that is one of p's formula choices applies that
// choice, even when a field shares the name (shape on the wall page).
func parseSetting(arg string, p catalog.Page) (form.Event, error) {
	key, value, ok := strings.Cut(arg, "=")
	if !ok || key == "" {
		return nil, fmt.Errorf("invalid setting %q: want field=value", arg)
	}
	if name, ok := strings.CutSuffix(key, ".unit"); ok {
		return form.ChangeUnit{Field: name, Unit: value}, nil
	}
	if name, ok := strings.CutSuffix(key, ".minor"); ok {
		return form.EditMinor{Field: name, Raw: value}, nil
	}
	if f, ok := calc.Lookup(p.Formula); ok {
		if _, ok := f.Choice(key); ok {
			return form.Choose{Name: key, Value: value}, nil
		}
	}
	return form.EditValue{Field: key, Raw: value}, nil
}

func pageResult(s form.State) PageResult {
	r := PageResult{Page: s.Page.Name, Title: s.Page.Title}
	for _, field := range s.Fields {
		fv := FieldValue{
			Name:   field.Name(),
			Label:  field.Spec.Label,
			Value:  field.Raw,
			Output: field.Spec.Output,
		}
		if field.Unit != nil {
			fv.Unit = field.Unit.Symbol()
		}
		if field.Composite() {
			fv.Minor = field.RawMinor
			fv.Composite = true
		}
		r.Fields = append(r.Fields, fv)
	}
	if len(s.Errors) > 0 {
		r.Errors = make(map[string]string, len(s.Errors))
		for k, v := range s.Errors {
			r.Errors[k] = v
		}
	}
	return r
}
