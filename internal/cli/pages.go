package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sitecalc/internal/calc"
	"github.com/roach88/sitecalc/internal/catalog"
	"github.com/roach88/sitecalc/internal/units"
)

// PageSummary is one line of the page listing.
type PageSummary struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Formula string `json:"formula"`
}

// FieldInfo describes a page field.
type FieldInfo struct {
	Name         string   `json:"name"`
	Label        string   `json:"label"`
	Dimension    string   `json:"dimension"`
	Units        []string `json:"units,omitempty"`
	DefaultUnit  string   `json:"default_unit,omitempty"`
	DefaultValue *float64 `json:"default_value,omitempty"`
	Output       bool     `json:"output"`
}

// ChoiceInfo describes a named setting of a page's formula.
type ChoiceInfo struct {
	Name string `json:"name"`
	Help string `json:"help"`
}

// PageInfo describes one page in full.
type PageInfo struct {
	PageSummary
	Fields  []FieldInfo  `json:"fields"`
	Choices []ChoiceInfo `json:"choices,omitempty"`
}

func (p PageInfo) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s (formula %s)\n", p.Name, p.Title, p.Formula)
	for _, fi := range p.Fields {
		kind := "in "
		if fi.Output {
			kind = "out"
		}
		fmt.Fprintf(&b, "  %s %-20s %-28s %s", kind, fi.Name, fi.Label, fi.Dimension)
		if len(fi.Units) > 0 {
			fmt.Fprintf(&b, " [%s]", strings.Join(fi.Units, " "))
		}
		if fi.DefaultValue != nil {
			fmt.Fprintf(&b, " default %v %s", *fi.DefaultValue, fi.DefaultUnit)
		}
		b.WriteString("\n")
	}
	for _, c := range p.Choices {
		fmt.Fprintf(&b, "  choice %s: %s\n", c.Name, c.Help)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// PagesResult is the payload of the pages listing.
type PagesResult struct {
	Pages []PageSummary `json:"pages"`
}

func (r PagesResult) String() string {
	lines := make([]string, len(r.Pages))
	for i, p := range r.Pages {
		lines[i] = fmt.Sprintf("%-12s %s", p.Name, p.Title)
	}
	return strings.Join(lines, "\n")
}

// NewPagesCommand creates the pages command.
func NewPagesCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pages [name]",
		Short: "List calculator pages or describe one",
		Long: `List the calculator pages in the catalog.

With a page name, show its fields, units and defaults. Pages from the
directory set in catalog.dir are listed after the built-in pages.

Examples:
  sitecalc pages
  sitecalc pages riprap`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPages(cmd, opts, args)
		},
	}
}

func runPages(cmd *cobra.Command, opts *RootOptions, args []string) error {
	f := opts.formatter(cmd)

	c, err := opts.loadCatalog(cmd)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeCatalog, err.Error(), nil)
	}

	if len(args) == 0 {
		var result PagesResult
		for _, p := range c.Pages() {
			result.Pages = append(result.Pages, pageSummary(p))
		}
		return f.Success(result)
	}

	p, ok := c.Page(args[0])
	if !ok {
		return f.Fail(ExitCommandError, ErrCodeNotFound,
			fmt.Sprintf("page %q not found", args[0]), map[string]any{"pages": c.Names()})
	}
	return f.Success(pageInfo(p))
}

func pageSummary(p catalog.Page) PageSummary {
	return PageSummary{Name: p.Name, Title: p.Title, Formula: p.Formula}
}

func pageInfo(p catalog.Page) PageInfo {
	info := PageInfo{PageSummary: pageSummary(p)}
	for _, field := range p.Fields {
		fi := FieldInfo{
			Name:        field.Name,
			Label:       field.Label,
			Dimension:   catalog.DimensionNumber,
			Units:       field.Units,
			DefaultUnit: field.DefaultUnit,
			Output:      field.Output,
		}
		if !field.Unitless() {
			fi.Dimension = field.Dimension.String()
			if len(fi.Units) == 0 {
				if t, err := units.TableFor(field.Dimension); err == nil {
					fi.Units = t.Symbols()
				}
			}
		}
		if field.HasDefault() {
			v := field.DefaultValue
			fi.DefaultValue = &v
		}
		info.Fields = append(info.Fields, fi)
	}
	if formula, ok := calc.Lookup(p.Formula); ok {
		for _, c := range formula.Choices {
			info.Choices = append(info.Choices, ChoiceInfo{Name: c.Name, Help: c.Help})
		}
	}
	return info
}
