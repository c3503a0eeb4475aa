package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sitecalc/internal/units"
)

// UnitInfo describes one table entry.
type UnitInfo struct {
	Symbol  string  `json:"symbol"`
	Name    string  `json:"name"`
	Factor  float64 `json:"factor"`
	AliasOf string  `json:"alias_of,omitempty"`
}

// TableInfo describes the unit table of one dimension.
type TableInfo struct {
	Dimension  string     `json:"dimension"`
	Base       string     `json:"base"`
	Units      []UnitInfo `json:"units"`
	Composites []string   `json:"composites,omitempty"`
}

// UnitsResult is the payload of the units command.
type UnitsResult struct {
	Tables []TableInfo `json:"tables"`
}

func (r UnitsResult) String() string {
	var b strings.Builder
	for i, t := range r.Tables {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s (base %s)\n", t.Dimension, t.Base)
		for _, u := range t.Units {
			factor := strconv.FormatFloat(u.Factor, 'g', 12, 64)
			if u.AliasOf != "" {
				fmt.Fprintf(&b, "  %-8s %-32s = %s\n", u.Symbol, u.Name, u.AliasOf)
				continue
			}
			fmt.Fprintf(&b, "  %-8s %-32s %s\n", u.Symbol, u.Name, factor)
		}
		if len(t.Composites) > 0 {
			fmt.Fprintf(&b, "  composites: %s\n", strings.Join(t.Composites, ", "))
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// NewUnitsCommand creates the units command.
func NewUnitsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "units [dimension]",
		Short: "List unit tables",
		Long: `List the unit tables with each unit's factor to the base unit.

Without an argument every dimension is listed.

Examples:
  sitecalc units
  sitecalc units length`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnits(cmd, opts, args)
		},
	}
}

func runUnits(cmd *cobra.Command, opts *RootOptions, args []string) error {
	f := opts.formatter(cmd)

	dims := units.Dimensions()
	if len(args) == 1 {
		d, err := units.ParseDimension(args[0])
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeUnknownDimension, err.Error(), nil)
		}
		dims = []units.Dimension{d}
	}

	var result UnitsResult
	for _, d := range dims {
		t, err := units.TableFor(d)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeUnknownDimension, err.Error(), nil)
		}
		result.Tables = append(result.Tables, tableInfo(t))
	}
	return f.Success(result)
}

func tableInfo(t *units.Table) TableInfo {
	info := TableInfo{
		Dimension: t.Dimension().String(),
		Base:      t.Base(),
	}
	for _, e := range t.Entries() {
		factor, _ := t.Factor(e.Symbol)
		info.Units = append(info.Units, UnitInfo{
			Symbol:  e.Symbol,
			Name:    e.Name,
			Factor:  factor,
			AliasOf: e.AliasOf,
		})
	}
	for _, c := range units.Composites(t.Dimension()) {
		info.Composites = append(info.Composites, c.Symbol())
	}
	return info
}
