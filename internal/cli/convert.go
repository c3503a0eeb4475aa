package cli

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sitecalc/internal/numfmt"
	"github.com/roach88/sitecalc/internal/units"
)

// ConvertOptions holds options for the convert command.
type ConvertOptions struct {
	*RootOptions
	Dimension string
}

// ConversionResult is the payload of a successful conversion.
type ConversionResult struct {
	Dimension string  `json:"dimension"`
	Amount    float64 `json:"amount"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Value     float64 `json:"value"`
	Text      string  `json:"text"`
}

func (r ConversionResult) String() string {
	return fmt.Sprintf("%s %s = %s %s", strconv.FormatFloat(r.Amount, 'f', -1, 64), r.From, r.Text, r.To)
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert <amount> <from> <to>",
		Short: "Convert an amount between units of one dimension",
		Long: `Convert an amount between two units of the same dimension.

The dimension is inferred when exactly one unit table defines both symbols.
Pass --dimension when a symbol is shared ("g" is both grams and standard
gravity).

Examples:
  sitecalc convert 1 ft m
  sitecalc convert 2.5 yd3 m3
  sitecalc convert 9.81 m/s2 g --dimension acceleration`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Dimension, "dimension", "d", "", "unit dimension (length, area, volume, weight, ...)")

	return cmd
}

func runConvert(cmd *cobra.Command, opts *ConvertOptions, args []string) error {
	f := opts.formatter(cmd)
	cfg, err := opts.settings(cmd)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
	}

	amount, err := parseRequiredAmount(args[0])
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeInvalidAmount, err.Error(), nil)
	}

	from, to := args[1], args[2]
	d, err := resolveDimension(opts.Dimension, from, to)
	if err != nil {
		return conversionFailure(f, err)
	}
	table, err := units.TableFor(d)
	if err != nil {
		return conversionFailure(f, err)
	}

	value, err := units.Convert(amount, from, to, table)
	if err != nil {
		return conversionFailure(f, err)
	}
	if units.IsEmpty(value) {
		return f.Fail(ExitCommandError, ErrCodeInvalidAmount, outOfRange(args[0], from, to), nil)
	}
	opts.log(cmd).Debug("converted", "dimension", d.String(), "amount", amount, "from", from, "to", to, "value", value)

	fromSym, _ := table.Canonical(from)
	toSym, _ := table.Canonical(to)
	return f.Success(ConversionResult{
		Dimension: d.String(),
		Amount:    amount,
		From:      fromSym,
		To:        toSym,
		Value:     value,
		Text:      numfmt.Format(value, cfg.NumberOptions()),
	})
}

// parseRequiredAmount parses a command-line amount. Blank input is an error
// here, unlike in a page field.
func parseRequiredAmount(raw string) (float64, error) {
	v, err := numfmt.Parse(raw)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}
	return v, nil
}

func outOfRange(amount, from, to string) string {
	return fmt.Sprintf("%s %s is out of range in %s", amount, from, to)
}

var (
	errAmbiguousUnit = errors.New("ambiguous unit")
	errNoDimension   = errors.New("unknown unit")
)

// resolveDimension parses name, or when name is empty finds the single
// dimension whose units (plain or composite) include every symbol.
func resolveDimension(name string, symbols ...string) (units.Dimension, error) {
	if name != "" {
		return units.ParseDimension(name)
	}

	var matches []units.Dimension
	for _, d := range units.Dimensions() {
		if definesAll(d, symbols) {
			matches = append(matches, d)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return units.DimensionUnknown, fmt.Errorf("%w: no dimension defines all of %s", errNoDimension, strings.Join(quoteAll(symbols), ", "))
	default:
		names := make([]string, len(matches))
		for i, d := range matches {
			names[i] = d.String()
		}
		return units.DimensionUnknown, fmt.Errorf("%w: %s match %s; pass --dimension",
			errAmbiguousUnit, strings.Join(quoteAll(symbols), ", "), strings.Join(names, ", "))
	}
}

func definesAll(d units.Dimension, symbols []string) bool {
	for _, s := range symbols {
		if _, err := units.ParseUnit(d, s); err != nil {
			return false
		}
	}
	return true
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}

// conversionFailure prints err with the CLI code matching its category.
func conversionFailure(f *OutputFormatter, err error) error {
	code := codeForUnits(err)
	if errors.Is(err, errNoDimension) {
		code = ErrCodeUnknownUnit
	}
	return f.Fail(ExitCommandError, code, err.Error(), nil)
}

func codeForUnits(err error) string {
	switch units.CodeOf(err) {
	case units.ErrCodeUnknownUnit:
		return ErrCodeUnknownUnit
	case units.ErrCodeNegativeMeasurement:
		return ErrCodeNegative
	case "":
		return ErrCodeUnknownDimension
	}
	return ErrCodeGeneric
}
