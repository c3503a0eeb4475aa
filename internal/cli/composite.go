package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sitecalc/internal/numfmt"
	"github.com/roach88/sitecalc/internal/units"
)

// CompositeOptions holds options for the composite command.
type CompositeOptions struct {
	*RootOptions
	Dimension string
}

// CompositeResult is the payload of the composite command. Plain results
// carry Value; composite results carry Whole and Fraction.
type CompositeResult struct {
	Dimension string   `json:"dimension"`
	From      string   `json:"from"`
	To        string   `json:"to"`
	Value     *float64 `json:"value,omitempty"`
	Whole     *float64 `json:"whole,omitempty"`
	Fraction  *float64 `json:"fraction,omitempty"`
	Text      string   `json:"text"`
}

func (r CompositeResult) String() string { return r.Text }

// NewCompositeCommand creates the composite command.
func NewCompositeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompositeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "composite <amount> [minor] <from> <to>",
		Short: "Convert to, from or between two-part units like ft/in",
		Long: `Convert between plain units and composite units.

A composite unit is written major/minor: ft/in, m/cm, yd/ft, lb/oz.
When <from> is composite, give the whole and the remainder as two numbers;
a missing remainder counts as zero.

Examples:
  sitecalc composite 1.6764 m ft/in     # 5 ft 6 in
  sitecalc composite 5 6 ft/in m        # 1.68 m
  sitecalc composite 5 6 ft/in m/cm     # 1 m 67.64 cm`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComposite(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Dimension, "dimension", "d", "", "unit dimension (length, weight, ...)")

	return cmd
}

func runComposite(cmd *cobra.Command, opts *CompositeOptions, args []string) error {
	f := opts.formatter(cmd)
	cfg, err := opts.settings(cmd)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
	}

	numbers, from, to := args[:len(args)-2], args[len(args)-2], args[len(args)-1]
	d, err := resolveDimension(opts.Dimension, from, to)
	if err != nil {
		return conversionFailure(f, err)
	}
	fromUnit, err := units.ParseUnit(d, from)
	if err != nil {
		return conversionFailure(f, err)
	}
	toUnit, err := units.ParseUnit(d, to)
	if err != nil {
		return conversionFailure(f, err)
	}

	m, err := measurementFromArgs(fromUnit, numbers)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeInvalidAmount, err.Error(), nil)
	}
	out, err := units.Reexpress(m, toUnit)
	if err != nil {
		return conversionFailure(f, err)
	}
	if out.IsEmpty() {
		return f.Fail(ExitCommandError, ErrCodeInvalidAmount, outOfRange(strings.Join(numbers, " "), from, to), nil)
	}
	opts.log(cmd).Debug("re-expressed", "dimension", d.String(), "from", from, "to", to)

	return f.Success(compositeResult(out, fromUnit, cfg.NumberOptions()))
}

func measurementFromArgs(u units.Unit, numbers []string) (units.Measurement, error) {
	amounts := make([]float64, len(numbers))
	for i, raw := range numbers {
		v, err := parseRequiredAmount(raw)
		if err != nil {
			return units.Measurement{}, err
		}
		amounts[i] = v
	}

	switch u := u.(type) {
	case units.Composite:
		fraction := 0.0
		if len(amounts) == 2 {
			fraction = amounts[1]
		}
		return units.CompositeValue(amounts[0], fraction, u), nil
	case units.Plain:
		if len(amounts) != 1 {
			return units.Measurement{}, fmt.Errorf("%s takes one amount, got %d", u.Sym, len(amounts))
		}
		return units.PlainValue(amounts[0], u), nil
	}
	return units.Measurement{}, fmt.Errorf("unsupported unit %s", u.Symbol())
}

func compositeResult(m units.Measurement, from units.Unit, opts numfmt.Options) CompositeResult {
	r := CompositeResult{
		Dimension: m.Unit.Dim().String(),
		From:      from.Symbol(),
		To:        m.Unit.Symbol(),
	}
	if c, ok := m.Unit.(units.Composite); ok {
		whole, fraction := m.Pair.Whole, m.Pair.Fraction
		r.Whole, r.Fraction = &whole, &fraction
		wholeText, fractionText := numfmt.FormatComposite(whole, fraction, c.Ratio, opts)
		r.Text = strings.Join([]string{wholeText, c.Major, fractionText, c.Minor}, " ")
		return r
	}
	value := m.Amount
	r.Value = &value
	r.Text = numfmt.Format(value, opts) + " " + m.Unit.Symbol()
	return r
}
