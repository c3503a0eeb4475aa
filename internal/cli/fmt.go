package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/roach88/sitecalc/internal/numfmt"
)

// FmtOptions holds options for the fmt command.
type FmtOptions struct {
	*RootOptions
	Digits int
	Commas bool
	Locale string
}

// FmtResult is the payload of the fmt command.
type FmtResult struct {
	Amount float64 `json:"amount"`
	Digits int     `json:"digits"`
	Commas bool    `json:"commas"`
	Locale string  `json:"locale"`
	Text   string  `json:"text"`
}

func (r FmtResult) String() string { return r.Text }

// NewFmtCommand creates the fmt command.
func NewFmtCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FmtOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "fmt <amount>",
		Short: "Format a number for display",
		Long: `Format a number the way calculator pages display it.

Rounds half away from zero to at most --digits decimals, trims trailing
zeros and groups thousands. Defaults come from the display section of the
configuration.

Examples:
  sitecalc fmt 1234.5
  sitecalc fmt 0.125 --digits 2
  sitecalc fmt 1234.5 --locale de`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, opts, args)
		},
	}

	cmd.Flags().IntVar(&opts.Digits, "digits", 2, "maximum fraction digits (0-20)")
	cmd.Flags().BoolVar(&opts.Commas, "commas", true, "group thousands")
	cmd.Flags().StringVar(&opts.Locale, "locale", "en", "locale for separators (BCP 47)")

	return cmd
}

func runFmt(cmd *cobra.Command, opts *FmtOptions, args []string) error {
	f := opts.formatter(cmd)
	cfg, err := opts.settings(cmd)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
	}

	amount, err := parseRequiredAmount(args[0])
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeInvalidAmount, err.Error(), nil)
	}

	numOpts := cfg.NumberOptions()
	if cmd.Flags().Changed("digits") {
		if opts.Digits < 0 || opts.Digits > numfmt.MaxFractionDigitsLimit {
			return f.Fail(ExitCommandError, ErrCodeInvalidInput,
				fmt.Sprintf("--digits must be between 0 and %d, got %d", numfmt.MaxFractionDigitsLimit, opts.Digits), nil)
		}
		numOpts.MaximumFractionDigits = opts.Digits
	}
	if cmd.Flags().Changed("commas") {
		numOpts.UseCommas = opts.Commas
	}
	if cmd.Flags().Changed("locale") {
		tag, err := language.Parse(opts.Locale)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeInvalidInput, fmt.Sprintf("--locale: %v", err), nil)
		}
		numOpts.Locale = tag
	}

	return f.Success(FmtResult{
		Amount: amount,
		Digits: numOpts.MaximumFractionDigits,
		Commas: numOpts.UseCommas,
		Locale: numOpts.Locale.String(),
		Text:   numfmt.Format(amount, numOpts),
	})
}
