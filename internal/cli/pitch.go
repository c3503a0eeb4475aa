package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/sitecalc/internal/numfmt"
	"github.com/roach88/sitecalc/internal/pitch"
)

// PitchResult is the payload of the pitch command.
type PitchResult struct {
	Input float64 `json:"input"`
	From  string  `json:"from"`
	To    string  `json:"to"`
	Value float64 `json:"value"`
	Text  string  `json:"text"`
}

func (r PitchResult) String() string {
	return fmt.Sprintf("%s %s = %s %s", strconv.FormatFloat(r.Input, 'f', -1, 64), r.From, r.Text, r.To)
}

// NewPitchCommand creates the pitch command.
func NewPitchCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pitch <value> <from> <to>",
		Short: "Convert roof pitch between degrees, percent and rise per 12",
		Long: `Convert roof pitch between notations.

Notations: degrees (deg), percent (%, grade), rise12 (:12, in/ft).

Examples:
  sitecalc pitch 6 rise12 degrees
  sitecalc pitch 45 degrees percent`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPitch(cmd, opts, args)
		},
	}
}

func runPitch(cmd *cobra.Command, opts *RootOptions, args []string) error {
	f := opts.formatter(cmd)
	cfg, err := opts.settings(cmd)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
	}

	value, err := parseRequiredAmount(args[0])
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeInvalidAmount, err.Error(), nil)
	}
	from, err := pitch.ParseNotation(args[1])
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeUnknownUnit, err.Error(), nil)
	}
	to, err := pitch.ParseNotation(args[2])
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeUnknownUnit, err.Error(), nil)
	}

	out, err := pitch.Convert(value, from, to)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}
	opts.log(cmd).Debug("pitch converted", "from", from.String(), "to", to.String(), "value", out)

	return f.Success(PitchResult{
		Input: value,
		From:  from.String(),
		To:    to.String(),
		Value: out,
		Text:  numfmt.Format(out, cfg.NumberOptions()),
	})
}
