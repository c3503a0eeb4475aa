package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/sitecalc/internal/catalog"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                      `json:"valid"`
	Pages  []string                  `json:"pages,omitempty"`
	Errors []catalog.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [pages-dir]",
		Short: "Validate calculator page profiles",
		Long: `Validate CUE page profiles against the schema, the formula registry and
the unit tables.

Without a directory, the directory set in catalog.dir is validated, or the
built-in pages when none is set.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	cfg, err := opts.settings(cmd)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
	}

	dir := cfg.Catalog.Dir
	if len(args) == 1 {
		dir = args[0]
	}

	var c *catalog.Catalog
	if dir == "" {
		formatter.VerboseLog("Validating built-in pages")
		c, err = catalog.Default()
		if err != nil {
			return outputValidationErrors(formatter, []catalog.ValidationError{compileFailure("built-in", err)})
		}
	} else {
		if _, err := os.Stat(dir); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("pages directory: %v", err), nil)
		}
		formatter.VerboseLog("Validating pages in %s", dir)
		c, err = catalog.New()
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeCatalog, err.Error(), nil)
		}
		if err := c.LoadDir(dir); err != nil {
			return outputValidationErrors(formatter, []catalog.ValidationError{compileFailure(dir, err)})
		}
	}

	if errs := c.Validate(); len(errs) > 0 {
		return outputValidationErrors(formatter, errs)
	}
	return outputValidateSuccess(formatter, c.Names())
}

// compileFailure reports a load or compile error in validation form.
func compileFailure(source string, err error) catalog.ValidationError {
	return catalog.ValidationError{Page: source, Message: err.Error(), Code: ErrCodeCatalog}
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, pages []string) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Pages: pages})
	}

	fmt.Fprintf(formatter.Writer, "✓ All pages valid (%d)\n", len(pages))
	return nil
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, errs []catalog.ValidationError) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data: ValidationResult{
				Valid:  false,
				Errors: errs,
			},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}
		if err := formatter.encode(response); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(formatter.Writer, "✗ Validation failed")
		fmt.Fprintln(formatter.Writer)
		for _, err := range errs {
			fmt.Fprintf(formatter.Writer, "  %s\n", err.Error())
		}
	}

	// Validation failures = exit code 1 (test/validation failure)
	return &ExitError{
		Code:    ExitFailure,
		Message: fmt.Sprintf("validation failed with %d error(s)", len(errs)),
		Printed: true,
	}
}
