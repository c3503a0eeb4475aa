package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/roach88/sitecalc/internal/catalog"
	"github.com/roach88/sitecalc/internal/config"
)

// RootOptions holds global flags for all commands, plus the configuration
// and logger resolved from them on first use.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string

	// IDs stamps JSON responses with trace IDs. Nil uses UUIDv7Generator.
	IDs IDGenerator

	cfg    *config.Config
	logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the sitecalc CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitecalc",
		Short: "sitecalc - construction calculator units",
		Long: `Unit conversion and construction calculators.

Converts lengths, areas, volumes, weights and more between units, splits
values into feet and inches style pairs, converts roof pitch, and runs the
rip-rap, wall, concrete, sand, grout, deck stain and roof truss calculators.`,
		SilenceUsage:  true,
		SilenceErrors: true, // main prints errors the commands have not reported
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if _, err := opts.settings(cmd); err != nil {
				return err
			}
			opts.log(cmd).Debug("command started", "command", cmd.CommandPath(), "args", args)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default ./sitecalc.yaml)")

	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewCompositeCommand(opts))
	cmd.AddCommand(NewPitchCommand(opts))
	cmd.AddCommand(NewFmtCommand(opts))
	cmd.AddCommand(NewUnitsCommand(opts))
	cmd.AddCommand(NewPagesCommand(opts))
	cmd.AddCommand(NewCalcCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// settings loads the configuration once.
func (o *RootOptions) settings(cmd *cobra.Command) (*config.Config, error) {
	if o.cfg != nil {
		return o.cfg, nil
	}
	cfg, err := config.Load(viper.New(), o.ConfigFile)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load configuration", err)
	}
	o.cfg = cfg
	o.log(cmd).Debug("configuration resolved",
		"digits", cfg.Display.MaxFractionDigits,
		"commas", cfg.Display.UseCommas,
		"locale", cfg.Display.Locale,
		"catalog_dir", cfg.Catalog.Dir,
	)
	return cfg, nil
}

// log returns the command logger. It writes to stderr so JSON on stdout
// stays parseable.
func (o *RootOptions) log(cmd *cobra.Command) *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	o.logger = newLogger(cmd.ErrOrStderr(), o.cfg, o.Verbose)
	return o.logger
}

func newLogger(w io.Writer, cfg *config.Config, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	format := "text"
	if cfg != nil {
		if l, err := config.ParseLevel(cfg.Log.Level); err == nil {
			level = l
		}
		format = cfg.Log.Format
	}
	if verbose {
		level = slog.LevelDebug
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

// formatter builds the output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	ids := o.IDs
	if ids == nil {
		ids = UUIDv7Generator{}
	}
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
		IDs:       ids,
	}
}

// loadCatalog loads the built-in pages plus any pages under catalog.dir.
func (o *RootOptions) loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	cfg, err := o.settings(cmd)
	if err != nil {
		return nil, err
	}
	c, err := catalog.Default()
	if err != nil {
		return nil, err
	}
	if cfg.Catalog.Dir != "" {
		o.log(cmd).Debug("loading page profiles", "dir", cfg.Catalog.Dir)
		if err := c.LoadDir(cfg.Catalog.Dir); err != nil {
			return nil, err
		}
		if errs := c.Validate(); len(errs) > 0 {
			return nil, fmt.Errorf("%s: %w", cfg.Catalog.Dir, errs[0])
		}
	}
	return c, nil
}
