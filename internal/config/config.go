// Package config resolves sitecalc settings from defaults, an optional YAML
// file and SITECALC_ environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/roach88/sitecalc/internal/numfmt"
)

// EnvPrefix prefixes every environment override, e.g. SITECALC_DISPLAY_LOCALE.
const EnvPrefix = "SITECALC"

// Config is the resolved configuration.
type Config struct {
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Catalog CatalogConfig `mapstructure:"catalog" yaml:"catalog"`
}

// DisplayConfig controls how computed amounts are rendered.
type DisplayConfig struct {
	MaxFractionDigits int    `mapstructure:"max_fraction_digits" yaml:"max_fraction_digits"`
	UseCommas         bool   `mapstructure:"use_commas" yaml:"use_commas"`
	Locale            string `mapstructure:"locale" yaml:"locale"`
}

// LogConfig selects the slog level and handler.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CatalogConfig points at extra page profiles.
type CatalogConfig struct {
	// Dir holds additional .cue page files. Empty means built-in pages only.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	// -- Display --
	v.SetDefault("display.max_fraction_digits", 2)
	v.SetDefault("display.use_commas", true)
	v.SetDefault("display.locale", "en")

	// -- Log --
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// -- Catalog --
	v.SetDefault("catalog.dir", "")
}

// NewDefaultConfig returns the configuration with nothing overridden.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := NewConfigFromViper(v)
	if err != nil {
		// Defaults always validate.
		panic(err)
	}
	return cfg
}

// Load layers defaults, the config file and the environment onto v.
//
// With an empty path, sitecalc.yaml is looked up in the working directory
// and its absence is not an error. An explicit path must exist.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("sitecalc")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return NewConfigFromViper(v)
}

// NewConfigFromViper unmarshals and validates v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	d := c.Display.MaxFractionDigits
	if d < 0 || d > numfmt.MaxFractionDigitsLimit {
		return fmt.Errorf("display.max_fraction_digits must be between 0 and %d, got %d", numfmt.MaxFractionDigitsLimit, d)
	}
	if _, err := language.Parse(c.Display.Locale); err != nil {
		return fmt.Errorf("display.locale %q is not a BCP 47 tag: %w", c.Display.Locale, err)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// NumberOptions converts the display settings for numfmt.
func (c *Config) NumberOptions() numfmt.Options {
	tag, err := language.Parse(c.Display.Locale)
	if err != nil {
		tag = language.English
	}
	return numfmt.Options{
		MaximumFractionDigits: c.Display.MaxFractionDigits,
		UseCommas:             c.Display.UseCommas,
		Locale:                tag,
	}
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown level %q", s)
}
