// =============================================================================
// CSV to OpenAPI Generator - Configuration Module
// =============================================================================
//
// This module is responsible for loading the optional configuration file.
// Every setting has a default, so the tool runs without any configuration;
// command-line flags are applied on top of whatever is loaded here.
//
// CONFIGURATION FILE (YAML):
//
//   output:
//     dir: "."
//     format: yaml
//     dry_run: false
//   csv:
//     delimiter: ","
//     lazy_quotes: false
//     strict: false
//   xlsx:
//     sheet: ""
//   log:
//     level: info
//     format: text
//
// The enum cardinality ratio used by type inference is intentionally not a
// configuration option.
//
// =============================================================================

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/csv-to-openapi/internal/types"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	Output OutputSettings `yaml:"output"`
	CSV    CSVSettings    `yaml:"csv"`
	XLSX   XLSXSettings   `yaml:"xlsx"`
	Log    LogSettings    `yaml:"log"`
}

// OutputSettings controls where and how the generated document is written.
type OutputSettings struct {
	// Dir is the directory the document is written to.
	// Default: "." (the current working directory)
	Dir string `yaml:"dir"`

	// Format is the serialization format.
	// Valid values: "yaml", "json"
	// Default: "yaml"
	Format string `yaml:"format"`

	// DryRun prints the document to stdout instead of writing a file.
	DryRun bool `yaml:"dry_run"`
}

// CSVSettings contains the settings for parsing delimited text input.
type CSVSettings struct {
	// Delimiter is the field separator.
	// Valid values: ",", ";", "|", "tab" (or "\t")
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// LazyQuotes allows a quote to appear in an unquoted field and a
	// non-doubled quote to appear in a quoted field.
	LazyQuotes bool `yaml:"lazy_quotes"`

	// Strict makes a row with the wrong number of fields a fatal parse
	// error. When false such rows are skipped with a warning.
	Strict bool `yaml:"strict"`
}

// XLSXSettings contains the settings for reading spreadsheet input.
type XLSXSettings struct {
	// Sheet is the worksheet to read. Empty means the first sheet.
	Sheet string `yaml:"sheet"`
}

// LogSettings controls structured logging.
type LogSettings struct {
	// Level is one of "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is "text" or "json".
	// Default: "text"
	Format string `yaml:"format"`
}

// =============================================================================
// LOADING FUNCTIONS
// =============================================================================

// Default returns the configuration used when no file is given.
func Default() *Config {
	var config Config
	applyDefaults(&config)
	return &config
}

// LoadConfig reads the configuration from configPath.
//
// PARAMETERS:
//   - configPath: The path to the YAML configuration file.
//
// RETURNS:
//   - A pointer to the Config struct with defaults applied.
//   - A *types.Error of kind KindConfig if the file cannot be read, parsed
//     or validated.
func LoadConfig(configPath string) (*Config, error) {
	// Read the configuration file.
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, types.NewConfigError(configPath, fmt.Errorf("failed to read config file: %w", err))
	}

	config, err := Parse(data)
	if err != nil {
		return nil, types.NewConfigError(configPath, err)
	}

	return config, nil
}

// Parse decodes YAML configuration data, applies defaults and validates the
// result. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var config Config

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply default values.
	applyDefaults(&config)

	// Validate the configuration.
	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.Output.Dir == "" {
		config.Output.Dir = "."
	}
	if config.Output.Format == "" {
		config.Output.Format = "yaml"
	}
	if config.CSV.Delimiter == "" {
		config.CSV.Delimiter = ","
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.Format == "" {
		config.Log.Format = "text"
	}
}

// Validate checks the enumerated settings. It is exported so the CLI can
// re-check the configuration after applying flag overrides.
func Validate(config *Config) error {
	switch strings.ToLower(config.Output.Format) {
	case "yaml", "yml", "json":
	default:
		return fmt.Errorf("unsupported output format %q (want yaml or json)", config.Output.Format)
	}

	if _, err := config.CSV.Comma(); err != nil {
		return err
	}

	switch strings.ToLower(config.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unsupported log level %q", config.Log.Level)
	}

	switch strings.ToLower(config.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format %q (want text or json)", config.Log.Format)
	}

	return nil
}

// Comma returns the delimiter rune for the configured delimiter name.
func (s CSVSettings) Comma() (rune, error) {
	switch s.Delimiter {
	case "", ",", "comma":
		return ',', nil
	case "\t", "\\t", "tab", "TAB":
		return '\t', nil
	case "|", "pipe", "PIPE":
		return '|', nil
	case ";", "semicolon":
		return ';', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter %q", s.Delimiter)
	}
}
