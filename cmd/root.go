// =============================================================================
// CSV to OpenAPI Generator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command
// converts the single input file named by its positional argument.
//
// COBRA CLI STRUCTURE:
//   rootCmd (csv2openapi <file>)
//   └── versionCmd (csv2openapi version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Loading the optional configuration file (--config)
//   2. Applying flag overrides on top of it
//   3. Setting up logging on stderr
//
// EXIT CODES:
//   0  success, or no input file given (usage is printed)
//   1  bad flags, too many arguments, unclassified errors
//   2  input file not found
//   3  input or output I/O failure
//   4  malformed input
//   5  unusable configuration
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/ginjaninja78/csv-to-openapi/internal/config"
	"github.com/ginjaninja78/csv-to-openapi/internal/converter"
	"github.com/ginjaninja78/csv-to-openapi/internal/logging"
	"github.com/ginjaninja78/csv-to-openapi/internal/types"
	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND OPTIONS
// =============================================================================

// options holds the values bound to the root command's flags.
type options struct {
	// cfgFile is the path to the optional configuration file.
	cfgFile string

	// verbose forces debug logging.
	verbose bool

	format    string
	outputDir string
	delimiter string
	sheet     string
	strict    bool
	dryRun    bool
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// NewRootCmd builds the csv2openapi command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "csv2openapi [flags] <path-to-input-file>",
		Short: "CSV to OpenAPI Generator - Describe a tabular file as a read-only REST API",

		Long: `csv2openapi reads a CSV (or XLSX) file, infers the type of every column and
writes an OpenAPI 3.0 document describing a read-only REST resource for it.

For an input named users.csv the document exposes GET /users, with one query
parameter per column and the first data row as the response example. The
document is written to users.yaml in the output directory.

Example Usage:
  csv2openapi users.csv                      # Write ./users.yaml
  csv2openapi --format json users.csv        # Write ./users.json
  csv2openapi --output-dir specs users.csv   # Write specs/users.yaml
  csv2openapi --dry-run users.csv            # Print the document instead`,

		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,

		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// A missing input file is not an error.
				fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
				return nil
			}
			return runConvert(cmd, opts, args[0])
		},
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return types.NewUsageError(err)
	})

	// ==========================================================================
	// FLAGS
	// ==========================================================================

	flags := rootCmd.Flags()
	flags.StringVar(&opts.cfgFile, "config", "", "Path to an optional YAML configuration file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output for debugging")
	flags.StringVar(&opts.format, "format", "", "Output format: yaml or json (default yaml)")
	flags.StringVar(&opts.outputDir, "output-dir", "", "Directory the document is written to (default .)")
	flags.StringVar(&opts.delimiter, "delimiter", "", "CSV field delimiter: , ; | or tab (default ,)")
	flags.StringVar(&opts.sheet, "sheet", "", "Worksheet to read from an XLSX input (default first sheet)")
	flags.BoolVar(&opts.strict, "strict", false, "Fail on rows with the wrong number of fields instead of skipping them")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Print the document to stdout instead of writing a file")

	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command and exits with the code matching the error.
// This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(types.ExitCode(err))
	}
}

// =============================================================================
// CONVERSION
// =============================================================================

// runConvert loads the configuration, applies flag overrides and converts
// inputPath.
func runConvert(cmd *cobra.Command, opts *options, inputPath string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if opts.verbose {
		level = "debug"
	}
	logger := logging.ForRun(logging.Setup(cmd.ErrOrStderr(), level, cfg.Log.Format), inputPath)

	conv := converter.New(inputPath, cfg, logger)
	conv.SetOutput(cmd.OutOrStdout())

	result := conv.Run()
	if result.Error != nil {
		logger.Error("conversion failed", "error", result.Error)
		return result.Error
	}

	if !cfg.Output.DryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "OpenAPI specification generated and saved as %s\n", result.OutputFile)
	}
	return nil
}

// loadConfig returns the configuration file's settings (or the defaults when
// no file is given) with explicitly set flags applied on top.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.cfgFile != "" {
		loaded, err := config.LoadConfig(opts.cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = opts.format
	}
	if flags.Changed("output-dir") {
		cfg.Output.Dir = opts.outputDir
	}
	if flags.Changed("dry-run") {
		cfg.Output.DryRun = opts.dryRun
	}
	if flags.Changed("delimiter") {
		cfg.CSV.Delimiter = opts.delimiter
	}
	if flags.Changed("strict") {
		cfg.CSV.Strict = opts.strict
	}
	if flags.Changed("sheet") {
		cfg.XLSX.Sheet = opts.sheet
	}

	if err := config.Validate(cfg); err != nil {
		return nil, types.NewUsageError(err)
	}
	if cfg.Output.Dir == "" {
		return nil, types.NewUsageError(errors.New("output directory must not be empty"))
	}

	return cfg, nil
}
