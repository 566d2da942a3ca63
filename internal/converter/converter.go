// =============================================================================
// CSV to OpenAPI Generator - Converter Module
// =============================================================================
//
// This module contains the conversion pipeline for a single input file.
//
// CONVERSION PIPELINE:
//   1. Read the input file into a table (CSV, or XLSX by extension)
//   2. Infer a type, and optionally an enum, for every column
//   3. Build the OpenAPI document
//   4. Write the document (or print it in dry-run mode)
//
// Everything runs sequentially on the calling goroutine; the table and the
// document live only for the duration of Run.
//
// =============================================================================

package converter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ginjaninja78/csv-to-openapi/internal/config"
	"github.com/ginjaninja78/csv-to-openapi/internal/csvparser"
	"github.com/ginjaninja78/csv-to-openapi/internal/docwriter"
	"github.com/ginjaninja78/csv-to-openapi/internal/inference"
	"github.com/ginjaninja78/csv-to-openapi/internal/openapi"
	"github.com/ginjaninja78/csv-to-openapi/internal/types"
	"github.com/ginjaninja78/csv-to-openapi/internal/xlsxparser"
	"github.com/ginjaninja78/csv-to-openapi/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of converting a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// ItemName is the resource name derived from FilePath.
	ItemName string

	// OutputFile is the path to the generated document.
	// This is empty if processing failed or in dry-run mode.
	OutputFile string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// RowsRead is the number of data rows used for inference.
	RowsRead int

	// RowsSkipped is the number of malformed rows dropped by the reader.
	RowsSkipped int

	// Columns is the number of columns (and generated parameters).
	Columns int

	IntegerColumns int
	NumberColumns  int
	StringColumns  int

	// EnumColumns is the number of string columns that carry an enum.
	EnumColumns int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter handles the conversion of a single input file.
type Converter struct {
	// inputPath is the path to the input file.
	inputPath string

	// config is the application configuration.
	config *config.Config

	// logger receives progress and warnings.
	logger *slog.Logger

	// stdout receives the rendered document in dry-run mode.
	stdout io.Writer
}

// New creates a new Converter instance. A nil cfg uses config.Default(); a
// nil logger uses slog.Default().
func New(inputPath string, cfg *config.Config, logger *slog.Logger) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{
		inputPath: inputPath,
		config:    cfg,
		logger:    logger,
		stdout:    os.Stdout,
	}
}

// SetOutput sets where the document is printed in dry-run mode.
func (c *Converter) SetOutput(w io.Writer) {
	c.stdout = w
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline for the file.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{
		FilePath: c.inputPath,
		ItemName: openapi.ItemName(c.inputPath),
	}

	c.logger.Info("processing file")

	format, err := docwriter.ParseFormat(c.config.Output.Format)
	if err != nil {
		result.Error = types.NewConfigError("", err)
		return result
	}

	// =========================================================================
	// STEP 1: READ INPUT
	// =========================================================================

	if size, err := utils.GetFileSize(c.inputPath); err == nil {
		c.logger.Debug("reading input", "bytes", size)
	}

	table, err := ReadTable(c.inputPath, c.config, c.logger)
	if err != nil {
		result.Error = fmt.Errorf("failed to read input: %w", err)
		return result
	}

	result.Stats.RowsRead = len(table.Rows)
	result.Stats.RowsSkipped = len(table.Skipped)
	c.logger.Debug("parsed input",
		"columns", len(table.Header),
		"rows", len(table.Rows),
		"skipped", len(table.Skipped),
	)

	// =========================================================================
	// STEP 2: INFER COLUMN TYPES
	// =========================================================================

	columns := inference.Infer(table)
	result.Stats.Columns = len(columns)
	for _, column := range columns {
		switch column.Type {
		case types.TypeInteger:
			result.Stats.IntegerColumns++
		case types.TypeNumber:
			result.Stats.NumberColumns++
		default:
			result.Stats.StringColumns++
		}
		if column.HasEnum() {
			result.Stats.EnumColumns++
		}
		c.logger.Debug("inferred column",
			"column", column.Name,
			"type", column.Type,
			"enum_values", len(column.Enum),
		)
	}

	// =========================================================================
	// STEP 3: BUILD DOCUMENT
	// =========================================================================

	doc := openapi.Build(result.ItemName, columns, table.Rows)

	// =========================================================================
	// STEP 4: WRITE OUTPUT
	// =========================================================================

	if c.config.Output.DryRun {
		data, err := docwriter.Render(doc, format)
		if err != nil {
			result.Error = fmt.Errorf("failed to render document: %w", err)
			return result
		}
		if _, err := c.stdout.Write(data); err != nil {
			result.Error = types.NewIOError("write", "stdout", err)
			return result
		}
	} else {
		if target := docwriter.OutputPath(c.config.Output.Dir, result.ItemName, format); utils.FileExists(target) {
			c.logger.Info("replacing existing output", "output", target)
		}

		outputPath, err := docwriter.Write(doc, c.config.Output.Dir, result.ItemName, format)
		if err != nil {
			result.Error = fmt.Errorf("failed to write output: %w", err)
			return result
		}
		result.OutputFile = outputPath
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	c.logger.Info("conversion complete",
		"output", result.OutputFile,
		"rows", result.Stats.RowsRead,
		"skipped", result.Stats.RowsSkipped,
		"columns", result.Stats.Columns,
		"enum_columns", result.Stats.EnumColumns,
		"elapsed", result.Stats.ProcessingTime,
	)

	return result
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// ReadTable reads the input file with the parser matching its extension:
// ".xlsx" and ".xlsm" are read as workbooks, anything else as delimited text.
func ReadTable(path string, cfg *config.Config, logger *slog.Logger) (*types.Table, error) {
	if IsWorkbook(path) {
		return xlsxparser.Parse(path, cfg.XLSX, cfg.CSV.Strict, logger)
	}
	return csvparser.Parse(path, cfg.CSV, logger)
}

// IsWorkbook reports whether path names an XLSX workbook.
func IsWorkbook(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	default:
		return false
	}
}
