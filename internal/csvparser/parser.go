// =============================================================================
// CSV to OpenAPI Generator - CSV Parser Module
// =============================================================================
//
// This module parses a delimited text file into a header and an ordered list
// of rows. It handles:
//   - Configurable delimiters (comma, semicolon, pipe, tab)
//   - Quoted fields with embedded delimiters, quotes and newlines
//   - A UTF-8 byte-order mark in front of the header
//   - Blank and duplicate header names
//
// Values are kept exactly as they appear in the file: no trimming and no
// type coercion happens here. The one exception is encoding: byte sequences
// that are not valid UTF-8 (a Latin-1 export, for example) are replaced with
// U+FFFD so every value can be serialized.
//
// MALFORMED ROWS:
//   A row whose field count differs from the header is skipped with a
//   warning, or rejected with a parse error when CSVSettings.Strict is set.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ginjaninja78/csv-to-openapi/internal/config"
	"github.com/ginjaninja78/csv-to-openapi/internal/types"
)

// byteOrderMark is stripped from the first header cell.
const byteOrderMark = "\ufeff"

// replacementChar stands in for bytes that are not valid UTF-8.
const replacementChar = "\ufffd"

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the parsed table.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: The CSV parsing settings.
//   - logger: Receives a warning for every skipped row.
//
// RETURNS:
//   - The parsed table.
//   - A *types.Error: KindFileNotFound or KindIO if the file cannot be
//     read, KindParse if its structure is invalid.
func Parse(filePath string, settings config.CSVSettings, logger *slog.Logger) (*types.Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, types.NewFileError("read", filePath, err)
	}
	defer file.Close()

	return ParseReader(bufio.NewReader(file), filePath, settings, logger)
}

// ParseReader parses CSV data from r. source names the input in errors and
// log entries.
func ParseReader(r io.Reader, source string, settings config.CSVSettings, logger *slog.Logger) (*types.Table, error) {
	if logger == nil {
		logger = slog.Default()
	}

	csvReader := csv.NewReader(r)
	if err := configureReader(csvReader, settings); err != nil {
		return nil, types.NewParseError(source, 0, err)
	}

	// Header line.
	record, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, types.NewParseError(source, 0, fmt.Errorf("file is empty: no header line"))
	}
	if err != nil {
		return nil, readError(source, err)
	}

	if len(record) > 0 {
		record[0] = strings.TrimPrefix(record[0], byteOrderMark)
	}
	if ToValidUTF8(record) {
		line, _ := csvReader.FieldPos(0)
		logger.Warn("replaced invalid UTF-8 in header", "source", source, "line", line)
	}
	header := CleanHeaders(record)

	table := &types.Table{
		Source: source,
		Header: header,
		Rows:   []types.Row{},
	}

	// Data lines.
	for {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, readError(source, err)
		}

		line, _ := csvReader.FieldPos(0)

		if len(record) != len(header) {
			mismatch := fmt.Errorf("row has %d fields, header has %d", len(record), len(header))
			if settings.Strict {
				return nil, types.NewParseError(source, line, mismatch)
			}
			logger.Warn("skipping malformed row",
				"source", source,
				"line", line,
				"fields", len(record),
				"expected", len(header),
			)
			table.Skipped = append(table.Skipped, types.SkippedRow{Line: line, Fields: len(record)})
			continue
		}

		if ToValidUTF8(record) {
			logger.Warn("replaced invalid UTF-8", "source", source, "line", line)
		}

		table.Rows = append(table.Rows, types.NewRow(header, record))
	}

	return table, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) error {
	comma, err := settings.Comma()
	if err != nil {
		return err
	}
	reader.Comma = comma

	// Field counts are checked against the header by the caller so that
	// the skip/strict policy applies.
	reader.FieldsPerRecord = -1

	reader.LazyQuotes = settings.LazyQuotes

	// Values are raw; leading whitespace is significant.
	reader.TrimLeadingSpace = false

	return nil
}

// readError converts a csv.Reader failure into a classified error.
func readError(source string, err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return types.NewParseError(source, parseErr.StartLine, parseErr.Err)
	}
	return types.NewFileError("read", source, err)
}

// =============================================================================
// HEADER CLEANING
// =============================================================================

// CleanHeaders cleans and normalizes header values.
//
// CLEANING OPERATIONS:
//   - Trim surrounding whitespace
//   - Replace an empty header with "Column_{n}" (1-based position)
//   - Rename a repeated header to "{name}_{k}" with the smallest unused k >= 2
//
// The result always has the same length as the input and contains unique
// names.
func CleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	used := make(map[string]bool, len(headers))

	// Reserve every non-empty name first so a generated name never collides
	// with one that appears later in the header.
	for _, header := range headers {
		if name := strings.TrimSpace(header); name != "" {
			used[name] = false
		}
	}

	for i, header := range headers {
		name := strings.TrimSpace(header)
		generated := false
		if name == "" {
			name = "Column_" + strconv.Itoa(i+1)
			generated = true
		}

		taken, exists := used[name]
		if taken || (generated && exists) {
			name = uniqueName(name, used)
		}

		used[name] = true
		cleaned[i] = name
	}

	return cleaned
}

// uniqueName returns base_k for the smallest k >= 2 not present in used.
func uniqueName(base string, used map[string]bool) string {
	for k := 2; ; k++ {
		candidate := base + "_" + strconv.Itoa(k)
		if _, exists := used[candidate]; !exists {
			return candidate
		}
	}
}

// IsRowEmpty checks if every cell of a row is the empty string. Whitespace
// is a value.
func IsRowEmpty(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

// ToValidUTF8 replaces invalid UTF-8 in each field with U+FFFD, in place,
// and reports whether anything was replaced.
func ToValidUTF8(record []string) bool {
	replaced := false
	for i, field := range record {
		if !utf8.ValidString(field) {
			record[i] = strings.ToValidUTF8(field, replacementChar)
			replaced = true
		}
	}
	return replaced
}
