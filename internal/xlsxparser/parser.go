// =============================================================================
// CSV to OpenAPI Generator - XLSX Parser
// =============================================================================
//
// This module reads a worksheet from an XLSX workbook into the same Table
// structure the CSV parser produces, so spreadsheets exported by hand can be
// described without converting them first.
//
// SHEET LAYOUT:
//
//   | Column A | Column B | Column C |
//   |----------|----------|----------|
//   | id       | name     | status   |   <- row 1: header
//   | 1        | alice    | active   |   <- row 2..n: data
//
// Cells are read as their formatted text. Spreadsheets do not store trailing
// blank cells, so a row shorter than the header is padded with empty strings.
// A row longer than the header is malformed and follows the same skip/strict
// policy as CSV input.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/ginjaninja78/csv-to-openapi/internal/config"
	"github.com/ginjaninja78/csv-to-openapi/internal/csvparser"
	"github.com/ginjaninja78/csv-to-openapi/internal/types"
	"github.com/xuri/excelize/v2"
)

// Parse reads a worksheet from an XLSX file and returns the parsed table.
//
// PARAMETERS:
//   - filePath: The path to the XLSX file.
//   - settings: Selects the worksheet; empty Sheet means the first sheet.
//   - strict: Reject over-long rows instead of skipping them.
//   - logger: Receives a warning for every skipped row.
//
// RETURNS:
//   - The parsed table.
//   - A *types.Error: KindFileNotFound if the file is missing, KindIO if the
//     workbook cannot be opened, KindParse for an unknown or empty sheet.
func Parse(filePath string, settings config.XLSXSettings, strict bool, logger *slog.Logger) (*types.Table, error) {
	if logger == nil {
		logger = slog.Default()
	}

	// Open the XLSX file.
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, types.NewFileError("read", filePath, fmt.Errorf("failed to open workbook: %w", err))
	}
	defer f.Close()

	sheetName, err := selectSheet(f, settings.Sheet)
	if err != nil {
		return nil, types.NewParseError(filePath, 0, err)
	}

	// Get all rows from the sheet.
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, types.NewFileError("read", filePath, fmt.Errorf("failed to read rows: %w", err))
	}

	if len(rows) == 0 {
		return nil, types.NewParseError(filePath, 0, fmt.Errorf("sheet %q is empty: no header row", sheetName))
	}

	csvparser.ToValidUTF8(rows[0])
	header := csvparser.CleanHeaders(rows[0])

	table := &types.Table{
		Source: filePath,
		Header: header,
		Rows:   []types.Row{},
	}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		rowNumber := i + 1

		// Skip rows whose cells are all empty. Whitespace counts as a value.
		if csvparser.IsRowEmpty(row) {
			continue
		}

		if len(row) > len(header) {
			mismatch := fmt.Errorf("row has %d cells, header has %d", len(row), len(header))
			if strict {
				return nil, types.NewParseError(filePath, rowNumber, mismatch)
			}
			logger.Warn("skipping malformed row",
				"source", filePath,
				"sheet", sheetName,
				"line", rowNumber,
				"fields", len(row),
				"expected", len(header),
			)
			table.Skipped = append(table.Skipped, types.SkippedRow{Line: rowNumber, Fields: len(row)})
			continue
		}

		if csvparser.ToValidUTF8(row) {
			logger.Warn("replaced invalid UTF-8", "source", filePath, "sheet", sheetName, "line", rowNumber)
		}

		// NewRow pads missing trailing cells with empty strings.
		table.Rows = append(table.Rows, types.NewRow(header, row))
	}

	return table, nil
}

// selectSheet returns the requested sheet, or the first sheet when name is
// empty.
func selectSheet(f *excelize.File, name string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}

	if name == "" {
		return sheets[0], nil
	}

	if !slices.Contains(sheets, name) {
		return "", fmt.Errorf("sheet %q not found (available: %v)", name, sheets)
	}

	return name, nil
}
