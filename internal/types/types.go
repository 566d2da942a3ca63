// =============================================================================
// CSV to OpenAPI Generator - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - csvparser / xlsxparser (Table, Row)
//   - inference (Column)
//   - openapi (Column, Row)
//   - converter and cmd (errors and exit codes)
//
// =============================================================================

package types

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// COLUMN TYPES
// =============================================================================

// ColumnType is the declared type of a column, named after the matching
// OpenAPI schema type.
type ColumnType string

const (
	TypeInteger ColumnType = "integer"
	TypeNumber  ColumnType = "number"
	TypeString  ColumnType = "string"
)

// Column is a named field across all rows with its inferred type.
type Column struct {
	// Name is the (cleaned) header name. Unique within a table.
	Name string

	// Type is the declared type.
	Type ColumnType

	// Enum holds the distinct raw values of a low-cardinality string column
	// in first-seen order. Nil when the column carries no enum.
	Enum []string
}

// HasEnum reports whether the column carries an enumerated value set.
func (c Column) HasEnum() bool {
	return c.Type == TypeString && c.Enum != nil
}

// =============================================================================
// TABLE AND ROW
// =============================================================================

// Table is the parsed content of a tabular input file.
type Table struct {
	// Source is the path of the file the table was read from.
	Source string

	// Header contains the column names in input order.
	Header []string

	// Rows contains the data rows in input order.
	Rows []Row

	// Skipped lists the malformed rows dropped while reading.
	Skipped []SkippedRow
}

// SkippedRow records a data row that was dropped because its field count did
// not match the header.
type SkippedRow struct {
	// Line is the 1-based line (CSV) or row (XLSX) number in the source.
	Line int

	// Fields is the number of fields found on the row.
	Fields int
}

// Column returns every value of the named column, one per row.
// Missing values are returned as empty strings.
func (t *Table) Column(name string) []string {
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row.Get(name)
	}
	return values
}

// Row is a single data record. The header slice is shared with the owning
// Table, so the key order is fixed once and is the same for every row.
type Row struct {
	header []string
	values []string
}

// NewRow builds a row over header. values must have the same length as
// header; missing trailing values are filled with empty strings and extra
// values are dropped.
func NewRow(header []string, values []string) Row {
	v := make([]string, len(header))
	copy(v, values)
	return Row{header: header, values: v}
}

// Get returns the raw value for the named column, or "" if the row has no
// such column.
func (r Row) Get(name string) string {
	for i, h := range r.header {
		if h == name {
			return r.values[i]
		}
	}
	return ""
}

// Keys returns the column names in header order.
func (r Row) Keys() []string {
	return r.header
}

// Len returns the number of fields in the row.
func (r Row) Len() int {
	return len(r.header)
}

// yaml11Bools are the plain scalars a YAML 1.1 parser reads as booleans.
var yaml11Bools = map[string]bool{
	"y": true, "Y": true, "yes": true, "Yes": true, "YES": true,
	"n": true, "N": true, "no": true, "No": true, "NO": true,
	"true": true, "True": true, "TRUE": true,
	"false": true, "False": true, "FALSE": true,
	"on": true, "On": true, "ON": true,
	"off": true, "Off": true, "OFF": true,
}

// MarshalYAML renders the row as a mapping whose keys follow header order.
// Values are always double-quoted strings. Keys are quoted when YAML 1.1 or
// 1.2 would resolve them to another type.
func (r Row) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i, h := range r.header {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: h}
		if yaml11Bools[h] {
			key.Style = yaml.DoubleQuotedStyle
		}
		node.Content = append(node.Content, key, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Style: yaml.DoubleQuotedStyle,
			Value: r.values[i],
		})
	}
	return node, nil
}

// MarshalJSON renders the row as an object whose keys follow header order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, h := range r.header {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(h)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
