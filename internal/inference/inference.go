// =============================================================================
// CSV to OpenAPI Generator - Type Inference
// =============================================================================
//
// This module assigns a declared type to every column of a table by scanning
// its raw values:
//
//   1. every value is an integer literal  -> integer
//   2. every value is a number literal    -> number
//   3. otherwise                          -> string, plus an enum of the
//                                            distinct values when the column
//                                            has low cardinality
//
// LITERAL GRAMMAR:
//
//   sign     = "+" | "-"
//   digits   = DIGIT { DIGIT }                 ; ASCII 0-9
//   integer  = [ sign ] digits
//   mantissa = digits [ "." [ digits ] ] | "." digits
//   exponent = ( "e" | "E" ) [ sign ] digits
//   number   = [ sign ] mantissa [ exponent ]
//
// The whole value must match; surrounding whitespace, "Inf", "NaN", hex,
// underscores and thousands separators are not numbers. Leading zeros are
// allowed. Every integer is also a number.
//
// =============================================================================

package inference

import (
	"regexp"

	"github.com/ginjaninja78/csv-to-openapi/internal/types"
)

// EnumCardinalityRatio is the low-cardinality threshold for string columns:
// a column gets an enum when its distinct value count is strictly less than
// this fraction of the row count.
const EnumCardinalityRatio = 0.25

var (
	integerPattern = regexp.MustCompile(`^[+-]?[0-9]+$`)
	numberPattern  = regexp.MustCompile(`^[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)
)

// IsInteger reports whether s is an integer literal.
func IsInteger(s string) bool {
	return integerPattern.MatchString(s)
}

// IsNumber reports whether s is a number literal.
func IsNumber(s string) bool {
	return numberPattern.MatchString(s)
}

// Infer returns one Column per header entry, in header order.
func Infer(table *types.Table) []types.Column {
	columns := make([]types.Column, len(table.Header))
	for i, name := range table.Header {
		columns[i] = InferColumn(name, table.Column(name))
	}
	return columns
}

// InferColumn classifies a single column from its values (one per row).
//
// With no values every check would pass vacuously, so an empty column is a
// string without an enum.
func InferColumn(name string, values []string) types.Column {
	column := types.Column{Name: name, Type: types.TypeString}

	if len(values) == 0 {
		return column
	}

	switch {
	case all(values, IsInteger):
		column.Type = types.TypeInteger
	case all(values, IsNumber):
		column.Type = types.TypeNumber
	default:
		distinct := Distinct(values)
		if float64(len(distinct)) < EnumCardinalityRatio*float64(len(values)) {
			column.Enum = distinct
		}
	}

	return column
}

// Distinct returns each value once, in first-seen order.
func Distinct(values []string) []string {
	seen := make(map[string]bool)
	unique := []string{}

	for _, value := range values {
		if !seen[value] {
			seen[value] = true
			unique = append(unique, value)
		}
	}

	return unique
}

func all(values []string, pred func(string) bool) bool {
	for _, v := range values {
		if !pred(v) {
			return false
		}
	}
	return true
}
