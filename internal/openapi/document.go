// Package openapi builds the OpenAPI description of a table: one path, one
// GET operation with a query parameter per column, and an example response
// taken from the first row.
package openapi

import (
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/csv-to-openapi/internal/types"
)

// Fixed document values.
const (
	Version            = "3.0.0"
	APIVersion         = "1.0.0"
	StatusOK           = "200"
	ResponseContent    = "application/json"
	ParameterLocation  = "query"
	SuccessDescription = "Successful response"
)

// Document represents the generated OpenAPI 3.0 document.
type Document struct {
	OpenAPI string              `yaml:"openapi" json:"openapi"`
	Info    Info                `yaml:"info" json:"info"`
	Paths   map[string]PathItem `yaml:"paths" json:"paths"`
}

// Info contains API metadata.
type Info struct {
	Title   string `yaml:"title" json:"title"`
	Version string `yaml:"version" json:"version"`
}

// PathItem describes the operations available on a path.
type PathItem struct {
	Get *Operation `yaml:"get,omitempty" json:"get,omitempty"`
}

// Operation describes a single API operation on a path.
type Operation struct {
	Summary    string              `yaml:"summary" json:"summary"`
	Parameters []Parameter         `yaml:"parameters" json:"parameters"`
	Responses  map[string]Response `yaml:"responses" json:"responses"`
}

// Parameter describes a single operation parameter.
type Parameter struct {
	Name   string `yaml:"name" json:"name"`
	In     string `yaml:"in" json:"in"`
	Schema Schema `yaml:"schema" json:"schema"`
}

// Schema is the parameter schema: a type and, for low-cardinality string
// columns, the allowed values.
type Schema struct {
	Type string   `yaml:"type" json:"type"`
	Enum []string `yaml:"enum,omitempty" json:"enum,omitempty"`
}

// Response describes a single response from an API operation.
type Response struct {
	Description string               `yaml:"description" json:"description"`
	Content     map[string]MediaType `yaml:"content" json:"content"`
}

// MediaType carries the example body of a response.
type MediaType struct {
	Example types.Row `yaml:"example" json:"example"`
}

// ItemName derives the resource name from an input path by dropping the
// directory and the final extension: "data/users.csv" -> "users".
// A name that is only an extension (".hidden") is kept whole.
func ItemName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

// Build assembles the document for itemName. Parameters follow the order of
// columns; the example is rows[0], or an empty object when rows is empty.
func Build(itemName string, columns []types.Column, rows []types.Row) *Document {
	parameters := make([]Parameter, len(columns))
	for i, column := range columns {
		parameters[i] = Parameter{
			Name:   column.Name,
			In:     ParameterLocation,
			Schema: Schema{Type: string(column.Type)},
		}
		if column.HasEnum() {
			parameters[i].Schema.Enum = column.Enum
		}
	}

	var example types.Row
	if len(rows) > 0 {
		example = rows[0]
	}

	return &Document{
		OpenAPI: Version,
		Info: Info{
			Title:   "Access " + itemName,
			Version: APIVersion,
		},
		Paths: map[string]PathItem{
			"/" + itemName: {
				Get: &Operation{
					Summary:    "Get all " + itemName + "s",
					Parameters: parameters,
					Responses: map[string]Response{
						StatusOK: {
							Description: SuccessDescription,
							Content: map[string]MediaType{
								ResponseContent: {Example: example},
							},
						},
					},
				},
			},
		},
	}
}

// Operation returns the single GET operation of the document, or nil.
func (d *Document) Operation() *Operation {
	for _, item := range d.Paths {
		return item.Get
	}
	return nil
}
