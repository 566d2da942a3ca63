// =============================================================================
// CSV to OpenAPI Generator - Document Writer
// =============================================================================
//
// This module renders the generated OpenAPI document and writes it next to
// the invocation directory (or the configured output directory):
//
//   users.csv  ->  ./users.yaml   (format: yaml, the default)
//   users.csv  ->  ./users.json   (format: json)
//
// Rendering is deterministic: the same document always produces the same
// bytes. An existing output file is overwritten without confirmation.
//
// =============================================================================

package docwriter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/csv-to-openapi/internal/openapi"
	"github.com/ginjaninja78/csv-to-openapi/internal/types"
	"github.com/ginjaninja78/csv-to-openapi/pkg/utils"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// OUTPUT FORMATS
// =============================================================================

// Format is an output serialization.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat converts a configuration value into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", s)
	}
}

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string {
	if f == FormatJSON {
		return "json"
	}
	return "yaml"
}

// =============================================================================
// RENDERING
// =============================================================================

// Render serializes the document.
func Render(doc *openapi.Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return renderJSON(doc)
	case FormatYAML, "":
		return renderYAML(doc)
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

func renderYAML(doc *openapi.Document) ([]byte, error) {
	var buffer bytes.Buffer

	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(2)

	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}

	return buffer.Bytes(), nil
}

func renderJSON(doc *openapi.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// =============================================================================
// WRITING
// =============================================================================

// OutputPath returns the file the document for itemName is written to.
func OutputPath(dir, itemName string, format Format) string {
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, itemName+"."+format.Extension())
}

// Write renders the document and writes it to OutputPath(dir, itemName,
// format), creating dir if needed and replacing any existing file.
//
// RETURNS:
//   - The path of the written file.
//   - A *types.Error of kind KindIO if the file cannot be written.
func Write(doc *openapi.Document, dir, itemName string, format Format) (string, error) {
	data, err := Render(doc, format)
	if err != nil {
		return "", err
	}

	outputPath := OutputPath(dir, itemName, format)

	if err := utils.EnsureDir(filepath.Dir(outputPath)); err != nil {
		return "", types.NewIOError("write", outputPath, err)
	}

	if err := utils.WriteFileAtomic(outputPath, data, 0644); err != nil {
		return "", types.NewIOError("write", outputPath, fmt.Errorf("failed to write file: %w", err))
	}

	return outputPath, nil
}
