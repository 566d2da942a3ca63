// =============================================================================
// CSV to OpenAPI Generator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the csv2openapi CLI application. It
// delegates command execution to the cmd package.
//
// USAGE:
//   csv2openapi <file>      - Generate {name}.yaml from a CSV or XLSX file
//   csv2openapi version     - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Readers, type inference, document building and writing
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/csv-to-openapi/cmd"
)

func main() {
	cmd.Execute()
}
