package docwriter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ginjaninja78/csv-to-openapi/internal/openapi"
	"github.com/ginjaninja78/csv-to-openapi/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleDocument() *openapi.Document {
	header := []string{"status", "id"}
	rows := []types.Row{types.NewRow(header, []string{"active", "1"})}
	columns := []types.Column{
		{Name: "status", Type: types.TypeString, Enum: []string{"active", "true"}},
		{Name: "id", Type: types.TypeInteger},
	}
	return openapi.Build("users", columns, rows)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatYAML, "yaml": FormatYAML, "YML": FormatYAML, "json": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestRender_YAML(t *testing.T) {
	out, err := Render(sampleDocument(), FormatYAML)
	require.NoError(t, err)
	text := string(out)

	assert.True(t, strings.HasPrefix(text, "openapi: 3.0.0\ninfo:\n  title: Access users\n  version: 1.0.0\npaths:\n"), text)
	assert.Contains(t, text, "/users:")
	assert.Contains(t, text, "summary: Get all userss")
	assert.Contains(t, text, "description: Successful response")
	assert.Contains(t, text, "application/json:")

	// Example keys keep header order and values stay strings.
	example := text[strings.Index(text, "example:"):]
	assert.Less(t, strings.Index(example, "status:"), strings.Index(example, "id:"))
	assert.Contains(t, example, `id: "1"`)

	var decoded struct {
		Paths map[string]struct {
			Get struct {
				Parameters []struct {
					Name   string `yaml:"name"`
					In     string `yaml:"in"`
					Schema struct {
						Type string   `yaml:"type"`
						Enum []string `yaml:"enum"`
					} `yaml:"schema"`
				} `yaml:"parameters"`
				Responses map[string]struct {
					Content map[string]struct {
						Example map[string]string `yaml:"example"`
					} `yaml:"content"`
				} `yaml:"responses"`
			} `yaml:"get"`
		} `yaml:"paths"`
	}
	require.NoError(t, yaml.Unmarshal(out, &decoded))

	get := decoded.Paths["/users"].Get
	require.Len(t, get.Parameters, 2)
	assert.Equal(t, "status", get.Parameters[0].Name)
	assert.Equal(t, "query", get.Parameters[0].In)
	assert.Equal(t, []string{"active", "true"}, get.Parameters[0].Schema.Enum)
	assert.Equal(t, "integer", get.Parameters[1].Schema.Type)
	assert.Nil(t, get.Parameters[1].Schema.Enum)
	assert.Equal(t, map[string]string{"status": "active", "id": "1"},
		get.Responses["200"].Content["application/json"].Example)
}

func TestRender_YAMLEmptyExample(t *testing.T) {
	doc := openapi.Build("empty", []types.Column{{Name: "id", Type: types.TypeString}}, nil)

	out, err := Render(doc, FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(out), "example: {}")
}

func TestRender_JSON(t *testing.T) {
	out, err := Render(sampleDocument(), FormatJSON)
	require.NoError(t, err)
	text := string(out)

	assert.True(t, strings.HasSuffix(text, "}\n"))
	assert.Less(t, strings.Index(text, `"status": "active"`), strings.Index(text, `"id": "1"`))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "3.0.0", decoded["openapi"])
}

func TestRender_Deterministic(t *testing.T) {
	for _, format := range []Format{FormatYAML, FormatJSON} {
		a, err := Render(sampleDocument(), format)
		require.NoError(t, err)
		b, err := Render(sampleDocument(), format)
		require.NoError(t, err)
		assert.Equal(t, a, b, format)
	}
}

func TestWrite_OverwritesAndIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "users.yaml")
	require.NoError(t, os.WriteFile(existing, []byte("stale"), 0644))

	path, err := Write(sampleDocument(), dir, "users", FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, existing, path)

	first, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, "stale", string(first))

	_, err = Write(sampleDocument(), dir, "users", FormatYAML)
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestWrite_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	path, err := Write(sampleDocument(), dir, "users", FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "users.json"), path)
	assert.FileExists(t, path)
}

func TestWrite_Unwritable(t *testing.T) {
	dir := t.TempDir()

	// The destination is a directory.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "users.yaml"), 0755))
	_, err := Write(sampleDocument(), dir, "users", FormatYAML)
	require.Error(t, err)
	assert.Equal(t, types.KindIO, types.KindOf(err))

	// The output directory is a regular file.
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	_, err = Write(sampleDocument(), filepath.Join(file, "sub"), "users", FormatYAML)
	require.Error(t, err)
	assert.Equal(t, types.ExitIO, types.ExitCode(err))
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "users.yaml", OutputPath("", "users", FormatYAML))
	assert.Equal(t, filepath.Join("out", "users.json"), OutputPath("out", "users", FormatJSON))
}
