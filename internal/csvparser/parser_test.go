package csvparser

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ginjaninja78/csv-to-openapi/internal/config"
	"github.com/ginjaninja78/csv-to-openapi/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseString(t *testing.T, data string, settings config.CSVSettings) (*types.Table, error) {
	t.Helper()
	return ParseReader(strings.NewReader(data), "test.csv", settings, discardLogger())
}

func TestParseReader_Basic(t *testing.T) {
	table, err := parseString(t, "id,status\n1,active\n2,inactive\n", config.CSVSettings{})
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "status"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "1", table.Rows[0].Get("id"))
	assert.Equal(t, "inactive", table.Rows[1].Get("status"))
	assert.Empty(t, table.Skipped)
}

func TestParseReader_QuotedFields(t *testing.T) {
	data := "name,note\n\"Smith, J\",\"line one\nline two\"\n\"O\"\"Brien\",plain\n"

	table, err := parseString(t, data, config.CSVSettings{})
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Smith, J", table.Rows[0].Get("name"))
	assert.Equal(t, "line one\nline two", table.Rows[0].Get("note"))
	assert.Equal(t, "O\"Brien", table.Rows[1].Get("name"))
}

func TestParseReader_ValuesAreRaw(t *testing.T) {
	table, err := parseString(t, "a,b\n 1 ,x \n", config.CSVSettings{})
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, " 1 ", table.Rows[0].Get("a"))
	assert.Equal(t, "x ", table.Rows[0].Get("b"))
}

func TestParseReader_HeaderOnly(t *testing.T) {
	table, err := parseString(t, "id,status\n", config.CSVSettings{})
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "status"}, table.Header)
	assert.Empty(t, table.Rows)
}

func TestParseReader_EmptyFile(t *testing.T) {
	_, err := parseString(t, "", config.CSVSettings{})
	require.Error(t, err)
	assert.Equal(t, types.KindParse, types.KindOf(err))
}

func TestParseReader_StripsByteOrderMark(t *testing.T) {
	table, err := parseString(t, "\ufeffid,name\n1,a\n", config.CSVSettings{})
	require.NoError(t, err)

	assert.Equal(t, "id", table.Header[0])
	assert.Equal(t, "1", table.Rows[0].Get("id"))
}

func TestParseReader_Delimiters(t *testing.T) {
	table, err := parseString(t, "a;b\n1;2\n", config.CSVSettings{Delimiter: ";"})
	require.NoError(t, err)
	assert.Equal(t, "2", table.Rows[0].Get("b"))

	table, err = parseString(t, "a\tb\n1\t2\n", config.CSVSettings{Delimiter: "tab"})
	require.NoError(t, err)
	assert.Equal(t, "2", table.Rows[0].Get("b"))

	_, err = parseString(t, "a\n", config.CSVSettings{Delimiter: "#"})
	assert.Error(t, err)
}

func TestParseReader_SkipsMalformedRows(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	data := "id,status\n1,active\n2\n3,active,extra\n4,inactive\n"
	table, err := ParseReader(strings.NewReader(data), "test.csv", config.CSVSettings{}, logger)
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "1", table.Rows[0].Get("id"))
	assert.Equal(t, "4", table.Rows[1].Get("id"))

	assert.Equal(t, []types.SkippedRow{{Line: 3, Fields: 1}, {Line: 4, Fields: 3}}, table.Skipped)
	assert.Contains(t, logs.String(), "skipping malformed row")
	assert.Contains(t, logs.String(), "line=3")
}

func TestParseReader_StrictRejectsMalformedRows(t *testing.T) {
	_, err := parseString(t, "id,status\n1,active\n2\n", config.CSVSettings{Strict: true})
	require.Error(t, err)

	var e *types.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, types.KindParse, e.Kind)
	assert.Equal(t, 3, e.Line)
}

func TestParseReader_SyntaxError(t *testing.T) {
	_, err := parseString(t, "a,b\n1,x\"y\n", config.CSVSettings{})
	require.Error(t, err)
	assert.Equal(t, types.ExitParse, types.ExitCode(err))

	table, err := parseString(t, "a,b\n1,x\"y\n", config.CSVSettings{LazyQuotes: true})
	require.NoError(t, err)
	assert.Equal(t, "x\"y", table.Rows[0].Get("b"))
}

func TestParse_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.csv")
	require.NoError(t, os.WriteFile(path, []byte("id\n1\n"), 0644))

	table, err := Parse(path, config.CSVSettings{}, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, path, table.Source)
	assert.Len(t, table.Rows, 1)
}

func TestParse_MissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.csv"), config.CSVSettings{}, discardLogger())
	require.Error(t, err)
	assert.Equal(t, types.KindFileNotFound, types.KindOf(err))
	assert.Equal(t, types.ExitFileNotFound, types.ExitCode(err))
}

func TestCleanHeaders(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"unchanged", []string{"id", "name"}, []string{"id", "name"}},
		{"trimmed", []string{" id ", "name\t"}, []string{"id", "name"}},
		{"blank", []string{"id", "", " "}, []string{"id", "Column_2", "Column_3"}},
		{"duplicates", []string{"a", "a", "a"}, []string{"a", "a_2", "a_3"}},
		{"suffix taken later", []string{"a", "a", "a_2"}, []string{"a", "a_3", "a_2"}},
		{"generated collides", []string{"", "Column_1"}, []string{"Column_1_2", "Column_1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanHeaders(tt.in))
		})
	}
}

func TestIsRowEmpty(t *testing.T) {
	assert.True(t, IsRowEmpty(nil))
	assert.True(t, IsRowEmpty([]string{"", ""}))
	assert.False(t, IsRowEmpty([]string{"", "  "}))
	assert.False(t, IsRowEmpty([]string{"", "x"}))
}

func TestParseReader_WhitespaceRowIsKept(t *testing.T) {
	table, err := parseString(t, "a,b\n , \n1,2\n", config.CSVSettings{})
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, " ", table.Rows[0].Get("a"))
}

func TestParseReader_ReplacesInvalidUTF8(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	data := "item,caf\xe9\nM\xfcnchen,1\ntea,2\n"
	table, err := ParseReader(strings.NewReader(data), "test.csv", config.CSVSettings{}, logger)
	require.NoError(t, err)

	assert.Equal(t, []string{"item", "caf\ufffd"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "M\ufffdnchen", table.Rows[0].Get("item"))
	assert.Equal(t, "tea", table.Rows[1].Get("item"))
	assert.Contains(t, logs.String(), "replaced invalid UTF-8")
	assert.Contains(t, logs.String(), "line=2")
}

func TestToValidUTF8(t *testing.T) {
	record := []string{"ok", "bad\xff", "\xc3"}

	assert.True(t, ToValidUTF8(record))
	assert.Equal(t, []string{"ok", "bad\ufffd", "\ufffd"}, record)
	assert.False(t, ToValidUTF8([]string{"caf\u00e9", ""}))
}
