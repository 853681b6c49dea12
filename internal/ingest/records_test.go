package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"records.json", FormatJSON},
		{"records.JSON", FormatJSON},
		{"records.ndjson", FormatNDJSON},
		{"records.jsonl", FormatNDJSON},
		{"records.txt", FormatLines},
		{"records", FormatLines},
		{"-", FormatLines},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.path))
		})
	}
}

func TestReadRecords(t *testing.T) {
	t.Run("JSONArray", func(t *testing.T) {
		records, err := ReadRecords(strings.NewReader(`["a", "b", "c"]`), FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, []any{"a", "b", "c"}, records)
	})

	t.Run("JSONArrayKeepsNonStrings", func(t *testing.T) {
		// Non-string elements pass through; rejecting them is the batch
		// processor's contract, not the loader's.
		records, err := ReadRecords(strings.NewReader(`["a", 7, "b"]`), FormatJSON)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "a", records[0])
		assert.Equal(t, float64(7), records[1])
	})

	t.Run("JSONInvalid", func(t *testing.T) {
		_, err := ReadRecords(strings.NewReader(`{"not": "an array"}`), FormatJSON)
		assert.Error(t, err)
	})

	t.Run("NDJSON", func(t *testing.T) {
		input := "\"a\"\n\n\"b\"\n42\n"
		records, err := ReadRecords(strings.NewReader(input), FormatNDJSON)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "a", records[0])
		assert.Equal(t, "b", records[1])
		assert.Equal(t, float64(42), records[2])
	})

	t.Run("NDJSONBadLine", func(t *testing.T) {
		_, err := ReadRecords(strings.NewReader("\"ok\"\n{bad\n"), FormatNDJSON)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("Lines", func(t *testing.T) {
		records, err := ReadRecords(strings.NewReader("first\n\nthird\n"), FormatLines)
		require.NoError(t, err)
		// Empty lines are kept; an empty record is a valid record.
		assert.Equal(t, []any{"first", "", "third"}, records)
	})

	t.Run("LinesEmptyInput", func(t *testing.T) {
		records, err := ReadRecords(strings.NewReader(""), FormatLines)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		_, err := ReadRecords(strings.NewReader(""), "csv")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown record format")
	})
}

func TestLoadRecords(t *testing.T) {
	t.Run("FromFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "records.json")
		require.NoError(t, os.WriteFile(path, []byte(`["x", "y"]`), 0o600))

		records, err := LoadRecords(context.Background(), path, FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, []any{"x", "y"}, records)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := LoadRecords(context.Background(), filepath.Join(t.TempDir(), "absent.json"), FormatJSON)
		assert.Error(t, err)
	})
}
