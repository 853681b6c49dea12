// Package ingest loads record documents for batching.
//
// Records arrive as JSON documents (an array or NDJSON stream) or as plain
// text lines. JSON elements are deliberately left dynamically typed: a
// document may contain non-string values, and deciding what to do with them
// belongs to the batch processor's input contract, not to loading.
package ingest

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rshade/recbatch/internal/logging"
)

// Record document formats accepted by LoadRecords.
const (
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
	FormatLines  = "lines"
)

// StdinPath is the input path that selects standard input.
const StdinPath = "-"

// maxLineBytes caps a single NDJSON or text line at 16 MB, well above any
// record the default constraints would accept.
const maxLineBytes = 16 * 1024 * 1024

// DetectFormat guesses the record format from the file extension, defaulting
// to lines. Stdin defaults to lines as well; pass the format explicitly for
// JSON on stdin.
func DetectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".ndjson", ".jsonl":
		return FormatNDJSON
	default:
		return FormatLines
	}
}

// LoadRecords reads the record document at path (or stdin when path is "-")
// in the given format and returns the records in document order.
//
// JSON and NDJSON elements keep their dynamic type; strings stay strings and
// anything else is passed through for the processor to reject. Lines format
// yields every line, including empty ones, as a string record.
func LoadRecords(ctx context.Context, path, format string) ([]any, error) {
	log := logging.FromContext(ctx)

	var reader io.Reader
	if path == StdinPath {
		reader = os.Stdin
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening records file: %w", err)
		}
		defer file.Close()
		reader = file
	}

	records, err := ReadRecords(reader, format)
	if err != nil {
		log.Error().
			Ctx(ctx).
			Str("component", "ingest").
			Str("path", path).
			Str("format", format).
			Err(err).
			Msg("failed to read records")
		return nil, err
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "ingest").
		Str("path", path).
		Str("format", format).
		Int("record_count", len(records)).
		Msg("records loaded")

	return records, nil
}

// ReadRecords parses records from r in the given format.
func ReadRecords(r io.Reader, format string) ([]any, error) {
	switch format {
	case FormatJSON:
		return readJSONArray(r)
	case FormatNDJSON:
		return readNDJSON(r)
	case FormatLines:
		return readLines(r)
	default:
		return nil, fmt.Errorf("unknown record format %q (want json, ndjson, or lines)", format)
	}
}

// readJSONArray decodes a top-level JSON array of arbitrary values.
func readJSONArray(r io.Reader) ([]any, error) {
	var records []any
	dec := json.NewDecoder(r)
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("parsing JSON record array: %w", err)
	}
	return records, nil
}

// readNDJSON decodes one JSON value per line, skipping blank lines.
func readNDJSON(r io.Reader) ([]any, error) {
	var records []any
	scanner := newLineScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var value any
		if err := json.Unmarshal([]byte(text), &value); err != nil {
			return nil, fmt.Errorf("parsing NDJSON line %d: %w", line, err)
		}
		records = append(records, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading NDJSON input: %w", err)
	}
	return records, nil
}

// readLines treats every raw line as one text record. Empty lines are kept;
// an empty record is a valid record.
func readLines(r io.Reader) ([]any, error) {
	var records []any
	scanner := newLineScanner(r)
	for scanner.Scan() {
		records = append(records, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading line input: %w", err)
	}
	return records, nil
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return scanner
}
