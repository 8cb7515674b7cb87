// Package storage handles heuristic catalog persistence in JSONL and SQLite formats.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mash-project/hspace/internal/heuristic"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// ReadAll reads all heuristics from a JSONL file.
// Returns an error if any heuristic fails validation (fail-fast).
func ReadAll(path string) ([]heuristic.Heuristic, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Empty file returns empty slice
		}
		return nil, fmt.Errorf("opening heuristics file: %w", err)
	}
	defer f.Close()

	var hs []heuristic.Heuristic
	scanner := bufio.NewScanner(f)

	// Increase buffer size for long lines
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}

		var h heuristic.Heuristic
		if err := json.Unmarshal(line, &h); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		if err := h.Validate(); err != nil {
			return nil, fmt.Errorf("invalid heuristic at line %d: %w", lineNum, err)
		}

		hs = append(hs, h)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading heuristics file: %w", err)
	}

	return hs, nil
}

// writeJSONL marshals a heuristic to JSON and writes it as a JSONL line.
func writeJSONL(w io.Writer, h heuristic.Heuristic) error {
	data, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("encoding heuristic: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing heuristic: %w", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("writing newline: %w", err)
	}
	return nil
}

// Append adds a heuristic to the end of a JSONL file.
func Append(path string, h heuristic.Heuristic) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening heuristics file for append: %w", err)
	}
	defer f.Close()

	return writeJSONL(f, h)
}

// WriteAll writes all heuristics to a JSONL file, replacing existing content.
func WriteAll(path string, hs []heuristic.Heuristic) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating heuristics file: %w", err)
	}
	defer f.Close()

	for i, h := range hs {
		if err := writeJSONL(f, h); err != nil {
			return fmt.Errorf("heuristic %d: %w", i, err)
		}
	}

	return nil
}

// FindByName searches for a heuristic by absolute name.
func FindByName(hs []heuristic.Heuristic, name string) (int, bool) {
	for i, h := range hs {
		if h.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Upsert adds h to hs, or replaces the entry with the same name.
// Returns the updated slice and whether an existing entry was replaced.
func Upsert(hs []heuristic.Heuristic, h heuristic.Heuristic) ([]heuristic.Heuristic, bool) {
	if idx, found := FindByName(hs, h.Name); found {
		hs[idx] = h
		return hs, true
	}
	return append(hs, h), false
}
