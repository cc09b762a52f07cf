package scan

import (
	"errors"
	"fmt"
	"os"
)

// Record is the set of named fields extracted from one logical entry of a
// catalogue file. Values stay as raw strings; interpretation belongs to the
// source adapters.
type Record map[string]string

// StepFunc extracts one record starting at text and returns the remaining
// input. Returning ErrNoMatch ends a ScanAll loop cleanly. Any other error
// marks the entry malformed; the loop drops it and continues from rest when
// the step managed to advance.
type StepFunc func(text string) (rec Record, rest string, err error)

// ScanAll applies step repeatedly, each call resuming where the previous one
// stopped, and returns the records collected in file order. The loop never
// rescans from the top of the content, so each entry is seen exactly once.
func ScanAll(content string, step StepFunc) []Record {
	var records []Record
	rest := content
	for {
		rec, next, err := step(rest)
		switch {
		case err == nil:
			records = append(records, rec)
		case errors.Is(err, ErrNoMatch):
			return records
		default:
			// Malformed entry: drop it, keep whatever the step consumed.
		}
		if len(next) >= len(rest) {
			return records
		}
		rest = next
	}
}

// ScanFile reads path and runs ScanAll over its contents. An unreadable file
// is an error; a file yielding no records is not.
func ScanFile(path string, step StepFunc) ([]Record, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ScanAll(string(content), step), nil
}
