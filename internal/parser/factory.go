package parser

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Constructor opens a RecordReader over a raw byte stream.
type Constructor func(r io.Reader) RecordReader

var registry = map[string]Constructor{}

// Register adds a named adapter constructor. Panics on duplicates;
// registration happens from init functions, so a duplicate is a
// programming error.
func Register(format string, c Constructor) {
	key := strings.ToLower(format)
	if _, ok := registry[key]; ok {
		panic("duplicate parser format: " + key)
	}
	registry[key] = c
}

// New returns a RecordReader for the named format reading from r. There
// is no format auto-detection; the caller chooses the adapter.
func New(format string, r io.Reader) (RecordReader, error) {
	c, ok := registry[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("unknown format '%s' (supported: %s)",
			format, strings.Join(Formats(), ", "))
	}
	return c(r), nil
}

// Formats returns the registered format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
