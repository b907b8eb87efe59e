// Package parsererror defines the error types surfaced by the bank
// adapters. All of them are row-scoped: they describe why one input row
// could not be parsed and never invalidate the rest of the stream.
package parsererror

import "fmt"

// ParseError represents a failure to parse a single field of a row.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// RowError attributes an underlying error to one input row. Line is the
// 1-based line number in the original file, including skipped
// boilerplate lines.
type RowError struct {
	Parser string
	Line   int
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s: row at line %d: %v", e.Parser, e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// ColumnCountError represents a row with fewer columns than the adapter
// needs to populate its consumed fields.
type ColumnCountError struct {
	Parser   string
	Expected int
	Actual   int
}

func (e *ColumnCountError) Error() string {
	return fmt.Sprintf("%s: row has %d columns, need at least %d",
		e.Parser, e.Actual, e.Expected)
}

// DecodeError represents input bytes that could not be interpreted under
// the adapter's fixed encoding.
type DecodeError struct {
	Encoding string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed decoding input as %s: %v", e.Encoding, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
