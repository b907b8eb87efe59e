// Package rowio provides the shared row-stream machinery the bank
// adapters are built on: discarding a fixed count of leading boilerplate
// lines, decoding legacy byte encodings, splitting rows in the tolerant
// CSV dialect the banks actually emit, and discarding a fixed count of
// trailing lines via bounded lookahead.
package rowio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"hbconv/internal/parsererror"
)

// Config describes one bank's fixed export dialect. Adapters hardcode
// their Config; none of this is user-configurable.
type Config struct {
	// Delimiter is the field separator, ';' if zero.
	Delimiter rune
	// SkipHead is the number of leading boilerplate lines to discard
	// before any CSV parsing happens.
	SkipHead int
	// SkipTail is the number of trailing lines to discard. Requires
	// buffering SkipTail rows of lookahead, since the stream cannot be
	// iterated in reverse.
	SkipTail int
	// Encoding decodes the input bytes before parsing. Nil means the
	// input is already UTF-8.
	Encoding encoding.Encoding
	// EncodingName labels decode failures, e.g. "windows-1252".
	EncodingName string
}

type entry struct {
	rec  []string
	line int
	err  error
}

// Reader produces raw rows one at a time. Read returns io.EOF when the
// stream is exhausted; any other error is scoped to the returned row
// position and iteration may continue, matching the csv.Reader contract.
type Reader struct {
	csv    *csv.Reader
	cfg    Config
	queue  []entry
	primed bool
	eof    bool
	// failed records that eof was caused by a broken stream rather than
	// a clean end of input; the failure still has to surface as a row.
	failed bool
	// line is the 1-based position in the original input file of the
	// most recently fetched row, counting skipped boilerplate lines.
	line int
}

// New wraps a raw byte stream in a Reader for the given dialect. The
// stream is single-pass; once exhausted a new Reader (over a fresh
// stream) is needed to iterate again.
func New(r io.Reader, cfg Config) *Reader {
	if cfg.Delimiter == 0 {
		cfg.Delimiter = ';'
	}

	var src io.Reader = r
	if cfg.Encoding != nil {
		src = transform.NewReader(r, cfg.Encoding.NewDecoder())
	}

	br := bufio.NewReader(src)
	rd := &Reader{cfg: cfg}

	for i := 0; i < cfg.SkipHead; i++ {
		_, err := br.ReadString('\n')
		rd.line++
		if err != nil {
			// Input shorter than the boilerplate prefix: legal, the
			// sequence is simply empty.
			rd.eof = true
			break
		}
	}

	cr := csv.NewReader(br)
	cr.Comma = cfg.Delimiter
	// The banks never quote properly; stray literal quotes inside
	// fields must not make the row malformed.
	cr.LazyQuotes = true
	// Inconsistent trailing columns happen; adapters enforce their own
	// minimum column counts.
	cr.FieldsPerRecord = -1
	rd.csv = cr

	return rd
}

// Line returns the input line number of the most recently returned row.
func (r *Reader) Line() int {
	return r.line
}

// Read returns the next data row. A row-scoped parse failure is returned
// as a non-nil error with iteration still able to continue; io.EOF marks
// the end of the stream.
func (r *Reader) Read() ([]string, error) {
	if !r.primed {
		r.primed = true
		for i := 0; i < r.cfg.SkipTail && !r.eof; i++ {
			if e := r.fetch(); e.err != io.EOF {
				r.queue = append(r.queue, e)
			}
		}
	}

	if r.eof && len(r.queue) == 0 {
		return nil, io.EOF
	}

	next := r.fetch()
	if r.cfg.SkipTail == 0 {
		if next.err == io.EOF {
			return nil, io.EOF
		}
		r.line = next.line
		return next.rec, next.err
	}

	if r.failed {
		// The stream broke mid-read. The buffered rows cannot be told
		// apart from the trailing boilerplate anymore, but the failure
		// itself must come out as a row item before io.EOF.
		r.failed = false
		e := next
		if e.err == io.EOF && len(r.queue) > 0 {
			// The failure entry was buffered during priming.
			e = r.queue[len(r.queue)-1]
		}
		r.queue = nil
		r.line = e.line
		return e.rec, e.err
	}

	if next.err == io.EOF {
		// The buffered rows are exactly the trailing boilerplate;
		// drop them.
		r.queue = nil
		return nil, io.EOF
	}

	head := r.queue[0]
	r.queue = append(r.queue[1:], next)
	r.line = head.line
	return head.rec, head.err
}

func (r *Reader) fetch() entry {
	if r.eof {
		return entry{line: r.line, err: io.EOF}
	}

	rec, err := r.csv.Read()
	r.line++
	e := entry{rec: rec, line: r.line, err: err}

	if err != nil {
		var parseErr *csv.ParseError
		switch {
		case errors.Is(err, io.EOF):
			r.eof = true
		case errors.As(err, &parseErr):
			// Row-scoped, the csv reader can continue.
		default:
			// A broken underlying stream would return the same error
			// forever; surface it once and end the sequence.
			r.eof = true
			r.failed = true
			if r.cfg.Encoding != nil {
				e.err = &parsererror.DecodeError{Encoding: r.cfg.EncodingName, Err: err}
			}
		}
	}

	return e
}

// PadColumns extends rec with empty strings up to want columns, for rows
// where a bank dropped empty trailing fields. The caller must already
// have checked its minimum column count.
func PadColumns(rec []string, want int) []string {
	for len(rec) < want {
		rec = append(rec, "")
	}
	return rec
}
