package rowio

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/text/encoding/charmap"
)

func readAll(t *testing.T, r *Reader) ([][]string, []error) {
	t.Helper()
	var rows [][]string
	var errs []error
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return rows, errs
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		rows = append(rows, rec)
	}
}

func TestSkipHead(t *testing.T) {
	input := "junk\nmore junk\na;b\nc;d\n"
	r := New(strings.NewReader(input), Config{SkipHead: 2})

	rows, errs := readAll(t, r)
	require.Empty(t, errs)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a", "b"}, rows[0])
	assert.Equal(t, []string{"c", "d"}, rows[1])
}

func TestSkipTail(t *testing.T) {
	input := "a;b\nc;d\nsummary line\n"
	r := New(strings.NewReader(input), Config{SkipTail: 1})

	rows, errs := readAll(t, r)
	require.Empty(t, errs)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a", "b"}, rows[0])
	assert.Equal(t, []string{"c", "d"}, rows[1])
}

func TestSkipHeadAndTail(t *testing.T) {
	input := "header\na;b\nfooter\n"
	r := New(strings.NewReader(input), Config{SkipHead: 1, SkipTail: 1})

	rows, errs := readAll(t, r)
	require.Empty(t, errs)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"a", "b"}, rows[0])
}

func TestInputShorterThanSkipHead(t *testing.T) {
	r := New(strings.NewReader("only\ntwo\n"), Config{SkipHead: 5})

	rows, errs := readAll(t, r)
	assert.Empty(t, errs, "a short input is empty, not an error")
	assert.Empty(t, rows)

	// Exhausted streams stay exhausted.
	_, err := r.Read()
	assert.Equal(t, io.EOF, err)
}

func TestEmptyInput(t *testing.T) {
	r := New(strings.NewReader(""), Config{SkipTail: 1})
	rows, errs := readAll(t, r)
	assert.Empty(t, rows)
	assert.Empty(t, errs)
}

func TestOnlyTrailingLines(t *testing.T) {
	r := New(strings.NewReader("footer\n"), Config{SkipTail: 1})
	rows, errs := readAll(t, r)
	assert.Empty(t, rows)
	assert.Empty(t, errs)
}

func TestBrokenStreamSurfacesWithSkipTail(t *testing.T) {
	errBroken := errors.New("read: device gone")
	src := io.MultiReader(strings.NewReader("a;b\nc;d\n"), iotest.ErrReader(errBroken))
	r := New(src, Config{SkipTail: 1})

	rows, errs := readAll(t, r)
	require.Len(t, errs, 1, "the stream failure must surface before io.EOF")
	assert.ErrorIs(t, errs[0], errBroken)
	// Rows still inside the lookahead window when the stream broke
	// cannot be told apart from trailing boilerplate.
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"a", "b"}, rows[0])

	_, err := r.Read()
	assert.Equal(t, io.EOF, err)
}

func TestBrokenStreamDuringLookahead(t *testing.T) {
	errBroken := errors.New("read: device gone")
	src := io.MultiReader(strings.NewReader("a;b\n"), iotest.ErrReader(errBroken))
	r := New(src, Config{SkipTail: 2})

	rows, errs := readAll(t, r)
	assert.Empty(t, rows)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], errBroken)
}

func TestFlexibleColumnCounts(t *testing.T) {
	input := "a;b;c\nd;e\nf;g;h;i\n"
	r := New(strings.NewReader(input), Config{})

	rows, errs := readAll(t, r)
	require.Empty(t, errs, "varying column counts are tolerated")
	require.Len(t, rows, 3)
	assert.Len(t, rows[1], 2)
	assert.Len(t, rows[2], 4)
}

func TestStrayQuotesTolerated(t *testing.T) {
	input := "he said \"hi\";b\n"
	r := New(strings.NewReader(input), Config{})

	rows, errs := readAll(t, r)
	require.Empty(t, errs)
	require.Len(t, rows, 1)
	assert.Equal(t, `he said "hi"`, rows[0][0])
}

func TestWindows1252Decoding(t *testing.T) {
	// 0xFC is ü, 0xE4 is ä in Windows-1252.
	input := []byte{'M', 0xFC, 'l', 'l', 'e', 'r', ';', 'B', 0xE4, 'r', '\n'}
	r := New(strings.NewReader(string(input)), Config{
		Encoding:     charmap.Windows1252,
		EncodingName: "windows-1252",
	})

	rows, errs := readAll(t, r)
	require.Empty(t, errs)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Müller", "Bär"}, rows[0])
}

func TestLineNumbersCountBoilerplate(t *testing.T) {
	input := "junk\njunk\na;b\nc;d\n"
	r := New(strings.NewReader(input), Config{SkipHead: 2})

	_, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, 3, r.Line())

	_, err = r.Read()
	require.NoError(t, err)
	assert.Equal(t, 4, r.Line())
}

func TestPadColumns(t *testing.T) {
	rec := PadColumns([]string{"a", "b"}, 4)
	assert.Equal(t, []string{"a", "b", "", ""}, rec)

	rec = PadColumns([]string{"a", "b", "c"}, 2)
	assert.Equal(t, []string{"a", "b", "c"}, rec, "long rows are left alone")
}
