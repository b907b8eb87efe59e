// Package spardaparser reads Sparda-Bank CSV exports and converts them
// to the canonical record format.
//
// The export tool predates Unicode: files arrive as Windows-1252 and are
// decoded before parsing. Ten boilerplate lines precede the data, there
// is no trailing summary line, fields are semicolon separated and
// unquoted, dates are ISO ("2024-03-07"), amounts use a decimal comma
// (sometimes wrapped in stray quotes), and the currency is always EUR.
package spardaparser

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/charmap"

	"hbconv/internal/currencyutils"
	"hbconv/internal/dateutils"
	"hbconv/internal/homebank"
	"hbconv/internal/models"
	"hbconv/internal/parser"
	"hbconv/internal/parsererror"
	"hbconv/internal/rowio"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

const parserName = "sparda"

// Column indices of a Sparda export row.
const (
	colBuchungstag = iota
	colWertstellungstag
	colGegenIBAN
	colNameGegenkonto
	colVerwendungszweck
	colUmsatz
	colWaehrung
	numColumns
)

const minColumns = colUmsatz + 1

const (
	skipHead = 10
	currency = "EUR"
)

// Row is one parsed Sparda export row. The trailing currency column is
// retained even though the adapter binds EUR, so a surprising export
// stays inspectable.
type Row struct {
	Buchungstag      time.Time
	Wertstellungstag time.Time
	GegenIBAN        string
	NameGegenkonto   string
	Verwendungszweck string
	Umsatz           models.Money
	Waehrung         string
}

// Record converts the row into the canonical record. The mapping is a
// fixed field-to-field assignment and cannot fail.
func (r Row) Record() models.Record {
	return models.Record{
		Date:     r.Buchungstag,
		Payment:  models.PaymentElectronicPayment,
		Info:     r.GegenIBAN,
		Payee:    r.NameGegenkonto,
		Memo:     r.Verwendungszweck,
		Amount:   r.Umsatz,
		Category: "",
		Tags:     nil,
	}
}

// Iter lazily produces Sparda rows from an export stream.
type Iter struct {
	r *rowio.Reader
}

// NewIter opens a row iterator over a raw Sparda export stream.
func NewIter(r io.Reader) *Iter {
	return &Iter{r: rowio.New(r, rowio.Config{
		Delimiter:    ';',
		SkipHead:     skipHead,
		Encoding:     charmap.Windows1252,
		EncodingName: "windows-1252",
	})}
}

// NextRow returns the next bank-specific row. io.EOF ends the stream;
// other errors are scoped to the row at the reported line and iteration
// may continue.
func (it *Iter) NextRow() (Row, error) {
	rec, err := it.r.Read()
	if err == io.EOF {
		return Row{}, io.EOF
	}
	if err != nil {
		return Row{}, &parsererror.RowError{Parser: parserName, Line: it.r.Line(), Err: err}
	}

	row, err := parseRow(rec)
	if err != nil {
		return Row{}, &parsererror.RowError{Parser: parserName, Line: it.r.Line(), Err: err}
	}
	return row, nil
}

// Next implements parser.RecordReader.
func (it *Iter) Next() (models.Record, error) {
	row, err := it.NextRow()
	if err != nil {
		return models.Record{}, err
	}
	return row.Record(), nil
}

func parseRow(rec []string) (Row, error) {
	if len(rec) < minColumns {
		return Row{}, &parsererror.ColumnCountError{
			Parser:   parserName,
			Expected: minColumns,
			Actual:   len(rec),
		}
	}
	rec = rowio.PadColumns(rec, numColumns)

	buchungstag, err := dateutils.ParseStrict(rec[colBuchungstag], dateutils.LayoutISO)
	if err != nil {
		return Row{}, &parsererror.ParseError{
			Parser: parserName, Field: "Buchungstag", Value: rec[colBuchungstag], Err: err,
		}
	}

	wertstellungstag, err := dateutils.ParseStrict(rec[colWertstellungstag], dateutils.LayoutISO)
	if err != nil {
		return Row{}, &parsererror.ParseError{
			Parser: parserName, Field: "Wertstellungstag", Value: rec[colWertstellungstag], Err: err,
		}
	}

	umsatz, err := currencyutils.ParseCommaDecimal(rec[colUmsatz])
	if err != nil {
		return Row{}, &parsererror.ParseError{
			Parser: parserName, Field: "Umsatz", Value: rec[colUmsatz], Err: err,
		}
	}

	return Row{
		Buchungstag:      buchungstag,
		Wertstellungstag: wertstellungstag,
		GegenIBAN:        rec[colGegenIBAN],
		NameGegenkonto:   rec[colNameGegenkonto],
		Verwendungszweck: rec[colVerwendungszweck],
		Umsatz:           models.NewMoney(umsatz, currency),
		Waehrung:         rec[colWaehrung],
	}, nil
}

// Parse reads a whole Sparda export, skipping rows that fail to parse.
// Skipped rows are logged; use NewIter directly for a different policy.
func Parse(r io.Reader) ([]models.Record, error) {
	return parser.Collect(NewIter(r), func(err error) bool {
		log.WithError(err).Warn("Skipping unparseable Sparda row")
		return true
	})
}

// ParseFile parses a Sparda export file.
func ParseFile(filePath string) ([]models.Record, error) {
	log.WithField("file", filePath).Info("Parsing Sparda CSV file")

	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	records, err := Parse(file)
	if err != nil {
		return nil, err
	}

	log.WithField("count", len(records)).Info("Successfully parsed Sparda CSV file")
	return records, nil
}

// ConvertToCSV converts a Sparda export file to a HomeBank CSV file.
func ConvertToCSV(inputFile, outputFile string) error {
	records, err := ParseFile(inputFile)
	if err != nil {
		return fmt.Errorf("error parsing file: %w", err)
	}
	return homebank.WriteRecordsToCSV(records, outputFile)
}

// ValidateFormat reports whether the file looks like a Sparda export:
// after the boilerplate prefix there is at least one row that parses.
func ValidateFormat(filePath string) (bool, error) {
	log.WithField("file", filePath).Info("Validating Sparda CSV format")

	file, err := os.Open(filePath)
	if err != nil {
		return false, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	it := NewIter(file)
	if _, err := it.NextRow(); err != nil {
		if err == io.EOF {
			log.Info("Sparda CSV file has no data rows")
		} else {
			log.WithError(err).Info("First data row does not parse as Sparda")
		}
		return false, nil
	}
	return true, nil
}

func init() {
	parser.Register(parserName, func(r io.Reader) parser.RecordReader {
		return NewIter(r)
	})
}
