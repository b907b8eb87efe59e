// Package postbankparser reads Postbank CSV exports and converts them to
// the canonical record format.
//
// The export is UTF-8, semicolon separated and unquoted, with seven
// boilerplate lines before the data and a summary line after it. Dates
// are dotted day-first ("7.3.2024"), amounts use a decimal comma, and
// the currency is always EUR.
package postbankparser

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

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

const parserName = "postbank"

// Column indices of a Postbank export row.
const (
	colBuchungstag = iota
	colWert
	colUmsatzart
	colAuftraggeber
	colVerwendungszweck
	colIBAN
	colBIC
	colKundenreferenz
	colMandatsreferenz
	colGlaeubigerID
	colFremdeGebuehren
	colBetrag
	colAbweichenderEmpfaenger
	colAnzahlAuftraege
	colAnzahlSchecks
	colSoll
	colHaben
	colWaehrung
	numColumns
)

// minColumns is the highest consumed column index plus one; rows shorter
// than this cannot be normalized.
const minColumns = colBetrag + 1

const (
	skipHead = 7
	skipTail = 1
	currency = "EUR"
)

// Row is one parsed Postbank export row. All columns are retained, the
// unconsumed ones as raw text, so nothing the bank exported is lost.
type Row struct {
	Buchungstag            time.Time
	Wert                   time.Time
	Umsatzart              string
	Auftraggeber           string
	Verwendungszweck       string
	IBAN                   string
	BIC                    string
	Kundenreferenz         string
	Mandatsreferenz        string
	GlaeubigerID           string
	FremdeGebuehren        string
	Betrag                 models.Money
	AbweichenderEmpfaenger string
	AnzahlAuftraege        string
	AnzahlSchecks          string
	Soll                   string
	Haben                  string
	Waehrung               string
}

// Record converts the row into the canonical record. The mapping is a
// fixed field-to-field assignment and cannot fail.
func (r Row) Record() models.Record {
	return models.Record{
		Date:     r.Buchungstag,
		Payment:  models.PaymentElectronicPayment,
		Info:     r.Kundenreferenz,
		Payee:    r.Auftraggeber,
		Memo:     r.Verwendungszweck,
		Amount:   r.Betrag,
		Category: "",
		Tags:     nil,
	}
}

// Iter lazily produces Postbank rows from an export stream.
type Iter struct {
	r *rowio.Reader
}

// NewIter opens a row iterator over a raw Postbank export stream.
func NewIter(r io.Reader) *Iter {
	return &Iter{r: rowio.New(r, rowio.Config{
		Delimiter: ';',
		SkipHead:  skipHead,
		SkipTail:  skipTail,
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

	buchungstag, err := dateutils.ParseStrict(rec[colBuchungstag], dateutils.LayoutGerman)
	if err != nil {
		return Row{}, &parsererror.ParseError{
			Parser: parserName, Field: "Buchungstag", Value: rec[colBuchungstag], Err: err,
		}
	}

	wert, err := dateutils.ParseStrict(rec[colWert], dateutils.LayoutGerman)
	if err != nil {
		return Row{}, &parsererror.ParseError{
			Parser: parserName, Field: "Wert", Value: rec[colWert], Err: err,
		}
	}

	betrag, err := currencyutils.ParseCommaDecimal(rec[colBetrag])
	if err != nil {
		return Row{}, &parsererror.ParseError{
			Parser: parserName, Field: "Betrag", Value: rec[colBetrag], Err: err,
		}
	}

	return Row{
		Buchungstag:            buchungstag,
		Wert:                   wert,
		Umsatzart:              rec[colUmsatzart],
		Auftraggeber:           rec[colAuftraggeber],
		Verwendungszweck:       rec[colVerwendungszweck],
		IBAN:                   rec[colIBAN],
		BIC:                    rec[colBIC],
		Kundenreferenz:         rec[colKundenreferenz],
		Mandatsreferenz:        rec[colMandatsreferenz],
		GlaeubigerID:           rec[colGlaeubigerID],
		FremdeGebuehren:        rec[colFremdeGebuehren],
		Betrag:                 models.NewMoney(betrag, currency),
		AbweichenderEmpfaenger: rec[colAbweichenderEmpfaenger],
		AnzahlAuftraege:        rec[colAnzahlAuftraege],
		AnzahlSchecks:          rec[colAnzahlSchecks],
		Soll:                   rec[colSoll],
		Haben:                  rec[colHaben],
		Waehrung:               rec[colWaehrung],
	}, nil
}

// Parse reads a whole Postbank export, skipping rows that fail to parse.
// Skipped rows are logged; use NewIter directly for a different policy.
func Parse(r io.Reader) ([]models.Record, error) {
	return parser.Collect(NewIter(r), func(err error) bool {
		log.WithError(err).Warn("Skipping unparseable Postbank row")
		return true
	})
}

// ParseFile parses a Postbank export file.
func ParseFile(filePath string) ([]models.Record, error) {
	log.WithField("file", filePath).Info("Parsing Postbank CSV file")

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

	log.WithField("count", len(records)).Info("Successfully parsed Postbank CSV file")
	return records, nil
}

// ConvertToCSV converts a Postbank export file to a HomeBank CSV file.
func ConvertToCSV(inputFile, outputFile string) error {
	records, err := ParseFile(inputFile)
	if err != nil {
		return fmt.Errorf("error parsing file: %w", err)
	}
	return homebank.WriteRecordsToCSV(records, outputFile)
}

// ValidateFormat reports whether the file looks like a Postbank export:
// after the boilerplate prefix there is at least one row that parses.
// The export has no header line to sniff, so parsing the first data row
// is the only meaningful shape check.
func ValidateFormat(filePath string) (bool, error) {
	log.WithField("file", filePath).Info("Validating Postbank CSV format")

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
			log.Info("Postbank CSV file has no data rows")
		} else {
			log.WithError(err).Info("First data row does not parse as Postbank")
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
