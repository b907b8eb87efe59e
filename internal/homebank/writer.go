// Package homebank serializes canonical records into the HomeBank CSV
// import format: semicolon separated, no header, fields in the fixed
// order date, payment code, info, payee, memo, amount, category, tags.
package homebank

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"hbconv/internal/currencyutils"
	"hbconv/internal/dateutils"
	"hbconv/internal/models"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Delimiter is the field separator of the HomeBank CSV dialect.
const Delimiter = ';'

// DefaultCurrency is the currency the output format implicitly assumes.
// HomeBank CSV carries no currency column, so amounts in any other
// currency lose that information on the wire.
const DefaultCurrency = "EUR"

// csvRow is the wire representation of one record. Field order is the
// column order in the output file.
type csvRow struct {
	Date     string `csv:"date"`
	Payment  int    `csv:"payment"`
	Info     string `csv:"info"`
	Payee    string `csv:"payee"`
	Memo     string `csv:"memo"`
	Amount   string `csv:"amount"`
	Category string `csv:"category"`
	Tags     string `csv:"tags"`
}

func toCSVRow(rec models.Record) csvRow {
	return csvRow{
		Date:     dateutils.ToISODate(rec.Date),
		Payment:  rec.Payment.Code(),
		Info:     rec.Info,
		Payee:    rec.Payee,
		Memo:     rec.Memo,
		Amount:   currencyutils.FormatAmount(rec.Amount.Amount, rec.Amount.Currency),
		Category: rec.Category,
		Tags:     strings.Join(rec.Tags, " "),
	}
}

func (r csvRow) strings() []string {
	return []string{
		r.Date,
		fmt.Sprintf("%d", r.Payment),
		r.Info,
		r.Payee,
		r.Memo,
		r.Amount,
		r.Category,
		r.Tags,
	}
}

// Writer serializes records one at a time to an output stream. Writes
// are buffered; the caller must Flush once at the end. A failed write is
// fatal for that operation, already-flushed output is not rolled back.
type Writer struct {
	csv      *csv.Writer
	currency string
}

// NewWriter returns a Writer assuming the default output currency.
func NewWriter(w io.Writer) *Writer {
	return NewWriterCurrency(w, DefaultCurrency)
}

// NewWriterCurrency returns a Writer that treats currency as the one the
// destination file is configured for. Records in any other currency are
// still written, with a warning, since the format cannot carry the
// currency itself.
func NewWriterCurrency(w io.Writer, currency string) *Writer {
	cw := csv.NewWriter(w)
	cw.Comma = Delimiter
	return &Writer{csv: cw, currency: currency}
}

// Write appends one record to the output stream.
func (w *Writer) Write(rec models.Record) error {
	if tag, ok := rec.ValidateTags(); !ok {
		return fmt.Errorf("tag '%s' contains whitespace, which is the tag separator", tag)
	}
	if rec.Amount.Currency != w.currency {
		log.WithFields(logrus.Fields{
			"currency": rec.Amount.Currency,
			"expected": w.currency,
			"date":     dateutils.ToISODate(rec.Date),
		}).Warn("Record currency differs from output currency; the output format cannot express it")
	}

	if err := w.csv.Write(toCSVRow(rec).strings()); err != nil {
		return fmt.Errorf("serializing record: %w", err)
	}
	return nil
}

// Flush writes buffered records to the underlying stream and reports any
// write error encountered so far.
func (w *Writer) Flush() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	return nil
}

// Marshal writes a whole slice of records to out in one call.
func Marshal(records []models.Record, out io.Writer) error {
	rows := make([]csvRow, 0, len(records))
	for _, rec := range records {
		if tag, ok := rec.ValidateTags(); !ok {
			return fmt.Errorf("tag '%s' contains whitespace, which is the tag separator", tag)
		}
		if rec.Amount.Currency != DefaultCurrency {
			log.WithFields(logrus.Fields{
				"currency": rec.Amount.Currency,
				"expected": DefaultCurrency,
			}).Warn("Record currency differs from output currency; the output format cannot express it")
		}
		rows = append(rows, toCSVRow(rec))
	}

	cw := csv.NewWriter(out)
	cw.Comma = Delimiter
	if err := gocsv.MarshalCSVWithoutHeaders(&rows, gocsv.NewSafeCSVWriter(cw)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteRecordsToCSV writes records to a CSV file in the HomeBank format,
// creating the target directory if needed.
func WriteRecordsToCSV(records []models.Record, csvFile string) error {
	if records == nil {
		return fmt.Errorf("cannot write nil records to CSV")
	}

	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(records),
	}).Info("Writing records to CSV file")

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := Marshal(records, file); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(records),
	}).Info("Successfully wrote records to CSV file")
	return nil
}
