// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"hbconv/internal/homebank"
	"hbconv/internal/parser"
)

// ProcessFile drives one conversion end to end: it opens the input file,
// streams rows through the named adapter, writes each canonical record,
// and flushes once at the end. Rows that fail to parse are logged and
// skipped; a write failure aborts the conversion.
func ProcessFile(format, inputFile, outputFile, currency string, log *logrus.Logger) error {
	log.WithFields(logrus.Fields{
		"format": format,
		"input":  inputFile,
		"output": outputFile,
	}).Info("Converting file to HomeBank CSV")

	in, err := os.Open(inputFile)
	if err != nil {
		return fmt.Errorf("failed opening input file: %w", err)
	}
	defer func() {
		if err := in.Close(); err != nil {
			log.WithError(err).Warn("Failed to close input file")
		}
	}()

	reader, err := parser.New(format, in)
	if err != nil {
		return err
	}

	out, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed creating output file: %w", err)
	}
	defer func() {
		if err := out.Close(); err != nil {
			log.WithError(err).Warn("Failed to close output file")
		}
	}()

	w := homebank.NewWriterCurrency(out, currency)

	var written, skipped int
	for {
		rec, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.WithError(err).Warn("Skipping unparseable row")
			skipped++
			continue
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("failed writing record: %w", err)
		}
		written++
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed flushing output: %w", err)
	}

	log.WithFields(logrus.Fields{
		"written": written,
		"skipped": skipped,
	}).Info("Conversion completed successfully")
	return nil
}

// Validate runs a format check and returns an error when the file does
// not look like an export of the given bank.
func Validate(validateFunc func(string) (bool, error), inputFile string, log *logrus.Logger) error {
	log.Info("Validating format...")
	valid, err := validateFunc(inputFile)
	if err != nil {
		return fmt.Errorf("error validating file: %w", err)
	}
	if !valid {
		return fmt.Errorf("the file is not in a valid format: %s", inputFile)
	}
	log.Info("Validation successful.")
	return nil
}
