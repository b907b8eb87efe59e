// Package parser defines the interface every bank adapter implements and
// a registry of the supported formats.
package parser

import (
	"io"

	"hbconv/internal/models"
)

// RecordReader is a lazy, single-pass sequence of canonical records.
// Next returns io.EOF once the stream is exhausted. Any other error is
// scoped to one input row: the caller may keep calling Next and will
// receive the remaining rows, or stop, at its own policy. A reader
// cannot be restarted; construct a new one over a fresh stream instead.
type RecordReader interface {
	Next() (models.Record, error)
}

// Collect drains a RecordReader into a slice. onError decides the policy
// for row-scoped errors: return true to skip the row and continue, false
// to stop and have Collect return that error. A nil onError skips all
// row errors.
func Collect(r RecordReader, onError func(error) bool) ([]models.Record, error) {
	var records []models.Record
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			if onError != nil && !onError(err) {
				return records, err
			}
			continue
		}
		records = append(records, rec)
	}
}
