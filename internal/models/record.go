// Package models defines the canonical transaction record shared by all
// bank adapters and the HomeBank writer, plus the value types it is built
// from (Money, PaymentMethod).
package models

import (
	"strings"
	"time"
)

// Record is the canonical transaction record in the shape expected by the
// HomeBank CSV import format. Every bank adapter normalizes its rows into
// this one structure; the writer serializes it field for field.
type Record struct {
	// Date is the booking date. Only the calendar day is significant.
	Date time.Time
	// Payment is the payment method; serialized as its numeric code.
	Payment PaymentMethod
	// Info is a free-text reference or identifier, may be empty.
	Info string
	// Payee is the counterparty name, may be empty.
	Payee string
	// Memo is the transaction description, may be empty.
	Memo string
	// Amount is the signed transaction amount; negative means debit.
	Amount Money
	// Category is a category path. Bank adapters always leave it empty,
	// categorization happens downstream in HomeBank itself.
	Category string
	// Tags are short tokens joined by spaces in the output format, so a
	// single tag must never contain whitespace.
	Tags []string
}

// ValidateTags reports the first tag containing whitespace, if any.
// Space is the tag separator on the wire, so such a tag could not be
// read back as one token.
func (r Record) ValidateTags() (string, bool) {
	for _, tag := range r.Tags {
		if strings.ContainsAny(tag, " \t\n\r") {
			return tag, false
		}
	}
	return "", true
}
