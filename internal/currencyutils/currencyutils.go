// Package currencyutils provides parsing and rendering of amounts in the
// decimal-comma notation used by German bank exports and by the HomeBank
// output format.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// commaDecimalRe is the accepted shape for comma-decimal amounts:
// optional sign, digits optionally grouped by dots in strict groups of
// three, optional comma-separated decimal part. A decimal point is not a
// valid decimal separator here and must fail, so the caller can tell a
// wrong-locale export apart from a rounding quirk.
var commaDecimalRe = regexp.MustCompile(`^-?\d{1,3}(?:\.\d{3})*(?:,\d+)?$|^-?\d+(?:,\d+)?$`)

// ParseCommaDecimal parses an amount written with a decimal comma
// (e.g. "-25,88" or "1.234,56") into a decimal value.
func ParseCommaDecimal(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	// Some exports wrap amounts in stray quotes even though the file is
	// otherwise unquoted.
	cleaned = strings.Trim(cleaned, `"`)

	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	if !commaDecimalRe.MatchString(cleaned) {
		return decimal.Zero, fmt.Errorf("amount '%s' is not in comma-decimal notation", s)
	}

	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", s, err)
	}
	return amount, nil
}

// FormatAmount renders an amount the way the currency writes it, without
// a currency symbol. EUR uses a decimal comma and dot thousands
// grouping, the conventional German rendering; HomeBank parses grouped
// and ungrouped amounts alike, so one rendering is used for all sources.
// Everything else falls back to plain decimal-point notation.
func FormatAmount(amount decimal.Decimal, currency string) string {
	if currency == "EUR" {
		return formatCommaDecimal(amount)
	}
	return amount.StringFixed(2)
}

// formatCommaDecimal renders e.g. -1234.5 as "-1.234,50".
func formatCommaDecimal(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(digit)
	}

	return sign + grouped.String() + "," + fracPart
}
