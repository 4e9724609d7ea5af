package coerce

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Amount parses currency-formatted text leniently: currency symbols,
// letters and mis-decoded byte sequences are stripped, European comma
// notation is normalized, and anything still unparsable yields zero.
// Some call sites depend on the silent zero; use AmountStrict where a
// bad amount must fail the row instead.
func Amount(text string) decimal.Decimal {
	d, err := AmountStrict(text)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// AmountStrict parses currency-formatted text and returns an error when
// no numeric value remains after cleaning.
func AmountStrict(text string) (decimal.Decimal, error) {
	cleaned := cleanAmount(text)
	if cleaned == "" || cleaned == "-" {
		return decimal.Zero, fmt.Errorf("no numeric value in %q", text)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", text, err)
	}
	return d, nil
}

// cleanAmount keeps digits, '.', ',' and '-', then disambiguates the
// separators: when both '.' and ',' are present the one occurring last
// is the decimal mark and the other a thousands separator, covering
// "1.234,56" and "1,234.56" alike; a lone comma is a decimal mark. The
// keep-filter also disposes of currency symbols that arrive as
// mis-decoded multi-byte sequences.
func cleanAmount(text string) string {
	kept := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '.' || r == ',' || r == '-' {
			return r
		}
		return -1
	}, text)

	lastDot := strings.LastIndexByte(kept, '.')
	lastComma := strings.LastIndexByte(kept, ',')
	switch {
	case lastDot >= 0 && lastComma >= 0 && lastComma > lastDot:
		kept = strings.ReplaceAll(kept, ".", "")
		kept = strings.ReplaceAll(kept, ",", ".")
	case lastDot >= 0 && lastComma >= 0:
		kept = strings.ReplaceAll(kept, ",", "")
	case lastComma >= 0:
		kept = strings.ReplaceAll(kept, ",", ".")
	}
	return kept
}

// Int parses an integer cell, defaulting to 0 on any failure. Exports
// use this for occupancy and night counts where blank means zero.
func Int(text string) int {
	d, err := AmountStrict(text)
	if err != nil {
		return 0
	}
	return int(d.IntPart())
}
