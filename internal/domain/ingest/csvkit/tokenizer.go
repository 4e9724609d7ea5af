// Package csvkit provides the shared row tokenizer and header mapper used
// by all export dialects. The tokenizer is deliberately hand-rolled: the
// exports we ingest include a dialect that wraps a whole semicolon-joined
// row inside one quoted cell, which encoding/csv cannot unwrap.
package csvkit

import (
	"errors"
	"strings"
)

// RawRow is one logical CSV line split into fields. A logical line may
// span multiple physical lines when a quoted field embeds newlines.
type RawRow []string

// ErrTooFewRows is returned when a file does not contain at least a
// header row and one data row. It is the only file-level failure the
// tokenizer produces; everything else is handled per row downstream.
var ErrTooFewRows = errors.New("csv file must contain a header row and at least one data row")

// DetectDelimiter inspects the first line of the text: a semicolon with
// no comma selects ';', anything else selects ','.
func DetectDelimiter(text string) rune {
	header := text
	if idx := strings.IndexAny(text, "\r\n"); idx >= 0 {
		header = text[:idx]
	}
	if strings.ContainsRune(header, ';') && !strings.ContainsRune(header, ',') {
		return ';'
	}
	return ','
}

// Tokenize splits raw CSV text into rows using the auto-detected delimiter.
func Tokenize(text string) ([]RawRow, error) {
	return TokenizeWith(text, DetectDelimiter(text))
}

// TokenizeWith splits raw CSV text into rows with an explicit delimiter.
// Quoted fields may contain the delimiter, doubled quotes and embedded
// newlines. Fields are whitespace-trimmed and stripped of one layer of
// surrounding quotes. Blank rows are discarded.
func TokenizeWith(text string, delimiter rune) ([]RawRow, error) {
	text = strings.TrimPrefix(text, "\uFEFF")
	if delimiter == ';' {
		text = unwrapQuotedLines(text)
	}

	var (
		rows         []RawRow
		fields       []string
		field        strings.Builder
		insideQuotes bool
	)

	runes := []rune(text)
	endField := func() {
		fields = append(fields, cleanField(field.String()))
		field.Reset()
	}
	endRow := func() {
		endField()
		if !isBlankRow(fields) {
			rows = append(rows, RawRow(fields))
		}
		fields = nil
	}

	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			if insideQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				field.WriteRune('"')
				i++
				continue
			}
			insideQuotes = !insideQuotes
		case c == delimiter && !insideQuotes:
			endField()
		case (c == '\n' || c == '\r') && !insideQuotes:
			if c == '\r' && i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			endRow()
		default:
			field.WriteRune(c)
		}
	}
	if field.Len() > 0 || len(fields) > 0 {
		endRow()
	}

	if len(rows) < 2 {
		return nil, ErrTooFewRows
	}
	return rows, nil
}

// unwrapQuotedLines handles the export dialect that quotes each entire
// semicolon-joined row as a single cell. A line qualifies only when the
// quotes at both ends are the line's only quotes and the interior still
// contains the delimiter.
func unwrapQuotedLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimRight(line, "\r")
		if len(trimmed) < 2 || !strings.HasPrefix(trimmed, `"`) || !strings.HasSuffix(trimmed, `"`) {
			continue
		}
		if strings.Count(trimmed, `"`) != 2 {
			continue
		}
		inner := trimmed[1 : len(trimmed)-1]
		if strings.ContainsRune(inner, ';') {
			lines[i] = inner
		}
	}
	return strings.Join(lines, "\n")
}

func cleanField(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	return s
}

func isBlankRow(fields []string) bool {
	for _, f := range fields {
		if f != "" {
			return false
		}
	}
	return true
}
