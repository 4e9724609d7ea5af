// Package coerce parses the heterogeneous date and amount notations found
// across booking platform exports into canonical values.
package coerce

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// dayFirstLayouts are tried in order after the ISO passthrough. The slash
// and dot forms are explicitly day-first; these exports never use the
// US month-first convention.
var dayFirstLayouts = []string{
	"2 Jan 2006",
	"02 Jan 2006",
	"2 January 2006",
	"02/01/2006",
	"2/1/2006",
	"02.01.2006",
	"2.1.2006",
}

// genericLayouts are the last-resort formats.
var genericLayouts = []string{
	"2006/01/02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"Jan 2, 2006",
	"January 2, 2006",
}

// Date parses flexible date text into an ISO YYYY-MM-DD string.
// Attempted in order: ISO passthrough, "D MMM YYYY", day-first
// DD/MM/YYYY and DD.MM.YYYY, then generic formats.
func Date(text string) (string, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return "", fmt.Errorf("empty date")
	}

	if isoDatePattern.MatchString(s) {
		if _, err := time.Parse(isoDate, s); err == nil {
			return s, nil
		}
		return "", fmt.Errorf("invalid date %q", text)
	}

	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(isoDate), nil
		}
	}
	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(isoDate), nil
		}
	}

	return "", fmt.Errorf("unrecognized date format %q", text)
}

// MustTime converts an ISO date string produced by Date back into a
// time.Time. Invalid input yields the zero time.
func MustTime(iso string) time.Time {
	t, _ := time.Parse(isoDate, iso)
	return t
}

// NightsBetween computes max(1, ceil(checkout-checkin in days)) from two
// ISO dates. Unparsable input yields 1.
func NightsBetween(checkInISO, checkOutISO string) int {
	in, errIn := time.Parse(isoDate, checkInISO)
	out, errOut := time.Parse(isoDate, checkOutISO)
	if errIn != nil || errOut != nil {
		return 1
	}
	hours := out.Sub(in).Hours()
	nights := int(hours / 24)
	if hours > float64(nights)*24 {
		nights++
	}
	if nights < 1 {
		return 1
	}
	return nights
}
