// Package reservation defines the canonical internal record that every
// supported export dialect is normalized into, plus the per-file parse
// result that carries valid rows and rejected rows side by side.
package reservation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Source identifies the booking platform an export came from.
type Source string

const (
	SourceBookingCom Source = "Booking.com"
	SourceAirbnb     Source = "Airbnb"
)

// Unified is the canonical reservation record produced by the dialect
// normalizers. GrossAmount is always positive; rows that fail that
// invariant are diverted to ParseResult.Invalid upstream.
type Unified struct {
	PropertyName      string
	GuestName         string
	ArrivalDate       string // YYYY-MM-DD
	DepartureDate     string // YYYY-MM-DD
	Nights            int
	GrossAmount       decimal.Decimal
	Currency          string // ISO-4217, defaults to EUR
	Source            Source
	ReservationNumber string

	// Occupancy counts, only populated by exports that carry them.
	Adults   int
	Children int
	Infants  int
}

// InvalidRow is a data row that was rejected, together with the reasons.
// Policy marks rows excluded by business rule (cancellation, wrong type,
// non-positive amount) as opposed to rows that failed to parse.
type InvalidRow struct {
	Row     []string
	Reasons []string
	Policy  bool
}

// Summary holds the per-file row counts.
type Summary struct {
	Total   int
	Valid   int
	Invalid int
}

// ParseResult is constructed once per file-parse invocation and is the
// sole channel for reporting per-row failures. Only file-level structural
// problems surface as Go errors from the parse entry points.
type ParseResult struct {
	Valid   []Unified
	Invalid []InvalidRow
	Summary Summary
}

// NewParseResult returns an empty result ready to accumulate rows.
func NewParseResult() *ParseResult {
	return &ParseResult{
		Valid:   make([]Unified, 0, 64),
		Invalid: make([]InvalidRow, 0),
	}
}

// AddValid appends a normalized reservation and bumps the counts.
func (r *ParseResult) AddValid(u Unified) {
	r.Valid = append(r.Valid, u)
	r.Summary.Total++
	r.Summary.Valid++
}

// AddInvalid records a rejected row with a parse failure reason.
func (r *ParseResult) AddInvalid(row []string, reasons ...string) {
	r.Invalid = append(r.Invalid, InvalidRow{Row: row, Reasons: reasons})
	r.Summary.Total++
	r.Summary.Invalid++
}

// AddSkipped records a row excluded by business rule rather than by a
// parse failure. The reason text is prefixed so callers can tell the two
// apart when debugging.
func (r *ParseResult) AddSkipped(row []string, reason string) {
	r.Invalid = append(r.Invalid, InvalidRow{
		Row:     row,
		Reasons: []string{"skipped by policy: " + reason},
		Policy:  true,
	})
	r.Summary.Total++
	r.Summary.Invalid++
}

// String renders the summary for log output.
func (s Summary) String() string {
	return fmt.Sprintf("total=%d valid=%d invalid=%d", s.Total, s.Valid, s.Invalid)
}

// PlaceholderGuest returns the source-specific guest name used when the
// export leaves the guest field blank.
func PlaceholderGuest(src Source) string {
	switch src {
	case SourceAirbnb:
		return "Airbnb Guest"
	default:
		return "Booking.com Guest"
	}
}

// SourceTag is the short tag appended to accounting row texts.
func SourceTag(src Source) string {
	return string(src)
}

// IsCancelledStatus reports whether a status cell marks a cancellation.
func IsCancelledStatus(status string) bool {
	return strings.Contains(strings.ToLower(status), "cancel")
}
