// Package dialect normalizes the vendor-specific export formats into the
// canonical reservation record. Each dialect contributes a header
// spelling table and a per-row normalizer; the tokenizer and header
// mapper are shared across all of them.
package dialect

import (
	"fmt"
	"regexp"
	"strings"

	money "github.com/Rhymond/go-money"

	"github.com/staybooks/staybooks/internal/domain/ingest/csvkit"
	"github.com/staybooks/staybooks/internal/domain/reservation"
)

// Dialect selects the vendor export variant to parse.
type Dialect string

const (
	BookingReservations Dialect = "booking-reservations"
	BookingPayout       Dialect = "booking-payout"
	Airbnb              Dialect = "airbnb"
)

// Options tunes optional per-dialect behavior.
type Options struct {
	// TargetMonth limits the Booking.com payout dialect to reservations
	// whose checkout falls within the given YYYY-MM month. Empty keeps
	// every row. Other dialects ignore it.
	TargetMonth string
}

// rowProblem is the outcome of a normalizer rejecting one row.
type rowProblem struct {
	reason string
	policy bool
}

func skip(reason string) *rowProblem { return &rowProblem{reason: reason, policy: true} }

func failf(format string, args ...any) *rowProblem {
	return &rowProblem{reason: fmt.Sprintf(format, args...)}
}

// normalizer turns one tokenized row into a reservation or a rowProblem.
type normalizer interface {
	spellings() csvkit.FieldSpellings
	normalize(row csvkit.RawRow, cols map[string]int) (*reservation.Unified, *rowProblem)
}

func normalizerFor(d Dialect, opts Options) (normalizer, error) {
	switch d {
	case BookingReservations:
		return bookingReservationsDialect{}, nil
	case BookingPayout:
		return bookingPayoutDialect{targetMonth: opts.TargetMonth}, nil
	case Airbnb:
		return airbnbDialect{}, nil
	default:
		return nil, fmt.Errorf("unknown dialect %q", d)
	}
}

// ParseReservationExport tokenizes raw export bytes and normalizes every
// data row. Row-level problems land in the result's Invalid slice; only
// file-structural problems (unknown dialect, fewer than two rows) return
// an error.
func ParseReservationExport(data []byte, d Dialect, opts Options) (*reservation.ParseResult, error) {
	rows, err := csvkit.Tokenize(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s export: %w", d, err)
	}
	return ParseRows(rows, d, opts)
}

// ParseRows normalizes already-tokenized rows (the XLSX path feeds sheet
// rows through here). rows[0] must be the header row.
func ParseRows(rows []csvkit.RawRow, d Dialect, opts Options) (*reservation.ParseResult, error) {
	if len(rows) < 2 {
		return nil, csvkit.ErrTooFewRows
	}
	n, err := normalizerFor(d, opts)
	if err != nil {
		return nil, err
	}

	cols := csvkit.MapHeaders(rows[0], n.spellings())
	result := reservation.NewParseResult()
	for _, row := range rows[1:] {
		u, problem := n.normalize(row, cols)
		switch {
		case problem != nil && problem.policy:
			result.AddSkipped(row, problem.reason)
		case problem != nil:
			result.AddInvalid(row, problem.reason)
		default:
			result.AddValid(*u)
		}
	}
	return result, nil
}

// Diagnostics describes how a file's header was interpreted, for the
// optional inspect entry point.
type Diagnostics struct {
	Delimiter rune
	Mapped    map[string]int
	Unclaimed []string
	RowCount  int
}

// Inspect reports the detected delimiter and header mapping without
// normalizing any rows.
func Inspect(data []byte, d Dialect) (*Diagnostics, error) {
	text := string(data)
	delim := csvkit.DetectDelimiter(text)
	rows, err := csvkit.TokenizeWith(text, delim)
	if err != nil {
		return nil, err
	}
	n, err := normalizerFor(d, Options{})
	if err != nil {
		return nil, err
	}
	return &Diagnostics{
		Delimiter: delim,
		Mapped:    csvkit.MapHeaders(rows[0], n.spellings()),
		Unclaimed: csvkit.UnclaimedColumns(rows[0], n.spellings()),
		RowCount:  len(rows) - 1,
	}, nil
}

// currencyToken matches ISO codes and symbols embedded in combined price
// strings like "EUR 110.00" or "€110,00".
var currencyToken = regexp.MustCompile(`(?i)\b(EUR|USD|GBP|CHF|CZK|HUF|PLN|SEK|DKK|NOK)\b|[€$£]`)

var symbolCurrencies = map[string]string{
	"€": "EUR",
	"$": "USD",
	"£": "GBP",
}

// extractCurrency pulls a currency out of free text, defaulting to EUR.
// The result is validated against the ISO-4217 registry so a stray match
// never produces an unknown code.
func extractCurrency(text string) string {
	match := currencyToken.FindString(text)
	if match == "" {
		return money.EUR
	}
	code, ok := symbolCurrencies[match]
	if !ok {
		code = strings.ToUpper(match)
	}
	if money.GetCurrency(code) == nil {
		return money.EUR
	}
	return code
}

// normalizeCurrency validates an explicit currency cell, falling back to
// EUR for blank or unknown values.
func normalizeCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || money.GetCurrency(code) == nil {
		return money.EUR
	}
	return code
}
