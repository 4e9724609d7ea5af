package reconcile

import (
	"fmt"

	"github.com/staybooks/staybooks/internal/domain/ingest/coerce"
	"github.com/staybooks/staybooks/internal/domain/ingest/csvkit"
	"github.com/staybooks/staybooks/internal/domain/ingest/dialect"
	"github.com/staybooks/staybooks/internal/domain/reservation"
)

// ledgerSpellings covers the header variants of the exported BMD list.
var ledgerSpellings = csvkit.FieldSpellings{
	"voucherNumber": {"belegnr", "belegnummer", "voucher number", "voucher"},
	"amount":        {"betrag", "amount", "brutto"},
	"memo":          {"text", "buchungstext", "memo", "beschreibung"},
	"date":          {"belegdatum", "belegdat", "datum", "date"},
}

// Result is the merged outcome of a paired ledger+reservations parse.
type Result struct {
	*reservation.ParseResult
	Match MatchSummary
}

// ParseLedgerAndReservations parses the two files of the reconciliation
// format and merges them. The reservations file uses the Booking.com
// reservation dialect; the ledger has its own spelling table. File-level
// structural problems return an error; everything else degrades into the
// result's Invalid slice and match summary.
func ParseLedgerAndReservations(ledgerData, reservationData []byte) (*Result, error) {
	ledgerRows, err := csvkit.Tokenize(string(ledgerData))
	if err != nil {
		return nil, fmt.Errorf("ledger file: %w", err)
	}

	reservations, err := dialect.ParseReservationExport(reservationData, dialect.BookingReservations, dialect.Options{})
	if err != nil {
		return nil, fmt.Errorf("reservations file: %w", err)
	}

	result := &Result{ParseResult: reservation.NewParseResult()}
	result.Invalid = append(result.Invalid, reservations.Invalid...)
	result.Summary.Invalid = len(result.Invalid)
	result.Summary.Total = len(result.Invalid)

	cols := csvkit.MapHeaders(ledgerRows[0], ledgerSpellings)
	var ledger []LedgerEntry
	for _, row := range ledgerRows[1:] {
		entry, problem := normalizeLedgerRow(row, cols)
		if problem != nil {
			result.AddInvalid(row, problem.Error())
			continue
		}
		if entry.Amount.Sign() <= 0 {
			result.AddSkipped(row, "refund/cancellation (non-positive amount)")
			continue
		}
		ledger = append(ledger, *entry)
	}

	merged, match := Match(ledger, reservations.Valid)
	for _, r := range merged {
		result.AddValid(r)
	}
	result.Match = match
	return result, nil
}

func normalizeLedgerRow(row csvkit.RawRow, cols map[string]int) (*LedgerEntry, error) {
	amount, err := coerce.AmountStrict(csvkit.Field(row, cols, "amount"))
	if err != nil {
		return nil, fmt.Errorf("ledger amount: %w", err)
	}

	date := ""
	if raw := csvkit.Field(row, cols, "date"); raw != "" {
		date, err = coerce.Date(raw)
		if err != nil {
			return nil, fmt.Errorf("ledger date: %w", err)
		}
	}

	return &LedgerEntry{
		VoucherNumber: csvkit.Field(row, cols, "voucherNumber"),
		Amount:        amount,
		Memo:          csvkit.Field(row, cols, "memo"),
		Date:          date,
	}, nil
}
