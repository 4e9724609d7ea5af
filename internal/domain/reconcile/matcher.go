// Package reconcile pairs exported accounting ledger entries (the BMD
// list) with reservation records. The ledger is the authoritative amount
// source; reservations contribute guest, dates and property. There is no
// guaranteed common key, so matching degrades from memo-token lookup to
// strict sequential pairing and never fails outright.
package reconcile

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/staybooks/staybooks/internal/domain/ingest/coerce"
	"github.com/staybooks/staybooks/internal/domain/reservation"
)

// LedgerEntry is one row of the accounting export.
type LedgerEntry struct {
	VoucherNumber string
	Amount        decimal.Decimal
	Memo          string
	Date          string // ISO YYYY-MM-DD, the voucher date
}

// MatchSummary exposes how the matcher degraded, so callers can review
// batches where the heuristics had to guess.
type MatchSummary struct {
	Direct          int // paired via extracted reservation number
	LedgerOnly      int // ledger entry with token but no reservation hit
	Sequential      int // paired by input order fallback
	SurplusLedger   int // excluded by the sequential fallback
	SurplusReserved int
}

// memoToken is what the memo text yields: the reservation number and the
// guest name that follows it.
type memoToken struct {
	reservationNumber string
	guestName         string
}

// sourceTags terminate the guest-name portion of a ledger memo.
var sourceTags = map[string]bool{
	"booking.com": true,
	"booking":     true,
	"airbnb":      true,
}

// extractMemoToken scans a ledger memo for the first purely numeric token
// of at least 8 digits. Everything after it, up to a trailing source tag,
// is the guest name.
func extractMemoToken(memo string) (memoToken, bool) {
	tokens := strings.Fields(memo)
	for i, tok := range tokens {
		if !isReservationNumber(tok) {
			continue
		}
		rest := tokens[i+1:]
		if len(rest) > 0 && sourceTags[strings.ToLower(rest[len(rest)-1])] {
			rest = rest[:len(rest)-1]
		}
		return memoToken{
			reservationNumber: tok,
			guestName:         strings.Join(rest, " "),
		}, true
	}
	return memoToken{}, false
}

func isReservationNumber(tok string) bool {
	if len(tok) < 8 {
		return false
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Match merges ledger entries with reservation records. When at least
// one memo yields a reservation number the match is direct (misses still
// emit ledger-only records); when none do, entries are paired strictly
// in input order and surplus rows on either side are excluded. Count
// mismatches and missing fields never produce an error.
func Match(ledger []LedgerEntry, reservations []reservation.Unified) ([]reservation.Unified, MatchSummary) {
	tokens := make([]*memoToken, len(ledger))
	anyToken := false
	for i, entry := range ledger {
		if tok, ok := extractMemoToken(entry.Memo); ok {
			tokens[i] = &tok
			anyToken = true
		}
	}

	if anyToken {
		return matchDirect(ledger, tokens, reservations)
	}
	return matchSequential(ledger, reservations)
}

func matchDirect(ledger []LedgerEntry, tokens []*memoToken, reservations []reservation.Unified) ([]reservation.Unified, MatchSummary) {
	byNumber := make(map[string]reservation.Unified, len(reservations))
	for _, r := range reservations {
		if r.ReservationNumber != "" {
			byNumber[r.ReservationNumber] = r
		}
	}

	var (
		merged  []reservation.Unified
		summary MatchSummary
	)
	for i, entry := range ledger {
		tok := tokens[i]
		if tok == nil {
			// No extractable number: keep the entry with ledger-only data.
			merged = append(merged, ledgerOnlyRecord(entry, nil))
			summary.LedgerOnly++
			continue
		}
		if r, ok := byNumber[tok.reservationNumber]; ok {
			// Ledger amount wins; the reservation supplies the rest.
			r.GrossAmount = entry.Amount
			if r.ArrivalDate == "" || r.DepartureDate == "" {
				r.ArrivalDate, r.DepartureDate = datesFromVoucher(entry.Date)
			}
			merged = append(merged, r)
			summary.Direct++
			continue
		}
		merged = append(merged, ledgerOnlyRecord(entry, tok))
		summary.LedgerOnly++
	}
	return merged, summary
}

func matchSequential(ledger []LedgerEntry, reservations []reservation.Unified) ([]reservation.Unified, MatchSummary) {
	n := len(ledger)
	if len(reservations) < n {
		n = len(reservations)
	}

	merged := make([]reservation.Unified, 0, n)
	for i := 0; i < n; i++ {
		r := reservations[i]
		r.GrossAmount = ledger[i].Amount
		if r.ArrivalDate == "" || r.DepartureDate == "" {
			r.ArrivalDate, r.DepartureDate = datesFromVoucher(ledger[i].Date)
		}
		merged = append(merged, r)
	}

	return merged, MatchSummary{
		Sequential:      n,
		SurplusLedger:   len(ledger) - n,
		SurplusReserved: len(reservations) - n,
	}
}

// ledgerOnlyRecord builds a best-effort reservation from ledger data
// alone, with a placeholder guest when the memo yielded no name.
func ledgerOnlyRecord(entry LedgerEntry, tok *memoToken) reservation.Unified {
	guest := reservation.PlaceholderGuest(reservation.SourceBookingCom)
	number := ""
	if tok != nil {
		number = tok.reservationNumber
		if tok.guestName != "" {
			guest = tok.guestName
		}
	}
	arrival, departure := datesFromVoucher(entry.Date)
	return reservation.Unified{
		GuestName:         guest,
		ArrivalDate:       arrival,
		DepartureDate:     departure,
		Nights:            1,
		GrossAmount:       entry.Amount,
		Currency:          "EUR",
		Source:            reservation.SourceBookingCom,
		ReservationNumber: number,
	}
}

// datesFromVoucher derives check-in as the day before the voucher date,
// which the ledger records as the checkout day.
func datesFromVoucher(voucherISO string) (arrival, departure string) {
	t := coerce.MustTime(voucherISO)
	if t.IsZero() {
		return "", ""
	}
	return t.AddDate(0, 0, -1).Format("2006-01-02"), voucherISO
}
