package dialect

import (
	"strings"

	"github.com/staybooks/staybooks/internal/domain/ingest/coerce"
	"github.com/staybooks/staybooks/internal/domain/ingest/csvkit"
	"github.com/staybooks/staybooks/internal/domain/reservation"
)

// bookingPayoutDialect handles the Booking.com monthly payout export.
// Unlike the reservation list this format is stable, so the spelling
// table is strict: one exact header name per field.
type bookingPayoutDialect struct {
	targetMonth string // YYYY-MM, empty keeps every row
}

func (bookingPayoutDialect) spellings() csvkit.FieldSpellings {
	return csvkit.FieldSpellings{
		"type":          {"type"},
		"reservationId": {"reference number"},
		"checkInDate":   {"check-in"},
		"checkOutDate":  {"checkout"},
		"guestName":     {"guest name"},
		"status":        {"reservation status"},
		"currency":      {"currency"},
		"amountGross":   {"amount"},
		"propertyName":  {"property name"},
	}
}

func (d bookingPayoutDialect) normalize(row csvkit.RawRow, cols map[string]int) (*reservation.Unified, *rowProblem) {
	if typ := csvkit.Field(row, cols, "type"); !strings.EqualFold(typ, "Reservation") {
		return nil, skip("type is not Reservation")
	}
	if status := csvkit.Field(row, cols, "status"); !strings.EqualFold(status, "ok") {
		return nil, skip("reservation status is not ok")
	}

	checkIn, err := coerce.Date(csvkit.Field(row, cols, "checkInDate"))
	if err != nil {
		return nil, failf("check-in: %v", err)
	}
	checkOut, err := coerce.Date(csvkit.Field(row, cols, "checkOutDate"))
	if err != nil {
		return nil, failf("checkout: %v", err)
	}
	if d.targetMonth != "" && !strings.HasPrefix(checkOut, d.targetMonth) {
		return nil, skip("checkout outside target month " + d.targetMonth)
	}

	// Payout amounts must be numeric; a garbled cell fails the row here
	// rather than silently becoming zero.
	amount, err := coerce.AmountStrict(csvkit.Field(row, cols, "amountGross"))
	if err != nil {
		return nil, failf("amount: %v", err)
	}
	if amount.Sign() <= 0 {
		return nil, skip("refund/cancellation (non-positive amount)")
	}

	guest := csvkit.Field(row, cols, "guestName")
	if guest == "" {
		guest = reservation.PlaceholderGuest(reservation.SourceBookingCom)
	}

	return &reservation.Unified{
		PropertyName:      csvkit.Field(row, cols, "propertyName"),
		GuestName:         guest,
		ArrivalDate:       checkIn,
		DepartureDate:     checkOut,
		Nights:            coerce.NightsBetween(checkIn, checkOut),
		GrossAmount:       amount,
		Currency:          normalizeCurrency(csvkit.Field(row, cols, "currency")),
		Source:            reservation.SourceBookingCom,
		ReservationNumber: csvkit.Field(row, cols, "reservationId"),
	}, nil
}
