package dialect

import (
	"github.com/staybooks/staybooks/internal/domain/ingest/coerce"
	"github.com/staybooks/staybooks/internal/domain/ingest/csvkit"
	"github.com/staybooks/staybooks/internal/domain/reservation"
)

// bookingReservationsDialect handles the Booking.com reservation list
// export. Header spellings vary between property dashboards, so most
// fields accept several variants.
type bookingReservationsDialect struct{}

func (bookingReservationsDialect) spellings() csvkit.FieldSpellings {
	return csvkit.FieldSpellings{
		"reservationId": {"reference number", "reservation id", "booking id", "book number", "reservation number"},
		"guestName":     {"guest name", "booker name", "guest name(s)", "booked by", "name"},
		"checkInDate":   {"check-in", "checkin", "arrival", "arrival date"},
		"checkOutDate":  {"checkout", "check-out", "departure", "departure date"},
		"amountGross":   {"amount", "final amount", "total payment", "price", "total price", "gross amount"},
		"currency":      {"currency"},
		"propertyName":  {"property name", "property", "accommodation", "home name", "listing"},
		"status":        {"status", "reservation status"},
	}
}

func (d bookingReservationsDialect) normalize(row csvkit.RawRow, cols map[string]int) (*reservation.Unified, *rowProblem) {
	if status := csvkit.Field(row, cols, "status"); reservation.IsCancelledStatus(status) {
		return nil, skip("cancelled reservation")
	}

	checkIn, err := coerce.Date(csvkit.Field(row, cols, "checkInDate"))
	if err != nil {
		return nil, failf("check-in: %v", err)
	}
	checkOut, err := coerce.Date(csvkit.Field(row, cols, "checkOutDate"))
	if err != nil {
		return nil, failf("checkout: %v", err)
	}

	// The price cell may combine currency and amount ("EUR 110.00"), so
	// the amount parse is lenient and the currency comes from an explicit
	// column when present, otherwise from the combined string.
	amountText := csvkit.Field(row, cols, "amountGross")
	amount := coerce.Amount(amountText)
	if amount.Sign() <= 0 {
		return nil, skip("refund/cancellation (non-positive amount)")
	}

	currency := csvkit.Field(row, cols, "currency")
	if currency == "" {
		currency = extractCurrency(amountText)
	} else {
		currency = normalizeCurrency(currency)
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
		Currency:          currency,
		Source:            reservation.SourceBookingCom,
		ReservationNumber: csvkit.Field(row, cols, "reservationId"),
	}, nil
}
