package dialect

import (
	"strings"

	"github.com/staybooks/staybooks/internal/domain/ingest/coerce"
	"github.com/staybooks/staybooks/internal/domain/ingest/csvkit"
	"github.com/staybooks/staybooks/internal/domain/reservation"
)

// airbnbDialect handles the Airbnb transaction/reservation export.
// Occupancy counts default to zero when the cell is blank or garbled;
// the earnings cell is parsed leniently because Airbnb's currency
// symbols regularly arrive as mis-decoded byte sequences.
type airbnbDialect struct{}

func (airbnbDialect) spellings() csvkit.FieldSpellings {
	return csvkit.FieldSpellings{
		"type":          {"type"},
		"reservationId": {"confirmation code", "reservation code"},
		"guestName":     {"guest", "guest name"},
		"checkInDate":   {"start date", "check-in", "arrival"},
		"checkOutDate":  {"end date", "checkout", "departure"},
		"amountGross":   {"earnings", "gross earnings", "amount", "paid out"},
		"currency":      {"currency"},
		"propertyName":  {"listing", "listing name", "property"},
		"status":        {"status"},
		"adults":        {"# of adults", "number of adults", "adults"},
		"children":      {"# of children", "number of children", "children"},
		"infants":       {"# of infants", "number of infants", "infants"},
		"nights":        {"# of nights", "number of nights", "nights"},
	}
}

func (airbnbDialect) normalize(row csvkit.RawRow, cols map[string]int) (*reservation.Unified, *rowProblem) {
	if typ := csvkit.Field(row, cols, "type"); typ != "" && !strings.EqualFold(typ, "Reservation") {
		return nil, skip("type is not Reservation")
	}
	if status := csvkit.Field(row, cols, "status"); reservation.IsCancelledStatus(status) {
		return nil, skip("cancelled reservation")
	}

	checkIn, err := coerce.Date(csvkit.Field(row, cols, "checkInDate"))
	if err != nil {
		return nil, failf("start date: %v", err)
	}
	checkOut, err := coerce.Date(csvkit.Field(row, cols, "checkOutDate"))
	if err != nil {
		return nil, failf("end date: %v", err)
	}

	amount := coerce.Amount(csvkit.Field(row, cols, "amountGross"))
	if amount.Sign() <= 0 {
		return nil, skip("refund/cancellation (non-positive amount)")
	}

	guest := csvkit.Field(row, cols, "guestName")
	if guest == "" {
		guest = reservation.PlaceholderGuest(reservation.SourceAirbnb)
	}

	nights := coerce.Int(csvkit.Field(row, cols, "nights"))
	if nights <= 0 {
		nights = coerce.NightsBetween(checkIn, checkOut)
	}

	return &reservation.Unified{
		PropertyName:      csvkit.Field(row, cols, "propertyName"),
		GuestName:         guest,
		ArrivalDate:       checkIn,
		DepartureDate:     checkOut,
		Nights:            nights,
		GrossAmount:       amount,
		Currency:          normalizeCurrency(csvkit.Field(row, cols, "currency")),
		Source:            reservation.SourceAirbnb,
		ReservationNumber: csvkit.Field(row, cols, "reservationId"),
		Adults:            coerce.Int(csvkit.Field(row, cols, "adults")),
		Children:          coerce.Int(csvkit.Field(row, cols, "children")),
		Infants:           coerce.Int(csvkit.Field(row, cols, "infants")),
	}, nil
}
