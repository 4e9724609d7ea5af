package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staybooks/staybooks/internal/domain/reservation"
)

func TestExtractMemoToken(t *testing.T) {
	tests := []struct {
		name       string
		memo       string
		wantNumber string
		wantGuest  string
		wantOK     bool
	}{
		{
			name:       "number guest and source tag",
			memo:       "2251 BEL1 12345678 Jane Doe Booking.com",
			wantNumber: "12345678",
			wantGuest:  "Jane Doe",
			wantOK:     true,
		},
		{
			name:       "no trailing source tag",
			memo:       "98765432 Maria Huber",
			wantNumber: "98765432",
			wantGuest:  "Maria Huber",
			wantOK:     true,
		},
		{
			name:       "number only",
			memo:       "12345678",
			wantNumber: "12345678",
			wantGuest:  "",
			wantOK:     true,
		},
		{
			name:   "short numbers are voucher numbers, not reservations",
			memo:   "2251 Jane Doe Airbnb",
			wantOK: false,
		},
		{
			name:   "alphanumeric tokens never match",
			memo:   "HMABCD1234 Jane Doe Airbnb",
			wantOK: false,
		},
		{
			name:   "empty memo",
			memo:   "",
			wantOK: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tok, ok := extractMemoToken(tc.memo)
			require.Equal(t, tc.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tc.wantNumber, tok.reservationNumber)
			assert.Equal(t, tc.wantGuest, tok.guestName)
		})
	}
}

func TestMatch_Direct(t *testing.T) {
	reservations := []reservation.Unified{
		{ReservationNumber: "12345678", GuestName: "Jane Doe", ArrivalDate: "2025-06-30", DepartureDate: "2025-07-02", GrossAmount: decimal.RequireFromString("105.00"), Source: reservation.SourceBookingCom},
		{ReservationNumber: "87654321", GuestName: "Max Muster", ArrivalDate: "2025-07-01", DepartureDate: "2025-07-03", GrossAmount: decimal.RequireFromString("200.00"), Source: reservation.SourceBookingCom},
	}
	ledger := []LedgerEntry{
		{VoucherNumber: "2251", Amount: decimal.RequireFromString("110.00"), Memo: "2251 12345678 Jane Doe Booking.com", Date: "2025-07-02"},
		{VoucherNumber: "2252", Amount: decimal.RequireFromString("55.00"), Memo: "2252 11111111 Unknown Guest Booking.com", Date: "2025-07-03"},
	}

	merged, summary := Match(ledger, reservations)

	require.Len(t, merged, 2)
	assert.Equal(t, 1, summary.Direct)
	assert.Equal(t, 1, summary.LedgerOnly)

	t.Run("ledger amount wins over the reservation amount", func(t *testing.T) {
		assert.Equal(t, "Jane Doe", merged[0].GuestName)
		assert.True(t, merged[0].GrossAmount.Equal(decimal.RequireFromString("110.00")))
		assert.Equal(t, "2025-06-30", merged[0].ArrivalDate, "reservation dates kept")
	})

	t.Run("unmatched tokens become ledger-only records", func(t *testing.T) {
		assert.Equal(t, "11111111", merged[1].ReservationNumber)
		assert.Equal(t, "Unknown Guest", merged[1].GuestName)
		assert.True(t, merged[1].GrossAmount.Equal(decimal.RequireFromString("55.00")))
		assert.Equal(t, "2025-07-02", merged[1].ArrivalDate, "arrival is the day before the voucher date")
		assert.Equal(t, "2025-07-03", merged[1].DepartureDate)
	})
}

func TestMatch_Sequential(t *testing.T) {
	t.Run("equal counts pair strictly in input order", func(t *testing.T) {
		reservations := []reservation.Unified{
			{GuestName: "A", ArrivalDate: "2025-07-01", DepartureDate: "2025-07-02"},
			{GuestName: "B", ArrivalDate: "2025-07-02", DepartureDate: "2025-07-03"},
			{GuestName: "C", ArrivalDate: "2025-07-03", DepartureDate: "2025-07-04"},
		}
		ledger := []LedgerEntry{
			{Amount: decimal.RequireFromString("100.00"), Memo: "no token here"},
			{Amount: decimal.RequireFromString("200.00"), Memo: "also none"},
			{Amount: decimal.RequireFromString("300.00"), Memo: ""},
		}

		merged, summary := Match(ledger, reservations)

		require.Len(t, merged, 3)
		assert.Equal(t, 3, summary.Sequential)
		assert.Zero(t, summary.Direct)
		for i, want := range []string{"100.00", "200.00", "300.00"} {
			assert.Equal(t, reservations[i].GuestName, merged[i].GuestName)
			assert.True(t, merged[i].GrossAmount.Equal(decimal.RequireFromString(want)))
		}
	})

	t.Run("surplus rows on either side are excluded and counted", func(t *testing.T) {
		reservations := []reservation.Unified{{GuestName: "A"}, {GuestName: "B"}}
		ledger := []LedgerEntry{{Amount: decimal.RequireFromString("100.00")}}

		merged, summary := Match(ledger, reservations)
		assert.Len(t, merged, 1)
		assert.Equal(t, 1, summary.Sequential)
		assert.Equal(t, 0, summary.SurplusLedger)
		assert.Equal(t, 1, summary.SurplusReserved)

		merged, summary = Match(append(ledger, LedgerEntry{Amount: decimal.RequireFromString("1.00")}, LedgerEntry{Amount: decimal.RequireFromString("2.00")}), reservations[:1])
		assert.Len(t, merged, 1)
		assert.Equal(t, 2, summary.SurplusLedger)
	})

	t.Run("missing reservation dates come from the voucher date", func(t *testing.T) {
		merged, _ := Match(
			[]LedgerEntry{{Amount: decimal.RequireFromString("90.00"), Date: "2025-07-02"}},
			[]reservation.Unified{{GuestName: "A"}},
		)
		require.Len(t, merged, 1)
		assert.Equal(t, "2025-07-01", merged[0].ArrivalDate)
		assert.Equal(t, "2025-07-02", merged[0].DepartureDate)
	})
}

func TestParseLedgerAndReservations(t *testing.T) {
	ledgerCSV := "belegnr;betrag;belegdatum;text\n" +
		"2251;110,00;2025-07-02;2251 12345678 Jane Doe Booking.com\n"
	reservationCSV := "Reference number,Guest name,Check-in,Checkout,Amount,Property name\n" +
		"12345678,Jane Doe,2025-06-30,2025-07-02,105.00,Belvedere Garden Suite\n"

	result, err := ParseLedgerAndReservations([]byte(ledgerCSV), []byte(reservationCSV))
	require.NoError(t, err)

	require.Len(t, result.Valid, 1)
	assert.Equal(t, 1, result.Match.Direct)
	r := result.Valid[0]
	assert.Equal(t, "Jane Doe", r.GuestName)
	assert.Equal(t, "Belvedere Garden Suite", r.PropertyName)
	assert.True(t, r.GrossAmount.Equal(decimal.RequireFromString("110.00")), "ledger amount wins, got %s", r.GrossAmount)

	t.Run("garbled ledger amounts land in Invalid", func(t *testing.T) {
		bad := "belegnr;betrag;text\n2251;pending;12345678 Jane\n"
		result, err := ParseLedgerAndReservations([]byte(bad), []byte(reservationCSV))
		require.NoError(t, err)
		require.NotEmpty(t, result.Invalid)
		assert.Contains(t, result.Invalid[0].Reasons[0], "ledger amount")
	})

	t.Run("non-positive ledger amounts are policy skips", func(t *testing.T) {
		negative := "belegnr;betrag;text\n2251;-110,00;12345678 Jane\n2252;110,00;12345678 Jane\n"
		result, err := ParseLedgerAndReservations([]byte(negative), []byte(reservationCSV))
		require.NoError(t, err)
		require.Len(t, result.Valid, 1)
		require.NotEmpty(t, result.Invalid)
		assert.True(t, result.Invalid[0].Policy)
		assert.Contains(t, result.Invalid[0].Reasons[0], "non-positive amount")
	})

	t.Run("header-only ledger is a file-level error", func(t *testing.T) {
		_, err := ParseLedgerAndReservations([]byte("belegnr;betrag;text\n"), []byte(reservationCSV))
		assert.Error(t, err)
	})
}
