package csvkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapHeaders(t *testing.T) {
	spellings := FieldSpellings{
		"guestName":     {"guest name", "name"},
		"reservationId": {"reference number", "reservation id"},
		"amount":        {"amount"},
	}

	t.Run("case and whitespace insensitive", func(t *testing.T) {
		header := RawRow{"Reference Number", " guest Name ", "AMOUNT"}
		cols := MapHeaders(header, spellings)
		assert.Equal(t, 0, cols["reservationId"])
		assert.Equal(t, 1, cols["guestName"])
		assert.Equal(t, 2, cols["amount"])
	})

	t.Run("first spelling in declaration order wins", func(t *testing.T) {
		header := RawRow{"name", "guest name"}
		cols := MapHeaders(header, spellings)
		assert.Equal(t, 1, cols["guestName"])
	})

	t.Run("unmatched fields are absent", func(t *testing.T) {
		cols := MapHeaders(RawRow{"amount"}, spellings)
		_, ok := cols["guestName"]
		assert.False(t, ok)
		assert.Equal(t, 0, cols["amount"])
	})
}

func TestUnclaimedColumns(t *testing.T) {
	spellings := FieldSpellings{"amount": {"amount"}}
	header := RawRow{"Amount", "Commission", " Payout date "}

	unclaimed := UnclaimedColumns(header, spellings)
	assert.Equal(t, []string{"Commission", "Payout date"}, unclaimed)
}

func TestField(t *testing.T) {
	cols := map[string]int{"amount": 1, "note": 5}
	row := RawRow{"x", " 110.00 "}

	assert.Equal(t, "110.00", Field(row, cols, "amount"))
	assert.Equal(t, "", Field(row, cols, "note"), "index past row end")
	assert.Equal(t, "", Field(row, cols, "missing"), "unmapped field")
}
