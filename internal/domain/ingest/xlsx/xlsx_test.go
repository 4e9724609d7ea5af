package xlsx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/staybooks/staybooks/internal/domain/ingest/dialect"
)

func buildWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestRows(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"Reference number", "Amount"},
		{"12345678", "110.00"},
		{"", ""},
		{" 87654321 ", "90.00"},
	})

	rows, err := Rows(data)
	require.NoError(t, err)
	require.Len(t, rows, 3, "blank rows are dropped")
	assert.Equal(t, "87654321", rows[2][0], "cells are trimmed")
}

func TestParseReservationExport(t *testing.T) {
	t.Run("sheet rows run through the dialect pipeline", func(t *testing.T) {
		data := buildWorkbook(t, [][]any{
			{"Reference number", "Guest name", "Check-in", "Checkout", "Amount", "Property name"},
			{"12345678", "Jane Doe", "2025-06-30", "2025-07-02", "110.00", "Belvedere Garden Suite"},
		})

		result, err := ParseReservationExport(data, dialect.BookingReservations, dialect.Options{})
		require.NoError(t, err)
		require.Len(t, result.Valid, 1)
		assert.Equal(t, "12345678", result.Valid[0].ReservationNumber)
		assert.Equal(t, 2, result.Valid[0].Nights)
	})

	t.Run("header-only sheet errors", func(t *testing.T) {
		data := buildWorkbook(t, [][]any{{"Reference number", "Amount"}})
		_, err := ParseReservationExport(data, dialect.BookingReservations, dialect.Options{})
		assert.Error(t, err)
	})

	t.Run("non-xlsx bytes error", func(t *testing.T) {
		_, err := Rows([]byte("not a spreadsheet"))
		assert.Error(t, err)
	})
}
