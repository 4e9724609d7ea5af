// Package xlsx feeds spreadsheet exports through the same dialect
// normalizers as CSV files. Both platforms offer XLSX downloads of the
// same reports, so the sheet rows are converted to raw rows and handed
// to the shared pipeline.
package xlsx

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/staybooks/staybooks/internal/domain/ingest/csvkit"
	"github.com/staybooks/staybooks/internal/domain/ingest/dialect"
	"github.com/staybooks/staybooks/internal/domain/reservation"
)

// Rows extracts the first sheet of an XLSX file as raw rows, trimming
// cells and dropping blank lines the way the CSV tokenizer does.
func Rows(data []byte) ([]csvkit.RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx file has no sheets")
	}

	sheetRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	rows := make([]csvkit.RawRow, 0, len(sheetRows))
	for _, cells := range sheetRows {
		row := make(csvkit.RawRow, len(cells))
		blank := true
		for i, c := range cells {
			row[i] = strings.TrimSpace(c)
			if row[i] != "" {
				blank = false
			}
		}
		if !blank {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// ParseReservationExport is the XLSX counterpart of the CSV entry point.
func ParseReservationExport(data []byte, d dialect.Dialect, opts dialect.Options) (*reservation.ParseResult, error) {
	rows, err := Rows(data)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, csvkit.ErrTooFewRows
	}
	return dialect.ParseRows(rows, d, opts)
}
