// Package export turns normalized reservations into accounting CSV rows
// or invoice records for the external PDF renderer.
package export

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/staybooks/staybooks/internal/domain/property"
	"github.com/staybooks/staybooks/internal/domain/reservation"
	"github.com/staybooks/staybooks/internal/domain/tax"
	"github.com/staybooks/staybooks/pkg/counter"
)

// Accounts are the ledger account numbers the three rows book against.
type Accounts struct {
	Receivable string // gross revenue row
	Revenue    string // net revenue row
	CityTax    string // city tax row
}

// DefaultAccounts matches the bookkeeping chart the import expects.
func DefaultAccounts() Accounts {
	return Accounts{
		Receivable: "200000",
		Revenue:    "400000",
		CityTax:    "350000",
	}
}

// AccountingRow is one line of the accounting import file. Three rows
// form an immutable triple per reservation.
type AccountingRow struct {
	Account       string
	VoucherNumber int
	VoucherDate   string // YYYYMMDD
	Symbol        string
	Amount        decimal.Decimal
	TaxAmount     decimal.Decimal
	Text          string
}

const voucherSymbol = "AR"

// AccountingOptions tunes the CSV serialization.
type AccountingOptions struct {
	UseCommaDecimal bool
	Accounts        Accounts
	VATRate         decimal.Decimal
	CityTaxRate     decimal.Decimal
}

// DefaultAccountingOptions applies the fixed Austrian rates and the
// default account chart.
func DefaultAccountingOptions() AccountingOptions {
	return AccountingOptions{
		Accounts:    DefaultAccounts(),
		VATRate:     tax.DefaultVATRate,
		CityTaxRate: tax.DefaultCityTaxRate,
	}
}

// BuildAccountingRows emits exactly three rows per reservation in
// departure-date order: the gross receivable, the negative net revenue
// with its negative VAT, and the negative city tax. The voucher counter
// advances once per reservation, not per row.
func BuildAccountingRows(reservations []reservation.Unified, vouchers counter.Voucher, resolver *property.Resolver, opts AccountingOptions) []AccountingRow {
	sorted := make([]reservation.Unified, len(reservations))
	copy(sorted, reservations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DepartureDate < sorted[j].DepartureDate
	})

	rows := make([]AccountingRow, 0, len(sorted)*3)
	for _, r := range sorted {
		voucher := vouchers.Next()
		breakdown := tax.ComputeBreakdownA(r.GrossAmount, opts.VATRate, opts.CityTaxRate)
		date := compactDate(r.DepartureDate)
		text := rowText(voucher, r, resolver)

		rows = append(rows,
			AccountingRow{
				Account:       opts.Accounts.Receivable,
				VoucherNumber: voucher,
				VoucherDate:   date,
				Symbol:        voucherSymbol,
				Amount:        breakdown.Gross,
				TaxAmount:     decimal.Zero,
				Text:          text,
			},
			AccountingRow{
				Account:       opts.Accounts.Revenue,
				VoucherNumber: voucher,
				VoucherDate:   date,
				Symbol:        voucherSymbol,
				Amount:        breakdown.Net.Neg(),
				TaxAmount:     breakdown.VAT.Neg(),
				Text:          text,
			},
			AccountingRow{
				Account:       opts.Accounts.CityTax,
				VoucherNumber: voucher,
				VoucherDate:   date,
				Symbol:        voucherSymbol,
				Amount:        breakdown.CityTax.Neg(),
				TaxAmount:     decimal.Zero,
				Text:          text,
			},
		)
	}
	return rows
}

// GenerateAccountingCSV serializes reservations into the accounting
// import format: an unquoted header, then each row's semicolon-joined
// fields wrapped in a single double-quoted cell. The downstream import
// requires that quoting quirk verbatim.
func GenerateAccountingCSV(reservations []reservation.Unified, startVoucherNumber int, useCommaDecimal bool) string {
	opts := DefaultAccountingOptions()
	opts.UseCommaDecimal = useCommaDecimal
	return GenerateAccountingCSVWith(reservations, counter.NewSequence(startVoucherNumber), property.NewResolver(property.DefaultTable()), opts)
}

// GenerateAccountingCSVWith is the fully injectable variant.
func GenerateAccountingCSVWith(reservations []reservation.Unified, vouchers counter.Voucher, resolver *property.Resolver, opts AccountingOptions) string {
	rows := BuildAccountingRows(reservations, vouchers, resolver, opts)

	var b strings.Builder
	b.WriteString("konto;belegnr;belegdat;symbol;betrag;steuer;text\n")
	for _, row := range rows {
		fields := []string{
			row.Account,
			itoa(row.VoucherNumber),
			row.VoucherDate,
			row.Symbol,
			formatAmount(row.Amount, opts.UseCommaDecimal),
			formatAmount(row.TaxAmount, opts.UseCommaDecimal),
			row.Text,
		}
		b.WriteString(`"` + strings.Join(fields, ";") + `"` + "\n")
	}
	return b.String()
}

// rowText is the fixed concatenation of voucher number, property code,
// optional reservation number, guest name and source tag.
func rowText(voucher int, r reservation.Unified, resolver *property.Resolver) string {
	parts := []string{itoa(voucher), resolver.Resolve(r.PropertyName, r.Source)}
	if r.ReservationNumber != "" {
		parts = append(parts, r.ReservationNumber)
	}
	parts = append(parts, r.GuestName, reservation.SourceTag(r.Source))
	return strings.Join(parts, " ")
}

func formatAmount(d decimal.Decimal, useCommaDecimal bool) string {
	s := d.StringFixed(2)
	if useCommaDecimal {
		s = strings.Replace(s, ".", ",", 1)
	}
	return s
}

func compactDate(iso string) string {
	return strings.ReplaceAll(iso, "-", "")
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
