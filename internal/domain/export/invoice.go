package export

import (
	"context"
	"fmt"
	"sort"
	"time"

	money "github.com/Rhymond/go-money"
	"github.com/google/uuid"

	"github.com/staybooks/staybooks/internal/domain/reservation"
	"github.com/staybooks/staybooks/internal/domain/settings"
	"github.com/staybooks/staybooks/internal/domain/tax"
	"github.com/staybooks/staybooks/pkg/counter"
)

// Invoice is the record handed to the external PDF renderer. Amounts use
// the invoice decomposition (Formula B): VAT inside the gross, city tax
// added on top.
type Invoice struct {
	ID                uuid.UUID
	Number            string
	Company           settings.Company
	PropertyName      string
	PropertyCode      string
	GuestName         string
	ArrivalDate       string
	DepartureDate     string
	Nights            int
	Adults            int
	Children          int
	ReservationNumber string
	Source            reservation.Source
	Currency          string
	Breakdown         tax.Breakdown
	TotalDisplay      string // formatted total including city tax
	IssuedDate        string
}

// PDFRenderer is the external print-to-PDF collaborator.
type PDFRenderer interface {
	Render(ctx context.Context, inv Invoice) ([]byte, error)
}

// Archiver is the external ZIP assembly collaborator.
type Archiver interface {
	Add(name string, data []byte) error
}

// BuildInvoices creates one invoice per reservation in departure-date
// order, numbering them through the injected store under the property's
// prefix. Reservations parsed upstream always carry a positive gross, so
// no further amount validation happens here.
func BuildInvoices(ctx context.Context, reservations []reservation.Unified, prop settings.Property, company settings.Company, store counter.InvoiceStore, issued time.Time) ([]Invoice, error) {
	sorted := make([]reservation.Unified, len(reservations))
	copy(sorted, reservations)
	sortByDeparture(sorted)

	invoices := make([]Invoice, 0, len(sorted))
	for _, r := range sorted {
		seq, err := store.NextInvoiceNumber(ctx, prop.ID, issued.Year(), int(issued.Month()))
		if err != nil {
			return nil, fmt.Errorf("invoice number for %s: %w", prop.ID, err)
		}

		breakdown := tax.ComputeBreakdownB(r.GrossAmount, prop.VATRate, prop.CityTaxRate, prop.CityTaxMode)
		invoices = append(invoices, Invoice{
			ID:                uuid.New(),
			Number:            fmt.Sprintf("%s-%d-%04d", prop.InvoicePrefix, issued.Year(), seq),
			Company:           company,
			PropertyName:      r.PropertyName,
			PropertyCode:      prop.Code,
			GuestName:         r.GuestName,
			ArrivalDate:       r.ArrivalDate,
			DepartureDate:     r.DepartureDate,
			Nights:            r.Nights,
			Adults:            r.Adults,
			Children:          r.Children,
			ReservationNumber: r.ReservationNumber,
			Source:            r.Source,
			Currency:          r.Currency,
			Breakdown:         breakdown,
			TotalDisplay:      displayTotal(breakdown, r.Currency),
			IssuedDate:        issued.Format("2006-01-02"),
		})
	}
	return invoices, nil
}

// displayTotal formats the invoice total with its currency symbol.
func displayTotal(b tax.Breakdown, currency string) string {
	cents := b.Total.Shift(2).Round(0).IntPart()
	return money.New(cents, currency).Display()
}

func sortByDeparture(rs []reservation.Unified) {
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].DepartureDate < rs[j].DepartureDate
	})
}
