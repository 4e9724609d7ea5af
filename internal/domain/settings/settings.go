// Package settings defines the record shapes the core consumes from the
// external key-value settings store. The store itself (on-disk JSON in
// the production deployment) is outside this module.
package settings

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/staybooks/staybooks/internal/domain/tax"
)

// Property carries the per-apartment invoicing configuration.
type Property struct {
	ID            string
	Name          string
	Code          string
	InvoicePrefix string
	VATRate       decimal.Decimal
	CityTaxRate   decimal.Decimal
	CityTaxMode   tax.CityTaxMode
}

// Company is the issuing operator shown on invoices.
type Company struct {
	Name    string
	Address string
	VATID   string
	IBAN    string
	BIC     string
	Email   string
}

// Store is the external settings collaborator.
type Store interface {
	Property(ctx context.Context, id string) (*Property, error)
	Company(ctx context.Context) (*Company, error)
}
