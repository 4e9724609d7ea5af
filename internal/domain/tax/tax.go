// Package tax decomposes gross payment amounts into net, VAT and
// municipal city tax under the Austrian short-stay regime. Two formulas
// coexist because the accounting export and the guest invoice decompose
// differently; the difference is intentional and must not be unified.
package tax

import "github.com/shopspring/decimal"

// Default rates for the supported regime: 10 % VAT on accommodation and
// 3.2 % Viennese Ortstaxe (combined divisor 1.132).
var (
	DefaultVATRate     = decimal.NewFromFloat(0.10)
	DefaultCityTaxRate = decimal.NewFromFloat(0.032)
)

// CityTaxMode selects how Formula B computes the city tax base.
type CityTaxMode string

const (
	// Simple computes city tax on the gross amount.
	Simple CityTaxMode = "SIMPLE"
	// ViennaMethod computes city tax on the net amount.
	ViennaMethod CityTaxMode = "VIENNA_METHOD"
)

// Breakdown holds a decomposed amount, every component rounded to two
// decimals. Total equals Gross for Formula A; Formula B adds the city
// tax on top.
type Breakdown struct {
	Net     decimal.Decimal
	VAT     decimal.Decimal
	CityTax decimal.Decimal
	Gross   decimal.Decimal
	Total   decimal.Decimal
}

// ComputeBreakdownA decomposes a gross amount for the accounting export:
// both taxes are inside the gross, and a reconciliation step folds the
// rounding residue into the VAT figure so that
// Net + VAT + CityTax == Gross holds exactly after rounding.
// The caller guarantees gross > 0.
func ComputeBreakdownA(gross, vatRate, cityTaxRate decimal.Decimal) Breakdown {
	one := decimal.NewFromInt(1)
	divisor := one.Add(vatRate).Add(cityTaxRate)

	net := gross.Div(divisor).Round(2)
	vat := gross.Div(divisor).Mul(vatRate).Round(2)
	cityTax := gross.Div(divisor).Mul(cityTaxRate).Round(2)
	roundedGross := gross.Round(2)

	difference := roundedGross.Sub(net.Add(vat).Add(cityTax))
	vat = vat.Add(difference)

	return Breakdown{
		Net:     net,
		VAT:     vat,
		CityTax: cityTax,
		Gross:   roundedGross,
		Total:   roundedGross,
	}
}

// ComputeBreakdownB decomposes a gross amount for guest invoices: only
// VAT is inside the gross, and the city tax is added on top of it. Each
// component is rounded independently with no reconciliation step; the
// components therefore may not sum exactly, which downstream consumers
// of this formula accept. The caller guarantees gross > 0.
func ComputeBreakdownB(gross, vatRate, cityTaxRate decimal.Decimal, mode CityTaxMode) Breakdown {
	one := decimal.NewFromInt(1)

	net := gross.Div(one.Add(vatRate))
	vat := gross.Sub(net)

	var cityTax decimal.Decimal
	if mode == ViennaMethod {
		cityTax = net.Mul(cityTaxRate)
	} else {
		cityTax = gross.Mul(cityTaxRate)
	}
	total := gross.Add(cityTax)

	return Breakdown{
		Net:     net.Round(2),
		VAT:     vat.Round(2),
		CityTax: cityTax.Round(2),
		Gross:   gross.Round(2),
		Total:   total.Round(2),
	}
}
