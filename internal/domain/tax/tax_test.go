package tax

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeBreakdownA(t *testing.T) {
	t.Run("decomposes 110 at the default rates", func(t *testing.T) {
		b := ComputeBreakdownA(dec("110.00"), DefaultVATRate, DefaultCityTaxRate)

		assert.True(t, b.Net.Equal(dec("97.17")), "net %s", b.Net)
		assert.True(t, b.VAT.Equal(dec("9.72")), "vat %s", b.VAT)
		assert.True(t, b.CityTax.Equal(dec("3.11")), "city tax %s", b.CityTax)
		assert.True(t, b.Gross.Equal(dec("110.00")))
		assert.True(t, b.Total.Equal(b.Gross), "formula A total is the gross")
	})

	t.Run("decomposes 100 at the default rates", func(t *testing.T) {
		b := ComputeBreakdownA(dec("100.00"), DefaultVATRate, DefaultCityTaxRate)

		assert.True(t, b.Net.Equal(dec("88.34")), "net %s", b.Net)
		assert.True(t, b.CityTax.Equal(dec("2.83")), "city tax %s", b.CityTax)
		sum := b.Net.Add(b.VAT).Add(b.CityTax)
		assert.True(t, sum.Equal(dec("100.00")), "components sum to %s", sum)
	})

	t.Run("components always sum to the gross", func(t *testing.T) {
		gofakeit.Seed(11)

		for i := 0; i < 10000; i++ {
			gross := decimal.NewFromFloat(gofakeit.Price(0.01, 100000)).Round(2)
			vatRate := decimal.NewFromFloat(gofakeit.Float64Range(0, 0.4)).Round(4)
			cityRate := decimal.NewFromFloat(gofakeit.Float64Range(0, 0.1)).Round(4)

			b := ComputeBreakdownA(gross, vatRate, cityRate)

			sum := b.Net.Add(b.VAT).Add(b.CityTax)
			require.True(t, sum.Equal(b.Gross),
				"gross=%s vat=%s city=%s: %s + %s + %s = %s",
				gross, vatRate, cityRate, b.Net, b.VAT, b.CityTax, sum)
		}
	})
}

func TestComputeBreakdownB(t *testing.T) {
	t.Run("simple mode taxes the gross", func(t *testing.T) {
		b := ComputeBreakdownB(dec("110.00"), DefaultVATRate, DefaultCityTaxRate, Simple)

		assert.True(t, b.Net.Equal(dec("100.00")), "net %s", b.Net)
		assert.True(t, b.VAT.Equal(dec("10.00")), "vat %s", b.VAT)
		assert.True(t, b.CityTax.Equal(dec("3.52")), "city tax %s", b.CityTax)
		assert.True(t, b.Total.Equal(dec("113.52")), "total %s", b.Total)
	})

	t.Run("vienna method taxes the net", func(t *testing.T) {
		b := ComputeBreakdownB(dec("110.00"), DefaultVATRate, DefaultCityTaxRate, ViennaMethod)

		assert.True(t, b.CityTax.Equal(dec("3.20")), "city tax %s", b.CityTax)
		assert.True(t, b.Total.Equal(dec("113.20")), "total %s", b.Total)
	})

	t.Run("city tax sits on top of the gross", func(t *testing.T) {
		for _, mode := range []CityTaxMode{Simple, ViennaMethod} {
			b := ComputeBreakdownB(dec("250.00"), DefaultVATRate, DefaultCityTaxRate, mode)
			assert.True(t, b.Total.Equal(b.Gross.Add(b.CityTax)), "mode %s", mode)
			assert.True(t, b.Total.GreaterThan(b.Gross), "mode %s", mode)
		}
	})

	t.Run("sub-cent grosses round per component", func(t *testing.T) {
		// 100.05 / 1.1 = 90.9545..., rounded per component with no
		// reconciliation step.
		b := ComputeBreakdownB(dec("100.05"), DefaultVATRate, DefaultCityTaxRate, Simple)
		assert.True(t, b.Net.Equal(dec("90.95")), "net %s", b.Net)
		assert.True(t, b.VAT.Equal(dec("9.10")), "vat %s", b.VAT)
	})
}
