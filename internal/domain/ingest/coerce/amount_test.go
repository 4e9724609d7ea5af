package coerce

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"110.00", "110"},
		{"110", "110"},
		{"€ 110.00", "110"},
		{"EUR 1,234.56", "1234.56"},
		{"1.234,56", "1234.56"},
		{"1,234,567.89", "1234567.89"},
		{"1.234.567,89", "1234567.89"},
		{"99,90", "99.9"},
		{"-45.50", "-45.5"},
		{"â‚¬ 110.00", "110"}, // mis-decoded euro sign
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got := Amount(tc.in)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s want %s", got, tc.want)
		})
	}

	t.Run("unparsable text yields zero", func(t *testing.T) {
		for _, in := range []string{"", "n/a", "pending", "-"} {
			assert.True(t, Amount(in).IsZero(), "input %q", in)
		}
	})
}

func TestAmountStrict(t *testing.T) {
	t.Run("errors where Amount silently zeroes", func(t *testing.T) {
		for _, in := range []string{"", "n/a", "-"} {
			_, err := AmountStrict(in)
			assert.Error(t, err, "input %q", in)
		}
	})

	t.Run("parses what Amount parses", func(t *testing.T) {
		got, err := AmountStrict("1.234,56")
		require.NoError(t, err)
		assert.Equal(t, "1234.56", got.String())
	})
}

func TestInt(t *testing.T) {
	assert.Equal(t, 2, Int("2"))
	assert.Equal(t, 0, Int(""))
	assert.Equal(t, 0, Int("abc"))
	assert.Equal(t, 3, Int("3.0"))
}
