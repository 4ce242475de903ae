package money

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"integer", "100", "100", true},
		{"decimal", "12.345", "12.345", true},
		{"surrounding whitespace", "  7.5 ", "7.5", true},
		{"zero", "0", "0", true},
		{"empty", "", "0", false},
		{"blank", "   ", "0", false},
		{"letters", "abc", "0", false},
		{"trailing garbage", "12abc", "0", false},
		{"nan", "NaN", "0", false},
		{"exponent", "1e2", "100", true},
		{"largest accepted", "999999999999999999.99", "999999999999999999.99", true},
		{"too many integer digits", "1000000000000000000", "0", false},
		{"huge exponent", "1e999999999", "0", false},
		{"huge negative exponent", "1e-999999999", "0", false},
		{"zero with huge exponent", "0e999999999", "0", true},
		{"too many fraction digits", "0." + strings.Repeat("1", 40), "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestAmountPresent(t *testing.T) {
	assert.True(t, Amount("0").Present())
	assert.True(t, Amount("abc").Present())
	assert.False(t, Amount("").Present())
	assert.False(t, Amount(" \t").Present())
}

func TestAmountUnmarshalJSON(t *testing.T) {
	var v struct {
		Rate   Amount `json:"rate"`
		VAT    Amount `json:"vat"`
		Extra  Amount `json:"extra"`
		Broken Amount `json:"broken"`
	}

	err := json.Unmarshal([]byte(`{"rate":"100.50","vat":10,"extra":null,"broken":{"x":1}}`), &v)
	require.NoError(t, err)
	assert.Equal(t, Amount("100.50"), v.Rate)
	assert.Equal(t, Amount("10"), v.VAT)
	assert.False(t, v.Extra.Present())
	assert.False(t, v.Broken.Present())
}

func TestFormatAndRound(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"110", "110.00"},
		{"0.005", "0.01"},
		{"0.004", "0.00"},
		{"-0.005", "-0.01"},
		{"2.675", "2.68"},
		{"garbage", "0.00"},
		{"1e999999999", "0.00"},
		{"-1e20000000", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestPercent(t *testing.T) {
	got := Percent(decimal.NewFromInt(100), decimal.NewFromInt(10))
	assert.Equal(t, "10.00", Format(got))

	got = Percent(decimal.RequireFromString("33.33"), decimal.RequireFromString("7.5"))
	assert.Equal(t, "2.50", Format(got))
}

func TestSum(t *testing.T) {
	assert.Equal(t, "60.50", Format(Sum("50", "10.5", "", "oops")))
	assert.True(t, Sum().IsZero())
}

func TestNormalizeCurrency(t *testing.T) {
	assert.Equal(t, "EUR", NormalizeCurrency("EUR", "USD"))
	assert.Equal(t, "EUR", NormalizeCurrency(" eur ", "USD"))
	assert.Equal(t, "GBP", NormalizeCurrency("", "GBP"))
	assert.Equal(t, "GBP", NormalizeCurrency("pounds", "GBP"))
	assert.Equal(t, DefaultCurrency, NormalizeCurrency("", ""))
	assert.Equal(t, DefaultCurrency, NormalizeCurrency("zz", "also bad"))
}

func TestValidCurrency(t *testing.T) {
	assert.True(t, ValidCurrency("AED"))
	assert.False(t, ValidCurrency("DOLLARS"))
	assert.False(t, ValidCurrency(""))
}
