// Package money provides decimal coercion and fixed-point serialization for
// monetary values entered as free-form strings.
//
// Every value handled here is user input: a rate typed into a form field, a VAT
// percentage, an extra charge amount. Input may be empty, malformed, or a JSON
// number instead of a string. Nothing in this package fails on such input; the
// worst case is a zero.
package money

import (
	"bytes"
	"encoding/json"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Places is the number of decimal places every monetary output carries.
const Places = 2

// DefaultCurrency is used when neither the data nor the configuration names one.
const DefaultCurrency = "USD"

// Hundred is the divisor for percentage arithmetic.
var Hundred = decimal.NewFromInt(100)

// Amount is a monetary or percentage input kept verbatim as entered.
// The empty Amount means "absent".
type Amount string

// Present reports whether a value was entered at all.
func (a Amount) Present() bool {
	return strings.TrimSpace(string(a)) != ""
}

// Decimal returns the parsed value, or zero if absent or malformed.
func (a Amount) Decimal() decimal.Decimal {
	return Coerce(string(a))
}

// String returns the raw input.
func (a Amount) String() string {
	return string(a)
}

// UnmarshalJSON accepts a JSON string, number or null. Anything else decodes as
// absent rather than failing the surrounding document.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*a = ""
			return nil
		}
		*a = Amount(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		*a = ""
		return nil
	}
	*a = Amount(n.String())
	return nil
}

// MaxIntegerDigits and MaxFractionDigits bound the magnitude and precision
// of a parsed value. Anything outside them is malformed.
const (
	MaxIntegerDigits  = 18
	MaxFractionDigits = 32
)

// maxCoefficientBits is enough for MaxIntegerDigits+MaxFractionDigits digits.
const maxCoefficientBits = 170

// Parse converts s into a decimal. ok is false when s is empty, malformed, or
// beyond MaxIntegerDigits/MaxFractionDigits.
func Parse(s string) (d decimal.Decimal, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if d.IsZero() {
		return decimal.Zero, true
	}
	if !withinBounds(d) {
		return decimal.Zero, false
	}
	return d, true
}

// withinBounds reports whether d can be rounded and formatted without
// expanding an unbounded number of digits.
func withinBounds(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp > MaxIntegerDigits || exp < -MaxFractionDigits {
		return false
	}
	coef := new(big.Int).Abs(d.Coefficient())
	if coef.BitLen() > maxCoefficientBits {
		return false
	}
	return len(coef.String())+int(exp) <= MaxIntegerDigits
}

// Coerce converts s into a decimal, treating empty and malformed input as zero.
func Coerce(s string) decimal.Decimal {
	d, _ := Parse(s)
	return d
}

// Round rounds half away from zero to two places.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Format renders d with exactly two decimal places.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Places)
}

// Percent returns round(base × pct / 100).
func Percent(base, pct decimal.Decimal) decimal.Decimal {
	return Round(base.Mul(pct).Div(Hundred))
}

// Sum adds the coerced values of all inputs.
func Sum(values ...string) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(Coerce(v))
	}
	return total
}

// Normalize reformats a stored value to two places. Unparsable values become "0.00".
func Normalize(s string) string {
	return Format(Round(Coerce(s)))
}

// NormalizeCurrency canonicalizes an ISO 4217 code. An empty or unknown code
// yields fallback, and an empty fallback yields DefaultCurrency.
func NormalizeCurrency(code, fallback string) string {
	if unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code))); err == nil {
		return unit.String()
	}
	if fallback == "" || fallback == code {
		return DefaultCurrency
	}
	return NormalizeCurrency(fallback, DefaultCurrency)
}

// ValidCurrency reports whether code is a recognised ISO 4217 currency.
func ValidCurrency(code string) bool {
	_, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	return err == nil
}
