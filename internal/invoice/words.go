package invoice

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"invoicekit/internal/money"
)

// AmountInWords renders amount as English words qualified by the currency
// code, e.g. "One Hundred Ten USD and Fifty Cents Only".
func AmountInWords(amount decimal.Decimal, currency string) string {
	amount = money.Round(amount)
	code := money.NormalizeCurrency(currency, money.DefaultCurrency)

	if amount.IsNegative() {
		return "Minus " + AmountInWords(amount.Neg(), code)
	}

	whole := amount.Truncate(0)
	cents := amount.Sub(whole).Mul(money.Hundred).IntPart()

	var b strings.Builder
	b.WriteString(integerToWords(whole.String()))
	b.WriteString(" ")
	b.WriteString(code)
	if cents > 0 {
		b.WriteString(" and ")
		b.WriteString(under1000(cents))
		if cents == 1 {
			b.WriteString(" Cent")
		} else {
			b.WriteString(" Cents")
		}
	}
	b.WriteString(" Only")
	return b.String()
}

// scales names each group of three digits, lowest first.
var scales = []string{
	"", "Thousand", "Million", "Billion", "Trillion", "Quadrillion",
	"Quintillion", "Sextillion", "Septillion", "Octillion", "Nonillion", "Decillion",
}

// integerToWords spells a non-negative integer given as plain decimal digits.
// Numbers beyond the largest scale repeat it, as in "One Thousand Decillion".
func integerToWords(digits string) string {
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return "Zero"
	}

	top := 3 * (len(scales) - 1)
	if len(digits) > top+3 {
		high, low := digits[:len(digits)-top], digits[len(digits)-top:]
		words := integerToWords(high) + " " + scales[len(scales)-1]
		if strings.Trim(low, "0") != "" {
			words += " " + integerToWords(low)
		}
		return words
	}

	var parts []string
	groups := (len(digits) + 2) / 3
	for g := groups - 1; g >= 0; g-- {
		end := len(digits) - 3*g
		start := max(end-3, 0)
		n, _ := strconv.ParseInt(digits[start:end], 10, 64)
		if n == 0 {
			continue
		}
		part := under1000(n)
		if scales[g] != "" {
			part += " " + scales[g]
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " ")
}

func under1000(n int64) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, ones[n/100]+" Hundred")
		n %= 100
	}
	if n > 0 {
		parts = append(parts, under100(n))
	}
	return strings.Join(parts, " ")
}

func under100(n int64) string {
	if n < 20 {
		return ones[n]
	}
	result := tens[n/10]
	if n%10 != 0 {
		result += "-" + ones[n%10]
	}
	return result
}

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}
