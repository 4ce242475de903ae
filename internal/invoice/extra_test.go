package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"invoicekit/internal/money"
	"invoicekit/pkg/models"
)

func TestExtraVAT(t *testing.T) {
	tests := []struct {
		name   string
		amount money.Amount
		pct    money.Amount
		want   string
	}{
		{"basic", "50", "20", "10.00"},
		{"zero amount is present", "0", "20", "0.00"},
		{"fractional", "19.99", "15", "3.00"},
		{"missing amount", "", "20", "0.00"},
		{"missing percent", "50", "", "0.00"},
		{"both missing", "", "", "0.00"},
		{"malformed amount", "fifty", "20", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, money.Format(ExtraVAT(tt.amount, tt.pct)))
		})
	}
}

func TestExtraInputsKey(t *testing.T) {
	extras := []models.ExtraDeliverable{
		{Amount: "50", VATPercentage: "20", VAT: "10.00"},
		{Amount: "5", VATPercentage: ""},
	}
	key := ExtraInputsKey(extras)

	extras[0].VAT = "999.00"
	extras[1].ShowVAT = true
	assert.Equal(t, key, ExtraInputsKey(extras), "derived and display fields must not change the key")

	extras[1].VATPercentage = "10"
	assert.NotEqual(t, key, ExtraInputsKey(extras))
}

func TestExtraInputsKeyDistinguishesLists(t *testing.T) {
	one := []models.ExtraDeliverable{{Amount: "1", VATPercentage: "2;3|4"}}
	two := []models.ExtraDeliverable{{Amount: "1", VATPercentage: "2"}, {Amount: "3", VATPercentage: "4"}}
	assert.NotEqual(t, ExtraInputsKey(one), ExtraInputsKey(two))

	quoted := []models.ExtraDeliverable{{Amount: `1"|"2`, VATPercentage: "3"}}
	split := []models.ExtraDeliverable{{Amount: "1", VATPercentage: `2"|"3`}}
	assert.NotEqual(t, ExtraInputsKey(quoted), ExtraInputsKey(split))

	assert.NotEqual(t, ExtraInputsKey(nil), ExtraInputsKey([]models.ExtraDeliverable{{}}))
}

func TestExtraCalculatorRecomputesReplacedList(t *testing.T) {
	calc := NewExtraCalculator()
	extras := []models.ExtraDeliverable{{Amount: "1", VATPercentage: "2;3|4"}}
	key, _ := calc.Recalculate(extras, "")

	replaced := []models.ExtraDeliverable{{Amount: "1", VATPercentage: "2"}, {Amount: "3", VATPercentage: "4"}}
	_, changed := calc.Recalculate(replaced, key)
	assert.True(t, changed)
	assert.Equal(t, "0.02", replaced[0].VAT)
	assert.Equal(t, "0.12", replaced[1].VAT)
}

func TestExtraCalculatorRecalculate(t *testing.T) {
	calc := NewExtraCalculator()
	extras := []models.ExtraDeliverable{
		{Amount: "50", VATPercentage: "20"},
		{Amount: "30"},
	}

	key, changed := calc.Recalculate(extras, "")
	assert.True(t, changed)
	assert.Equal(t, "10.00", extras[0].VAT)
	assert.Equal(t, "0.00", extras[1].VAT)

	// The vat writes above must not look like an input change.
	key2, changed := calc.Recalculate(extras, key)
	assert.False(t, changed)
	assert.Equal(t, key, key2)

	// A stale vat is left alone while the inputs are unchanged.
	extras[0].VAT = "1.00"
	_, changed = calc.Recalculate(extras, key)
	assert.False(t, changed)
	assert.Equal(t, "1.00", extras[0].VAT)

	extras[1].VATPercentage = "10"
	_, changed = calc.Recalculate(extras, key)
	assert.True(t, changed)
	assert.Equal(t, "10.00", extras[0].VAT)
	assert.Equal(t, "3.00", extras[1].VAT)
}

func TestExtraCalculatorApply(t *testing.T) {
	calc := NewExtraCalculator()
	extra := models.ExtraDeliverable{Amount: "50", VATPercentage: "20"}

	assert.True(t, calc.Apply(&extra))
	assert.Equal(t, "10.00", extra.VAT)
	assert.False(t, calc.Apply(&extra))
}
