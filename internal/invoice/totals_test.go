package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"invoicekit/pkg/models"
)

func lines(totals ...string) []models.LineItem {
	items := make([]models.LineItem, len(totals))
	for i, t := range totals {
		items[i] = models.LineItem{Total: t}
	}
	return items
}

func TestSubTotal(t *testing.T) {
	assert.Equal(t, "0.00", SubTotal(nil).StringFixed(2))
	assert.Equal(t, "330.50", SubTotal(lines("110.00", "220.5")).StringFixed(2))
	assert.Equal(t, "110.00", SubTotal(lines("110.00", "", "bad")).StringFixed(2))
}

func TestChargeValue(t *testing.T) {
	running := SubTotal(lines("200.00"))

	tests := []struct {
		name   string
		charge models.Charge
		want   string
	}{
		{"flat", models.Charge{Amount: "15", AmountType: models.ChargeAmount}, "15.00"},
		{"percentage", models.Charge{Amount: "12.5", AmountType: models.ChargePercentage}, "25.00"},
		{"unknown type is flat", models.Charge{Amount: "15", AmountType: "bogus"}, "15.00"},
		{"empty type is flat", models.Charge{Amount: "15"}, "15.00"},
		{"absent", models.Charge{AmountType: models.ChargePercentage}, "0.00"},
		{"malformed", models.Charge{Amount: "lots"}, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChargeValue(tt.charge, running).StringFixed(2))
		})
	}
}

func TestCalculateTotals(t *testing.T) {
	tests := []struct {
		name     string
		items    []models.LineItem
		discount models.Charge
		tax      models.Charge
		shipping models.Charge
		want     Totals
	}{
		{
			name:  "no charges",
			items: lines("110.00", "60.00"),
			want: Totals{
				SubTotal: "170.00", Discount: "0.00", Tax: "0.00", Shipping: "0.00", Total: "170.00",
				TotalInWords: "One Hundred Seventy USD Only",
			},
		},
		{
			name:     "percentages cascade on the running value",
			items:    lines("1000.00"),
			discount: models.Charge{Amount: "10", AmountType: models.ChargePercentage},
			tax:      models.Charge{Amount: "5", AmountType: models.ChargePercentage},
			shipping: models.Charge{Amount: "1", AmountType: models.ChargePercentage},
			want: Totals{
				SubTotal: "1000.00", Discount: "100.00", Tax: "45.00", Shipping: "9.45", Total: "954.45",
				TotalInWords: "Nine Hundred Fifty-Four USD and Forty-Five Cents Only",
			},
		},
		{
			name:     "flat amounts",
			items:    lines("100.00"),
			discount: models.Charge{Amount: "20", AmountType: models.ChargeAmount},
			tax:      models.Charge{Amount: "8"},
			shipping: models.Charge{Amount: "12.5", AmountType: models.ChargeAmount},
			want: Totals{
				SubTotal: "100.00", Discount: "20.00", Tax: "8.00", Shipping: "12.50", Total: "100.50",
				TotalInWords: "One Hundred USD and Fifty Cents Only",
			},
		},
		{
			name:     "discount larger than subtotal",
			items:    lines("10.00"),
			discount: models.Charge{Amount: "15"},
			want: Totals{
				SubTotal: "10.00", Discount: "15.00", Tax: "0.00", Shipping: "0.00", Total: "-5.00",
				TotalInWords: "Minus Five USD Only",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTotals(tt.items, tt.discount, tt.tax, tt.shipping, "USD")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInvoiceTotalsIsDeterministic(t *testing.T) {
	inv := &models.Invoice{
		Currency: "EUR",
		Items:    lines("19.99", "0.01", "80"),
		Tax:      models.Charge{Amount: "19", AmountType: models.ChargePercentage},
	}

	first := InvoiceTotals(inv, "USD")
	second := InvoiceTotals(inv, "USD")
	assert.Equal(t, first, second)
	assert.Equal(t, "119.00", first.Total)
	assert.Equal(t, "One Hundred Nineteen EUR Only", first.TotalInWords)
}
