package invoice

import (
	"github.com/shopspring/decimal"

	"invoicekit/internal/money"
	"invoicekit/pkg/models"
)

// Totals holds the invoice-level figures derived from the line items and the
// discount, tax and shipping settings.
type Totals struct {
	SubTotal     string `json:"subTotal"`
	Discount     string `json:"discount"`
	Tax          string `json:"tax"`
	Shipping     string `json:"shipping"`
	Total        string `json:"totalAmount"`
	TotalInWords string `json:"totalAmountInWords"`
}

// SubTotal sums every line total in list order. Unparsable totals count as zero.
func SubTotal(items []models.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(money.Coerce(item.Total))
	}
	return money.Round(sum)
}

// ChargeValue resolves a charge against the running value it applies to.
// A percentage charge is a share of running; anything else is a flat amount.
func ChargeValue(c models.Charge, running decimal.Decimal) decimal.Decimal {
	if !c.Amount.Present() {
		return decimal.Zero
	}
	if c.AmountType == models.ChargePercentage {
		return money.Percent(running, c.Amount.Decimal())
	}
	return money.Round(c.Amount.Decimal())
}

// CalculateTotals applies the cascade discount → tax → shipping to the
// subtotal of items. Each step sees the running value left by the previous one.
func CalculateTotals(items []models.LineItem, discount, tax, shipping models.Charge, currency string) Totals {
	sub := SubTotal(items)

	running := sub
	d := ChargeValue(discount, running)
	running = running.Sub(d)

	t := ChargeValue(tax, running)
	running = running.Add(t)

	s := ChargeValue(shipping, running)
	running = money.Round(running.Add(s))

	return Totals{
		SubTotal:     money.Format(sub),
		Discount:     money.Format(d),
		Tax:          money.Format(t),
		Shipping:     money.Format(s),
		Total:        money.Format(running),
		TotalInWords: AmountInWords(running, currency),
	}
}

// InvoiceTotals is CalculateTotals over the invoice's own items and settings.
func InvoiceTotals(inv *models.Invoice, fallbackCurrency string) Totals {
	return CalculateTotals(inv.Items, inv.Discount, inv.Tax, inv.Shipping,
		money.NormalizeCurrency(inv.Currency, fallbackCurrency))
}
