package statement

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"invoicekit/internal/money"
	"invoicekit/pkg/models"
)

// dateLayouts are the accepted invoiceDate formats, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"02/01/2006",
}

// ParseInvoiceDate parses an invoice date. ok is false for an empty or
// unrecognised value.
func ParseInvoiceDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// compareInvoiceDates orders by invoice date ascending. An invoice without a
// usable date sorts before every dated one; two undated invoices are equal.
func compareInvoiceDates(a, b *models.Invoice) int {
	ta, okA := ParseInvoiceDate(a.InvoiceDate)
	tb, okB := ParseInvoiceDate(b.InvoiceDate)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return -1
	case !okB:
		return 1
	}
	return ta.Compare(tb)
}

// SortInvoices returns a copy of invoices stably sorted by date. Invoices with
// equal dates keep their relative input order.
func SortInvoices(invoices []*models.Invoice) []*models.Invoice {
	sorted := slices.Clone(invoices)
	slices.SortStableFunc(sorted, compareInvoiceDates)
	return sorted
}

// Flatten emits one row per line item: invoices in the given order, items in
// their original order within each invoice.
func Flatten(invoices []*models.Invoice) []models.PassengerRow {
	n := 0
	for _, inv := range invoices {
		n += len(inv.Items)
	}

	rows := make([]models.PassengerRow, 0, n)
	for _, inv := range invoices {
		for i := range inv.Items {
			rows = append(rows, models.PassengerRow{
				Invoice:       inv,
				Item:          &inv.Items[i],
				ItemIndex:     i,
				InvoiceNumber: inv.InvoiceNumber,
				InvoiceDate:   inv.InvoiceDate,
			})
		}
	}
	return rows
}

// Total sums the line totals of rows. Absent or unparsable totals count as zero.
func Total(rows []models.PassengerRow) decimal.Decimal {
	sum := decimal.Zero
	for _, row := range rows {
		if row.Item == nil {
			continue
		}
		sum = sum.Add(money.Coerce(row.Item.Total))
	}
	return money.Round(sum)
}

// aggregate is the statement core. It requires a non-empty invoice list; the
// Service rejects empty requests before getting here.
func aggregate(invoices []*models.Invoice, fallbackCurrency string) ([]models.PassengerRow, string, string) {
	sorted := SortInvoices(invoices)
	rows := Flatten(sorted)
	total := money.Format(Total(rows))
	currency := money.NormalizeCurrency(sorted[0].Currency, fallbackCurrency)
	return rows, total, currency
}
