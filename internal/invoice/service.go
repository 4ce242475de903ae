// Package invoice provides the financial computation core for multi-line
// invoices: per-line VAT and totals, extra deliverable VAT, and the invoice
// level discount → tax → shipping cascade.
//
// Derived fields are recomputed synchronously whenever one of their inputs
// changes, in dependency order:
//
//   - extra deliverable vat, from its amount and VAT percentage
//   - line VAT amount, from rate and VAT percentage
//   - line total, from rate, line VAT and every extra's amount and vat
//   - invoice subtotal, total and total in words, from the line totals and charges
//
// A derived value is only written when it differs from the stored one, and
// recomputation is gated on a key built from the true inputs, never from the
// derived outputs. This keeps a write from re-triggering its own computation.
//
// Malformed numeric input never produces an error. It is coerced to zero.
//
// A line without a rate is not recomputed at all: its previously stored VAT
// and total stay in place.
package invoice

import (
	"maps"

	"github.com/rs/zerolog"

	"invoicekit/internal/logger"
	"invoicekit/internal/money"
	"invoicekit/pkg/models"
)

const zeroAmount = "0.00"

// Calculator recomputes every derived field of an invoice.
type Calculator struct {
	lines            *LineCalculator
	fallbackCurrency string
	log              zerolog.Logger
}

// NewCalculator creates a new invoice calculator. fallbackCurrency is used
// for the total in words when the invoice names no valid currency.
func NewCalculator(fallbackCurrency string) *Calculator {
	return &Calculator{
		lines:            NewLineCalculator(),
		fallbackCurrency: money.NormalizeCurrency(fallbackCurrency, money.DefaultCurrency),
		log:              logger.WithComponent("invoice-calculator"),
	}
}

// Recalculate brings every line and the invoice totals up to date and
// reports whether any field was written.
func (c *Calculator) Recalculate(inv *models.Invoice) (bool, error) {
	if inv == nil {
		return false, NewProcessingError("Recalculate", ErrNilInvoice, "")
	}

	changed := false
	for i := range inv.Items {
		if c.lines.Recalculate(&inv.Items[i], &LineState{}) {
			changed = true
		}
	}
	if c.applyTotals(inv) {
		changed = true
	}

	c.log.Debug().
		Str("invoice", inv.InvoiceNumber).
		Int("items", len(inv.Items)).
		Str("total", inv.TotalAmount).
		Bool("changed", changed).
		Msg("Recalculated invoice")

	return changed, nil
}

// Totals returns the cascade breakdown for inv without modifying it.
func (c *Calculator) Totals(inv *models.Invoice) Totals {
	return InvoiceTotals(inv, c.fallbackCurrency)
}

func (c *Calculator) applyTotals(inv *models.Invoice) bool {
	totals := c.Totals(inv)

	changed := false
	if inv.SubTotal != totals.SubTotal {
		inv.SubTotal = totals.SubTotal
		changed = true
	}
	if inv.TotalAmount != totals.Total {
		inv.TotalAmount = totals.Total
		changed = true
	}
	if inv.TotalAmountInWords != totals.TotalInWords {
		inv.TotalAmountInWords = totals.TotalInWords
		changed = true
	}
	return changed
}

// NewLineItem returns an empty line with the fixed quantity.
func NewLineItem() models.LineItem {
	return models.LineItem{
		Quantity:          LineQuantity,
		VATAmount:         zeroAmount,
		Total:             zeroAmount,
		ExtraDeliverables: []models.ExtraDeliverable{},
	}
}

// NewExtraDeliverable returns an empty extra with every column visible.
func NewExtraDeliverable() models.ExtraDeliverable {
	show := make(map[models.Column]bool, len(models.Columns))
	for _, col := range models.Columns {
		show[col] = true
	}
	return models.ExtraDeliverable{
		VAT:         zeroAmount,
		ShowColumns: show,
	}
}

// Clone returns a deep copy of inv.
func Clone(inv *models.Invoice) *models.Invoice {
	if inv == nil {
		return nil
	}
	out := *inv
	out.Items = make([]models.LineItem, len(inv.Items))
	for i, item := range inv.Items {
		out.Items[i] = item
		if item.ExtraDeliverables != nil {
			out.Items[i].ExtraDeliverables = make([]models.ExtraDeliverable, len(item.ExtraDeliverables))
			for j, e := range item.ExtraDeliverables {
				e.ShowColumns = maps.Clone(e.ShowColumns)
				out.Items[i].ExtraDeliverables[j] = e
			}
		}
	}
	out.ShowColumns = maps.Clone(inv.ShowColumns)
	out.ColumnNames = maps.Clone(inv.ColumnNames)
	return &out
}
