package statement

import (
	"invoicekit/internal/columns"
	"invoicekit/internal/money"
	"invoicekit/pkg/models"
)

// ShapedExtra is an extra deliverable sub-row with its own visible cells.
// VAT is set only when the extra's ShowVAT flag is on.
type ShapedExtra struct {
	Cells []columns.Cell `json:"cells"`
	Span  int            `json:"span"`
	VAT   string         `json:"vat,omitempty"`
}

// ShapedRow is a statement row reduced to its visible cells.
type ShapedRow struct {
	InvoiceNumber string         `json:"invoiceNumber,omitempty"`
	InvoiceDate   string         `json:"invoiceDate,omitempty"`
	ItemIndex     int            `json:"itemIndex"`
	Cells         []columns.Cell `json:"cells"`
	Span          int            `json:"span"`
	Extras        []ShapedExtra  `json:"extras,omitempty"`
}

// ShapeRows masks every row of stmt using its source invoice's column
// toggles, and every extra using the extra's own toggles. Amounts are copied
// as stored; nothing is recomputed or excluded from the statement total.
func ShapeRows(stmt *models.Statement, resolver *columns.Resolver) []ShapedRow {
	out := make([]ShapedRow, 0, len(stmt.Rows))
	for _, row := range stmt.Rows {
		if row.Item == nil {
			continue
		}

		var set columns.Set
		if row.Invoice != nil {
			set = resolver.ForInvoice(row.Invoice)
		} else {
			set = resolver.Resolve(nil)
		}

		shaped := ShapedRow{
			InvoiceNumber: row.InvoiceNumber,
			InvoiceDate:   row.InvoiceDate,
			ItemIndex:     row.ItemIndex,
			Cells:         set.Filter(columns.LineFields(row.Item)),
			Span:          set.Count(),
		}

		for j := range row.Item.ExtraDeliverables {
			extra := &row.Item.ExtraDeliverables[j]
			es := resolver.ForExtra(extra)
			se := ShapedExtra{
				Cells: es.Filter(columns.ExtraFields(extra)),
				Span:  es.Count(),
			}
			if extra.ShowVAT {
				se.VAT = money.Normalize(extra.VAT)
			}
			shaped.Extras = append(shaped.Extras, se)
		}

		out = append(out, shaped)
	}
	return out
}
