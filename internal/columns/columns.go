// Package columns resolves which logical columns of a line or statement row
// are visible. It never touches amounts; hiding a column only changes what is
// shown, not what is summed.
package columns

import (
	"maps"

	"invoicekit/internal/money"
	"invoicekit/pkg/models"
)

// DefaultLabels are the column headings used when no preference is configured.
var DefaultLabels = map[models.Column]string{
	models.ColumnPassengerName: "Passenger Name",
	models.ColumnRoute:         "Route",
	models.ColumnAirlines:      "Airlines",
	models.ColumnServiceType:   "Service Type",
	models.ColumnAmount:        "Amount",
}

// Config carries the shared column-name preferences. It is passed explicitly
// to every resolver instead of living in package state.
type Config struct {
	Labels map[models.Column]string
}

// DefaultConfig returns a Config with the default labels.
func DefaultConfig() Config {
	return Config{Labels: maps.Clone(DefaultLabels)}
}

// Label returns the configured heading for col, falling back to the default.
func (c Config) Label(col models.Column) string {
	if l, ok := c.Labels[col]; ok && l != "" {
		return l
	}
	return DefaultLabels[col]
}

// Cell is one visible field of a shaped row.
type Cell struct {
	Column models.Column `json:"column"`
	Label  string        `json:"label"`
	Value  string        `json:"value"`
}

// Set is the resolved visibility of every logical column.
type Set struct {
	visible map[models.Column]bool
	labels  Config
}

// Resolver turns toggle maps into visibility sets.
type Resolver struct {
	config Config
}

// NewResolver creates a resolver using cfg for headings.
func NewResolver(cfg Config) *Resolver {
	return &Resolver{config: cfg}
}

// Resolve applies toggles on top of the all-visible default. Columns missing
// from toggles stay visible; unknown keys are ignored.
func (r *Resolver) Resolve(toggles map[models.Column]bool) Set {
	visible := make(map[models.Column]bool, len(models.Columns))
	for _, col := range models.Columns {
		show, ok := toggles[col]
		visible[col] = !ok || show
	}
	return Set{visible: visible, labels: r.config}
}

// ForInvoice resolves the invoice-level toggles, merging in any per-invoice
// column names over the configured headings.
func (r *Resolver) ForInvoice(inv *models.Invoice) Set {
	set := r.Resolve(inv.ShowColumns)
	if len(inv.ColumnNames) > 0 {
		labels := maps.Clone(r.config.Labels)
		if labels == nil {
			labels = make(map[models.Column]string, len(inv.ColumnNames))
		}
		for col, name := range inv.ColumnNames {
			if name != "" {
				labels[col] = name
			}
		}
		set.labels = Config{Labels: labels}
	}
	return set
}

// ForExtra resolves an extra deliverable's own toggles, independent of the
// parent invoice.
func (r *Resolver) ForExtra(extra *models.ExtraDeliverable) Set {
	return r.Resolve(extra.ShowColumns)
}

// Visible reports whether col is shown.
func (s Set) Visible(col models.Column) bool {
	return s.visible[col]
}

// Count returns the number of visible columns, used for layout spanning.
func (s Set) Count() int {
	n := 0
	for _, col := range models.Columns {
		if s.visible[col] {
			n++
		}
	}
	return n
}

// Active returns the visible columns in display order.
func (s Set) Active() []models.Column {
	out := make([]models.Column, 0, len(models.Columns))
	for _, col := range models.Columns {
		if s.visible[col] {
			out = append(out, col)
		}
	}
	return out
}

// Headers returns the labels of the visible columns in display order.
func (s Set) Headers() []string {
	active := s.Active()
	out := make([]string, len(active))
	for i, col := range active {
		out[i] = s.labels.Label(col)
	}
	return out
}

// Filter keeps the fields of visible columns, in display order. A visible
// column missing from fields yields an empty cell so rows stay aligned.
func (s Set) Filter(fields map[models.Column]string) []Cell {
	active := s.Active()
	out := make([]Cell, len(active))
	for i, col := range active {
		out[i] = Cell{Column: col, Label: s.labels.Label(col), Value: fields[col]}
	}
	return out
}

// LineFields maps a line item onto the logical columns.
func LineFields(item *models.LineItem) map[models.Column]string {
	return map[models.Column]string{
		models.ColumnPassengerName: item.PassengerName,
		models.ColumnRoute:         item.Route,
		models.ColumnAirlines:      item.Airline,
		models.ColumnServiceType:   item.ServiceType,
		models.ColumnAmount:        item.Total,
	}
}

// ExtraFields maps an extra deliverable onto the logical columns. The row
// name takes the passenger column and the extra's name the route column.
func ExtraFields(extra *models.ExtraDeliverable) map[models.Column]string {
	return map[models.Column]string{
		models.ColumnPassengerName: extra.RowName,
		models.ColumnRoute:         extra.Name,
		models.ColumnServiceType:   extra.ServiceType,
		models.ColumnAmount:        money.Normalize(extra.Amount.String()),
	}
}
