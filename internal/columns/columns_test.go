package columns

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"invoicekit/pkg/models"
)

func TestResolveDefaultsToVisible(t *testing.T) {
	r := NewResolver(DefaultConfig())

	set := r.Resolve(nil)
	assert.Equal(t, 5, set.Count())
	assert.Equal(t, models.Columns, set.Active())

	set = r.Resolve(map[models.Column]bool{"unknown": false})
	assert.Equal(t, 5, set.Count())
}

func TestResolveToggles(t *testing.T) {
	r := NewResolver(DefaultConfig())
	set := r.Resolve(map[models.Column]bool{
		models.ColumnAirlines:    false,
		models.ColumnServiceType: false,
		models.ColumnRoute:       true,
	})

	assert.Equal(t, 3, set.Count())
	assert.False(t, set.Visible(models.ColumnAirlines))
	assert.True(t, set.Visible(models.ColumnRoute))
	assert.Equal(t, []string{"Passenger Name", "Route", "Amount"}, set.Headers())
}

func TestFilter(t *testing.T) {
	r := NewResolver(DefaultConfig())
	item := &models.LineItem{
		PassengerName: "A. Traveller",
		Route:         "DXB-LHR",
		Airline:       "EK",
		ServiceType:   "Ticket",
		Total:         "110.00",
	}

	cells := r.Resolve(map[models.Column]bool{models.ColumnRoute: false}).Filter(LineFields(item))
	assert.Equal(t, []Cell{
		{Column: models.ColumnPassengerName, Label: "Passenger Name", Value: "A. Traveller"},
		{Column: models.ColumnAirlines, Label: "Airlines", Value: "EK"},
		{Column: models.ColumnServiceType, Label: "Service Type", Value: "Ticket"},
		{Column: models.ColumnAmount, Label: "Amount", Value: "110.00"},
	}, cells)
}

func TestForInvoiceUsesColumnNames(t *testing.T) {
	cfg := Config{Labels: map[models.Column]string{models.ColumnPassengerName: "Guest"}}
	r := NewResolver(cfg)

	inv := &models.Invoice{
		ColumnNames: map[models.Column]string{models.ColumnRoute: "Sector"},
		ShowColumns: map[models.Column]bool{models.ColumnAmount: false},
	}
	set := r.ForInvoice(inv)
	assert.Equal(t, []string{"Guest", "Sector", "Airlines", "Service Type"}, set.Headers())

	// The configured labels are not modified by per-invoice names.
	assert.Equal(t, "Route", cfg.Label(models.ColumnRoute))
}

func TestForExtraIsIndependent(t *testing.T) {
	r := NewResolver(DefaultConfig())
	extra := &models.ExtraDeliverable{
		RowName:     "Seat",
		Name:        "Upgrade",
		Amount:      "25",
		ShowColumns: map[models.Column]bool{models.ColumnRoute: false},
	}

	set := r.ForExtra(extra)
	assert.Equal(t, 4, set.Count())

	cells := set.Filter(ExtraFields(extra))
	assert.Equal(t, "Seat", cells[0].Value)
	assert.Equal(t, models.ColumnAirlines, cells[1].Column)
	assert.Equal(t, "", cells[1].Value)
	assert.Equal(t, "25.00", cells[3].Value)
}
