package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicekit/internal/columns"
	"invoicekit/pkg/models"
)

func TestExtractSpreadsheetID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{"edit url", "https://docs.google.com/spreadsheets/d/1AbC-d_E/edit#gid=0", "1AbC-d_E", false},
		{"bare url", "https://docs.google.com/spreadsheets/d/xyz", "xyz", false},
		{"not a sheet", "https://example.com/doc/1", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractSpreadsheetID(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatementToValues(t *testing.T) {
	items := []models.LineItem{
		{PassengerName: "Ada", Route: "LHR-JFK", Airline: "BA", ServiceType: "Ticket", Total: "110"},
		{PassengerName: "Bob", Total: "55.5"},
	}
	stmt := &models.Statement{
		ID:       "stmt-1",
		Currency: "EUR",
		Total:    "165.50",
		Rows: []models.PassengerRow{
			{Item: &items[0], InvoiceNumber: "INV-1", InvoiceDate: "2024-01-01"},
			{Item: nil, InvoiceNumber: "skipped"},
			{Item: &items[1], InvoiceNumber: "INV-2", InvoiceDate: "2024-02-01", ItemIndex: 0},
		},
	}

	values := statementToValues(stmt)
	require.Len(t, values, 3)

	assert.Equal(t, []interface{}{"'stmt-1", "'INV-1", "'2024-01-01", "'Ada", "'LHR-JFK", "'BA", "'Ticket", "110.00", "'EUR"}, values[0])
	assert.Equal(t, "55.50", values[1][7])
	assert.Equal(t, []interface{}{"'stmt-1", "", "", "", "", "", "Total", "165.50", "'EUR"}, values[2])
	for _, row := range values {
		assert.Len(t, row, statementColumns)
	}
}

func TestStatementToValuesKeepsTextLiteral(t *testing.T) {
	item := models.LineItem{PassengerName: "=SUM(A1)", Route: "+44", Total: "10"}
	stmt := &models.Statement{
		ID:    "stmt-2",
		Total: "10.00",
		Rows:  []models.PassengerRow{{Item: &item, InvoiceNumber: "0012", InvoiceDate: "2024-03-01"}},
	}

	values := statementToValues(stmt)
	require.Len(t, values, 2)
	assert.Equal(t, "'=SUM(A1)", values[0][3])
	assert.Equal(t, "'0012", values[0][1])
	assert.Equal(t, "'+44", values[0][4])
	assert.Equal(t, "10.00", values[0][7])
	assert.Equal(t, "", values[0][5])
	assert.Equal(t, "", values[0][8])
}

func TestHeaderValuesUseLabels(t *testing.T) {
	cfg := columns.DefaultConfig()
	cfg.Labels[models.ColumnPassengerName] = "Traveller"

	headers := headerValues(cfg)
	assert.Len(t, headers, statementColumns)
	assert.Equal(t, "Traveller", headers[3])
	assert.Equal(t, "Amount", headers[7])
}
