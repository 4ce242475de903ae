package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicekit/internal/money"
	"invoicekit/pkg/models"
)

func TestParseExtra(t *testing.T) {
	extra, err := parseExtra("50:20:Baggage")
	require.NoError(t, err)
	assert.Equal(t, money.Amount("50"), extra.Amount)
	assert.Equal(t, money.Amount("20"), extra.VATPercentage)
	assert.Equal(t, "Baggage", extra.RowName)
	assert.True(t, extra.ShowColumns[models.ColumnAmount])

	extra, err = parseExtra("10:")
	require.NoError(t, err)
	assert.False(t, extra.VATPercentage.Present())

	_, err = parseExtra("10")
	assert.Error(t, err)
}

func TestDecodeInvoices(t *testing.T) {
	invs, err := decodeInvoices([]byte(`{"invoiceNumber":"A","items":[{"rate":100,"vatPercentage":"10"}]}`))
	require.NoError(t, err)
	require.Len(t, invs, 1)
	assert.Equal(t, money.Amount("100"), invs[0].Items[0].Rate)

	invs, err = decodeInvoices([]byte(` [{"invoiceNumber":"A"},{"invoiceNumber":"B"}]`))
	require.NoError(t, err)
	assert.Len(t, invs, 2)

	_, err = decodeInvoices([]byte("  "))
	assert.Error(t, err)
	_, err = decodeInvoices([]byte("{not json"))
	assert.Error(t, err)
}

func TestRecalculateInvoices(t *testing.T) {
	inv := &models.Invoice{
		InvoiceNumber: "A",
		Items: []models.LineItem{
			{Rate: "100", VATPercentage: "10", Total: "5.00"},
		},
	}

	outputs := recalculateInvoices([]*models.Invoice{inv, nil}, "USD", true)
	require.Len(t, outputs, 2)

	first := outputs[0]
	assert.True(t, first.Changed)
	require.NotNil(t, first.Verification)
	assert.True(t, first.Verification.HasDiscrepancy)
	assert.Equal(t, "110.00", inv.Items[0].Total)
	assert.Equal(t, "110.00", inv.TotalAmount)

	assert.Equal(t, "#2", outputs[1].Invoice.InvoiceNumber)
}
