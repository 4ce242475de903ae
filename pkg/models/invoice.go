package models

import "invoicekit/internal/money"

// Column identifies one logical column of an invoice line or statement row.
type Column string

const (
	ColumnPassengerName Column = "passengerName"
	ColumnRoute         Column = "route"
	ColumnAirlines      Column = "airlines"
	ColumnServiceType   Column = "serviceType"
	ColumnAmount        Column = "amount"
)

// Columns lists every logical column in display order.
var Columns = []Column{
	ColumnPassengerName,
	ColumnRoute,
	ColumnAirlines,
	ColumnServiceType,
	ColumnAmount,
}

// ChargeType selects how an invoice-level adjustment is interpreted.
type ChargeType string

const (
	ChargeAmount     ChargeType = "amount"
	ChargePercentage ChargeType = "percentage"
)

// ExtraDeliverable is an additional billable sub-charge attached to a line item.
type ExtraDeliverable struct {
	RowName       string          `json:"rowName,omitempty"`
	Name          string          `json:"name,omitempty"`
	ServiceType   string          `json:"serviceType,omitempty"`
	Amount        money.Amount    `json:"amount"`
	VATPercentage money.Amount    `json:"vatPercentage"`
	VAT           string          `json:"vat"`        // derived
	ShowVAT       bool            `json:"showVat"`    // presentation only
	ShowColumns   map[Column]bool `json:"showColumns,omitempty"`
}

// LineItem is one billable row of an invoice, one passenger or service.
type LineItem struct {
	PassengerName     string             `json:"passengerName"`
	Route             string             `json:"route"` // also used as free-form description
	Airline           string             `json:"airline"`
	ServiceType       string             `json:"serviceType"`
	Quantity          int                `json:"quantity"`
	Rate              money.Amount       `json:"rate"`
	VATPercentage     money.Amount       `json:"vatPercentage"`
	VATAmount         string             `json:"vatAmount"` // derived
	Total             string             `json:"total"`     // derived
	ExtraDeliverables []ExtraDeliverable `json:"extraDeliverables"`
}

// Charge is a discount, tax or shipping adjustment on the invoice subtotal.
type Charge struct {
	Amount     money.Amount `json:"amount"`
	AmountType ChargeType   `json:"amountType"`
}

// Invoice is an issued or draft invoice. Persistence is handled elsewhere; this
// package only carries the fields the calculators read or derive.
type Invoice struct {
	ID                 string            `json:"id,omitempty"`
	InvoiceNumber      string            `json:"invoiceNumber,omitempty"`
	BilledTo           string            `json:"billedTo,omitempty"`
	Currency           string            `json:"currency"`
	InvoiceDate        string            `json:"invoiceDate"`
	Items              []LineItem        `json:"items"`
	Discount           Charge            `json:"discount"`
	Tax                Charge            `json:"tax"`
	Shipping           Charge            `json:"shipping"`
	SubTotal           string            `json:"subTotal"`           // derived
	TotalAmount        string            `json:"totalAmount"`        // derived
	TotalAmountInWords string            `json:"totalAmountInWords"` // derived
	ColumnNames        map[Column]string `json:"columnNames,omitempty"`
	ShowColumns        map[Column]bool   `json:"showColumns,omitempty"`
}

// BankDetail is a saved remittance profile that may be attached to a statement.
type BankDetail struct {
	BankName      string `json:"bankName"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	IBAN          string `json:"iban,omitempty"`
	SwiftCode     string `json:"swiftCode,omitempty"`
}
