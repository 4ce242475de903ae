package models

import "time"

// PassengerRow is one line item of one invoice, flattened into a statement.
// Invoice and Item point into the source invoices and must not be modified.
type PassengerRow struct {
	Invoice       *Invoice  `json:"-"`
	Item          *LineItem `json:"item"`
	ItemIndex     int       `json:"itemIndex"`
	InvoiceNumber string    `json:"invoiceNumber,omitempty"`
	InvoiceDate   string    `json:"invoiceDate,omitempty"`
}

// DateRange holds the display strings for the statement period.
type DateRange struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// Statement aggregates several issued invoices for one client. It is derived
// fresh from the chosen invoices every time and never written back into them.
type Statement struct {
	ID           string         `json:"id"`
	Rows         []PassengerRow `json:"rows"`
	Total        string         `json:"statementTotal"`
	TotalInWords string         `json:"statementTotalInWords"`
	Currency     string         `json:"currency"`
	BilledToName string         `json:"billedToName,omitempty"`
	DateRange    DateRange      `json:"dateRange"`
	BankDetails  []BankDetail   `json:"bankDetails,omitempty"`
	GeneratedAt  time.Time      `json:"generatedAt"`
}
