package sheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"invoicekit/internal/logger"
	"invoicekit/internal/money"
)

const totalMarker = "Total"

// ExportedRow is one row read back from a statement worksheet.
type ExportedRow struct {
	StatementID   string
	InvoiceNumber string
	InvoiceDate   string
	PassengerName string
	Amount        decimal.Decimal
	Currency      string
	IsTotal       bool
}

// ExportSummary checks one exported statement: its line amounts against
// the total row written with it.
type ExportSummary struct {
	StatementID string `json:"statementId"`
	Currency    string `json:"currency"`
	Rows        int    `json:"rows"`
	RowSum      string `json:"rowSum"`
	Total       string `json:"total"`
	HasTotal    bool   `json:"hasTotal"`
	Balanced    bool   `json:"balanced"`
}

// rangeReader is the part of Service the reader needs.
type rangeReader interface {
	ReadRange(ctx context.Context, rangeSpec string) ([][]interface{}, error)
}

// Reader reads exported statements back from Google Sheets
type Reader struct {
	sheets rangeReader
	log    zerolog.Logger
}

// NewReader creates a reader on top of an authenticated sheets service
func NewReader(svc *Service) *Reader {
	return newReader(svc)
}

func newReader(r rangeReader) *Reader {
	return &Reader{
		sheets: r,
		log:    logger.WithComponent("sheets-reader"),
	}
}

// ReadStatementRows reads every data row of the worksheet, skipping the
// header. Rows with too few columns or an unreadable amount are skipped.
func (r *Reader) ReadStatementRows(ctx context.Context, sheetName string) ([]ExportedRow, error) {
	const op = "ReadStatementRows"

	values, err := r.sheets.ReadRange(ctx, sheetName+"!A:I")
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read %s sheet: %w", op, sheetName, err)
	}
	if len(values) == 0 {
		return nil, nil
	}

	var rows []ExportedRow
	for i, raw := range values[1:] {
		rowNum := i + 2 // header plus 1-based rows

		if len(raw) < statementColumns {
			r.log.Warn().
				Int("row", rowNum).
				Int("columns", len(raw)).
				Msg("Skipping statement row with insufficient columns")
			continue
		}

		row, err := parseExportedRow(raw, rowNum)
		if err != nil {
			r.log.Warn().Err(err).Int("row", rowNum).Msg("Failed to parse statement row, skipping")
			continue
		}
		rows = append(rows, row)
	}

	r.log.Info().
		Int("total_rows", len(values)-1).
		Int("parsed_rows", len(rows)).
		Str("sheet", sheetName).
		Msg("Statement rows read successfully")

	return rows, nil
}

// Summaries reads the worksheet and summarizes each exported statement in
// the order it first appears.
func (r *Reader) Summaries(ctx context.Context, sheetName string) ([]ExportSummary, error) {
	rows, err := r.ReadStatementRows(ctx, sheetName)
	if err != nil {
		return nil, err
	}
	return Summarize(rows), nil
}

// Summarize groups rows by statement ID and compares each group's line
// amounts with its total row.
func Summarize(rows []ExportedRow) []ExportSummary {
	type acc struct {
		summary ExportSummary
		sum     decimal.Decimal
		total   decimal.Decimal
	}

	var order []string
	groups := make(map[string]*acc)
	for _, row := range rows {
		g, ok := groups[row.StatementID]
		if !ok {
			g = &acc{summary: ExportSummary{StatementID: row.StatementID, Currency: row.Currency}}
			groups[row.StatementID] = g
			order = append(order, row.StatementID)
		}
		if row.IsTotal {
			g.summary.HasTotal = true
			g.total = row.Amount
			continue
		}
		g.summary.Rows++
		g.sum = g.sum.Add(row.Amount)
	}

	out := make([]ExportSummary, 0, len(order))
	for _, id := range order {
		g := groups[id]
		g.summary.RowSum = money.Format(money.Round(g.sum))
		g.summary.Total = money.Format(money.Round(g.total))
		g.summary.Balanced = g.summary.HasTotal && money.Round(g.sum).Equal(money.Round(g.total))
		out = append(out, g.summary)
	}
	return out
}

func parseExportedRow(row []interface{}, rowNum int) (ExportedRow, error) {
	const op = "parseExportedRow"

	id := getString(row, 0)
	if id == "" {
		return ExportedRow{}, fmt.Errorf("%s: missing statement ID in row %d", op, rowNum)
	}

	amountStr := getString(row, 7)
	amount, err := parseSheetAmount(amountStr)
	if err != nil {
		return ExportedRow{}, fmt.Errorf("%s: invalid amount '%s' in row %d: %w", op, amountStr, rowNum, err)
	}

	return ExportedRow{
		StatementID:   id,
		InvoiceNumber: getString(row, 1),
		InvoiceDate:   getString(row, 2),
		PassengerName: getString(row, 3),
		Amount:        amount,
		Currency:      getString(row, 8),
		IsTotal:       getString(row, 6) == totalMarker && getString(row, 1) == "",
	}, nil
}

// parseSheetAmount parses an amount as rendered by the sheet. Both 1,234.56
// and 1.234,56 are accepted, with an optional currency code or symbol.
func parseSheetAmount(amountStr string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(amountStr)
	if cleaned == "" {
		return decimal.Zero, nil
	}

	negative := strings.HasPrefix(cleaned, "-")
	cleaned = strings.TrimPrefix(cleaned, "-")

	cleaned = strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',':
			return r
		default:
			return -1
		}
	}, cleaned)

	lastDot, lastComma := strings.LastIndex(cleaned, "."), strings.LastIndex(cleaned, ",")
	switch {
	case lastComma > lastDot:
		// comma is the decimal separator
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	default:
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	amount, ok := money.Parse(cleaned)
	if !ok {
		return decimal.Zero, fmt.Errorf("unable to parse amount: %s (cleaned: %s)", amountStr, cleaned)
	}
	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}

// getString safely extracts a string value from a row slice. A leading
// apostrophe written by textCell is dropped.
func getString(row []interface{}, index int) string {
	if index >= len(row) || row[index] == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(fmt.Sprintf("%v", row[index]), "'"))
}
