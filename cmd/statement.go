package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"invoicekit/internal/columns"
	"invoicekit/internal/logger"
	"invoicekit/internal/sheets"
	"invoicekit/internal/statement"
	"invoicekit/pkg/models"
)

var statementCmd = &cobra.Command{
	Use:   "statement [invoice.json...]",
	Short: "Build a client statement from issued invoices",
	Long: `Aggregate several issued invoices into one statement. Invoices are
ordered by invoice date, every line item becomes a row, and the statement
total is the sum of the stored line totals. The currency is taken from the
earliest invoice.

The JSON output carries the statement and its rows shaped by each invoice's
column visibility. With --export-sheet the rows are also appended to the
worksheet named by STATEMENT_WORKSHEET in GOOGLE_SHEET_URL.

Required environment variables for --export-sheet:
  GOOGLE_SHEET_URL - Spreadsheet URL
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string`,
	Example: `  # Statement for January
  invoicekit statement jan-*.json --billed-to "Acme Travel" --from 2024-01-01 --to 2024-01-31

  # Include one saved bank account and export to Google Sheets
  invoicekit statement invoices.json --bank-details banks.json --bank 0123456789 --export-sheet`,
	Args: cobra.ArbitraryArgs,
	RunE: runStatement,
}

// StatementOutput is the JSON result of the statement command.
type StatementOutput struct {
	Statement *models.Statement     `json:"statement"`
	Rows      []statement.ShapedRow `json:"rows"`
}

func init() {
	rootCmd.AddCommand(statementCmd)

	statementCmd.Flags().String("billed-to", "", "Client name printed on the statement")
	statementCmd.Flags().String("from", "", "Start of the statement period")
	statementCmd.Flags().String("to", "", "End of the statement period")
	statementCmd.Flags().String("bank-details", "", "JSON file with saved bank details")
	statementCmd.Flags().StringSlice("bank", nil, "Account numbers of the saved bank details to include (default: all)")
	statementCmd.Flags().Bool("export-sheet", false, "Append the statement to Google Sheets")
	statementCmd.Flags().Int("timeout", 60, "Sheet export timeout in seconds")
	statementCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
}

func runStatement(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("statement-cmd")

	billedTo, _ := cmd.Flags().GetString("billed-to")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	bankPath, _ := cmd.Flags().GetString("bank-details")
	accounts, _ := cmd.Flags().GetStringSlice("bank")
	exportSheet, _ := cmd.Flags().GetBool("export-sheet")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")
	outputPath, _ := cmd.Flags().GetString("output")
	cfg := settings()

	var invs []*models.Invoice
	for _, path := range args {
		loaded, err := readInvoices(path)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("Failed to load invoices")
			return err
		}
		invs = append(invs, loaded...)
	}

	req := statement.Request{
		Invoices:     invs,
		BilledToName: billedTo,
		DateFrom:     from,
		DateTo:       to,
	}

	if bankPath != "" {
		saved, err := readBankDetails(bankPath)
		if err != nil {
			return err
		}
		if len(accounts) == 0 {
			req.BankDetails = saved
		} else {
			req.BankDetails = statement.SelectBankDetails(saved, accounts)
		}
	}

	stmt, err := statement.NewService(cfg.DefaultCurrency).Build(req)
	if err != nil {
		return err
	}

	if exportSheet {
		if err := cfg.RequireSheet(); err != nil {
			return err
		}

		ctx, cancel := createContext(time.Duration(timeoutSecs)*time.Second, log)
		defer cancel()

		svc, err := sheets.NewSheetsService(ctx, cfg.GoogleSheetURL, cfg.ColumnConfig())
		if err != nil {
			return err
		}
		if err := svc.WriteStatement(ctx, stmt, cfg.StatementWorksheet); err != nil {
			return err
		}
	}

	output := StatementOutput{
		Statement: stmt,
		Rows:      statement.ShapeRows(stmt, columns.NewResolver(cfg.ColumnConfig())),
	}
	return writeJSON(output, outputPath, log)
}
