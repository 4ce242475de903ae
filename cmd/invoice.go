package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"invoicekit/internal/invoice"
	"invoicekit/internal/logger"
	"invoicekit/pkg/models"
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice [invoice.json]",
	Short: "Recalculate the derived amounts of an invoice",
	Long: `Read an invoice from JSON, recompute every line, the subtotal, the
discount, tax and shipping cascade, and the total in words, then write the
updated invoice as JSON.

With --verify the stored amounts are compared with the recomputed ones and
the differences are reported alongside the invoice. The file may hold a
single invoice or an array of invoices.`,
	Example: `  # Recalculate and print
  invoicekit invoice invoice.json

  # Report drift and save the corrected invoice
  invoicekit invoice invoice.json --verify -o fixed.json`,
	Args: cobra.ExactArgs(1),
	RunE: runInvoice,
}

// InvoiceOutput is the JSON result of the invoice command for one invoice.
type InvoiceOutput struct {
	Invoice      *models.Invoice             `json:"invoice"`
	Verification *invoice.VerificationResult `json:"verification,omitempty"`
	Changed      bool                        `json:"changed"`
}

func init() {
	rootCmd.AddCommand(invoiceCmd)

	invoiceCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	invoiceCmd.Flags().Bool("verify", false, "Report stored amounts that differ from the recomputed ones")
}

func runInvoice(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("invoice")

	outputPath, _ := cmd.Flags().GetString("output")
	verify, _ := cmd.Flags().GetBool("verify")
	cfg := settings()

	invs, err := readInvoices(args[0])
	if err != nil {
		log.Error().Err(err).Str("file", args[0]).Msg("Failed to load invoice")
		return err
	}

	outputs := recalculateInvoices(invs, cfg.DefaultCurrency, verify)
	for _, out := range outputs {
		log.Info().
			Str("invoice", out.Invoice.InvoiceNumber).
			Str("total", out.Invoice.TotalAmount).
			Bool("changed", out.Changed).
			Msg("Invoice recalculated")
	}

	if len(outputs) == 1 {
		return writeJSON(outputs[0], outputPath, log)
	}
	return writeJSON(outputs, outputPath, log)
}

func recalculateInvoices(invs []*models.Invoice, fallbackCurrency string, verify bool) []InvoiceOutput {
	calc := invoice.NewCalculator(fallbackCurrency)
	var verifier *invoice.Verifier
	if verify {
		verifier = invoice.NewVerifier(fallbackCurrency)
	}

	outputs := make([]InvoiceOutput, 0, len(invs))
	for i, inv := range invs {
		if inv == nil {
			inv = &models.Invoice{InvoiceNumber: fmt.Sprintf("#%d", i+1)}
		}
		out := InvoiceOutput{Invoice: inv}
		if verifier != nil {
			out.Verification = verifier.Verify(inv)
		}
		out.Changed, _ = calc.Recalculate(inv)
		outputs = append(outputs, out)
	}
	return outputs
}
