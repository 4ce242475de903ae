package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"invoicekit/internal/invoice"
	"invoicekit/internal/logger"
	"invoicekit/internal/money"
	"invoicekit/pkg/models"
)

var lineCmd = &cobra.Command{
	Use:   "line",
	Short: "Compute VAT and total of a single invoice line",
	Long: `Compute the derived fields of one line item from its rate, VAT
percentage and optional extra deliverables.

Each --extra is given as amount:vatPercentage[:name]. The VAT of every extra
counts toward the line total. An empty rate leaves the line uncomputed.`,
	Example: `  # One ticket at 10% VAT
  invoicekit line --rate 100 --vat 10

  # With a baggage fee at 20% VAT and a meal without VAT
  invoicekit line --rate 100 --vat 10 --extra 50:20:Baggage --extra 10::Meal`,
	Args: cobra.NoArgs,
	RunE: runLine,
}

func init() {
	rootCmd.AddCommand(lineCmd)

	lineCmd.Flags().String("rate", "", "Line rate")
	lineCmd.Flags().String("vat", "", "VAT percentage of the rate")
	lineCmd.Flags().StringArray("extra", nil, "Extra deliverable as amount:vatPercentage[:name] (repeatable)")
	lineCmd.Flags().String("passenger", "", "Passenger name")
	lineCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
}

func runLine(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("line")

	rate, _ := cmd.Flags().GetString("rate")
	vat, _ := cmd.Flags().GetString("vat")
	extraSpecs, _ := cmd.Flags().GetStringArray("extra")
	passenger, _ := cmd.Flags().GetString("passenger")
	outputPath, _ := cmd.Flags().GetString("output")

	item := invoice.NewLineItem()
	item.PassengerName = passenger
	item.Rate = money.Amount(rate)
	item.VATPercentage = money.Amount(vat)

	for _, spec := range extraSpecs {
		extra, err := parseExtra(spec)
		if err != nil {
			return err
		}
		item.ExtraDeliverables = append(item.ExtraDeliverables, extra)
	}

	invoice.NewLineCalculator().Recalculate(&item, &invoice.LineState{})

	log.Info().
		Str("rate", rate).
		Str("vat_amount", item.VATAmount).
		Str("total", item.Total).
		Int("extras", len(item.ExtraDeliverables)).
		Msg("Line computed")

	return writeJSON(item, outputPath, log)
}

// parseExtra reads an extra deliverable from amount:vatPercentage[:name].
func parseExtra(spec string) (models.ExtraDeliverable, error) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) < 2 {
		return models.ExtraDeliverable{}, fmt.Errorf("invalid --extra %q: expected amount:vatPercentage[:name]", spec)
	}

	extra := invoice.NewExtraDeliverable()
	extra.Amount = money.Amount(strings.TrimSpace(parts[0]))
	extra.VATPercentage = money.Amount(strings.TrimSpace(parts[1]))
	if len(parts) == 3 {
		extra.RowName = strings.TrimSpace(parts[2])
	}
	return extra, nil
}
