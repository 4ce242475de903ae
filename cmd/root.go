package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"invoicekit/internal/config"
	"invoicekit/internal/logger"
	"invoicekit/internal/money"
	"invoicekit/pkg/models"
)

var version = "1.0.0"

// appConfig is set by Execute. It falls back to built-in defaults when the
// environment could not be loaded.
var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "invoicekit",
	Short: "invoicekit - invoice line, totals and statement calculations",
	Long: `invoicekit computes the derived amounts of travel invoices: per-line VAT
and totals including extra deliverables, the discount, tax and shipping
cascade with the total in words, and client statements that aggregate
several issued invoices by date.

Invoices are read and written as JSON.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("invoicekit executed")

		fmt.Println("Welcome to invoicekit!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

// Execute runs the root command with cfg as the application configuration.
func Execute(cfg *config.Config) {
	log := logger.WithComponent("cmd")
	appConfig = cfg

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func settings() *config.Config {
	if appConfig != nil {
		return appConfig
	}
	return &config.Config{
		DefaultCurrency:    money.DefaultCurrency,
		ColumnLabels:       map[models.Column]string{},
		StatementWorksheet: "Statements",
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
