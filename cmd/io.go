package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"invoicekit/pkg/models"
)

// readInvoices decodes path as either a single invoice object or an array of
// invoices.
func readInvoices(path string) ([]*models.Invoice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read invoice file: %w", err)
	}
	return decodeInvoices(data)
}

func decodeInvoices(data []byte) ([]*models.Invoice, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("invoice file is empty")
	}

	if data[0] == '[' {
		var invs []*models.Invoice
		if err := json.Unmarshal(data, &invs); err != nil {
			return nil, fmt.Errorf("failed to parse invoice list: %w", err)
		}
		return invs, nil
	}

	var inv models.Invoice
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("failed to parse invoice: %w", err)
	}
	return []*models.Invoice{&inv}, nil
}

// readBankDetails decodes a JSON array of saved bank details.
func readBankDetails(path string) ([]models.BankDetail, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bank details file: %w", err)
	}
	var details []models.BankDetail
	if err := json.Unmarshal(data, &details); err != nil {
		return nil, fmt.Errorf("failed to parse bank details: %w", err)
	}
	return details, nil
}

// writeJSON pretty-prints v to outputPath, or to stdout when outputPath is empty.
func writeJSON(v interface{}, outputPath string, log zerolog.Logger) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal output to JSON")
		return fmt.Errorf("failed to create JSON output: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0o644); err != nil {
			log.Error().
				Err(err).
				Str("output_file", outputPath).
				Msg("Failed to write output file")
			return fmt.Errorf("failed to write output file: %w", err)
		}

		log.Info().
			Str("output_file", outputPath).
			Int("bytes", len(jsonData)).
			Msg("Output written to file")
		return nil
	}

	if _, err := os.Stdout.Write(jsonData); err != nil {
		log.Error().Err(err).Msg("Failed to write to stdout")
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Println()
	return nil
}

// createContext creates a context with timeout that is also canceled on
// SIGINT or SIGTERM.
func createContext(timeout time.Duration, log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
