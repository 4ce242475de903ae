package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"invoicekit/internal/columns"
	"invoicekit/internal/logger"
	"invoicekit/internal/money"
	"invoicekit/pkg/models"
)

type Config struct {
	// Invoicing Configuration
	DefaultCurrency string

	// Column heading preferences
	ColumnLabels map[models.Column]string

	// Google Sheets Configuration (optional, only needed for export)
	GoogleSheetURL     string
	StatementWorksheet string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

var columnEnv = map[models.Column]string{
	models.ColumnPassengerName: "COLUMN_LABEL_PASSENGER_NAME",
	models.ColumnRoute:         "COLUMN_LABEL_ROUTE",
	models.ColumnAirlines:      "COLUMN_LABEL_AIRLINES",
	models.ColumnServiceType:   "COLUMN_LABEL_SERVICE_TYPE",
	models.ColumnAmount:        "COLUMN_LABEL_AMOUNT",
}

func Load() (*Config, error) {
	config := &Config{
		DefaultCurrency:    strings.ToUpper(getEnv("DEFAULT_CURRENCY", money.DefaultCurrency)),
		ColumnLabels:       make(map[models.Column]string, len(columnEnv)),
		GoogleSheetURL:     getEnv("GOOGLE_SHEET_URL", ""),
		StatementWorksheet: getEnv("STATEMENT_WORKSHEET", "Statements"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:      getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:          getEnv("LOG_OUTPUT", "stderr"),
	}

	for col, key := range columnEnv {
		config.ColumnLabels[col] = getEnv(key, columns.DefaultLabels[col])
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if !money.ValidCurrency(c.DefaultCurrency) {
		return fmt.Errorf("DEFAULT_CURRENCY %q is not an ISO 4217 code", c.DefaultCurrency)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("LOG_LEVEL %q is invalid: %w", c.LogLevel, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.LogFormat)
	}
	return nil
}

// RequireSheet reports an error when no spreadsheet is configured for export.
func (c *Config) RequireSheet() error {
	if c.GoogleSheetURL == "" {
		return fmt.Errorf("GOOGLE_SHEET_URL is required for sheet export")
	}
	return nil
}

// ColumnConfig returns the column heading preferences for resolvers.
func (c *Config) ColumnConfig() columns.Config {
	cfg := columns.DefaultConfig()
	for col, label := range c.ColumnLabels {
		if label != "" {
			cfg.Labels[col] = label
		}
	}
	return cfg
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
