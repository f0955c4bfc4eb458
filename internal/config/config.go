package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config is the full environment surface of the service. SheetsCreds is the
// serialized authorized-user token set for the spreadsheet account; it is
// passed through to the credential provider without validation here.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Classifier
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`

	// Spreadsheet
	SpreadsheetID string `env:"SPREADSHEET_ID"`
	SheetsCreds   string `env:"SHEETS_CREDS"`
	WriteEnabled  bool   `env:"SHEETS_WRITE_ENABLED" envDefault:"true"`

	// Authorization. Empty SharedSecret disables the check entirely.
	SharedSecret  string `env:"SHARED_SECRET"`
	DenialMessage string `env:"DENIAL_MESSAGE"`
}

// New loads configuration from the environment, reading a .env file first
// when one exists.
func New() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	return cfg, nil
}

// RequireSheets reports an error when spreadsheet writes are enabled but the
// variables the writer needs are missing.
func (c *Config) RequireSheets() error {
	if !c.WriteEnabled {
		return nil
	}
	if c.SpreadsheetID == "" {
		return fmt.Errorf("config: SPREADSHEET_ID is required when writes are enabled")
	}
	if c.SheetsCreds == "" {
		return fmt.Errorf("config: SHEETS_CREDS is required when writes are enabled")
	}
	return nil
}
