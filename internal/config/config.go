// Package config centralizes environment-backed settings for the wallet bot.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Default worksheet names inside the backing spreadsheet.
const (
	DefaultDataLogSheet         = "Data_Log"
	DefaultFormattedReportSheet = "Formatted_Report"
)

// Currency settings for the Philippines.
const (
	CurrencySymbol = "₱"
	CurrencyCode   = "PHP"
)

// Config holds all application settings.
type Config struct {
	// Meta Messenger API
	PageAccessToken string
	VerifyToken     string

	// Google Sheets
	SheetID string
	// CredentialsJSON holds the service account key as a JSON string; when
	// empty, CredentialsFile is used instead.
	CredentialsJSON string
	CredentialsFile string

	DataLogSheet         string
	FormattedReportSheet string

	// Server
	Port string

	Environment string
}

// Load reads configuration from the environment.
func Load() Config {
	cfg := Config{
		PageAccessToken:      os.Getenv("PAGE_ACCESS_TOKEN"),
		VerifyToken:          os.Getenv("VERIFY_TOKEN"),
		SheetID:              os.Getenv("GOOGLE_SHEET_ID"),
		CredentialsJSON:      os.Getenv("GOOGLE_CREDENTIALS_JSON"),
		CredentialsFile:      os.Getenv("GOOGLE_CREDENTIALS_FILE"),
		DataLogSheet:         os.Getenv("DATA_LOG_SHEET"),
		FormattedReportSheet: os.Getenv("FORMATTED_REPORT_SHEET"),
		Port:                 os.Getenv("PORT"),
		Environment:          os.Getenv("ENVIRONMENT"),
	}

	if cfg.CredentialsFile == "" {
		cfg.CredentialsFile = "credentials.json"
	}
	if cfg.DataLogSheet == "" {
		cfg.DataLogSheet = DefaultDataLogSheet
	}
	if cfg.FormattedReportSheet == "" {
		cfg.FormattedReportSheet = DefaultFormattedReportSheet
	}
	if cfg.Port == "" {
		cfg.Port = "10000"
	}
	if cfg.Environment == "" {
		cfg.Environment = "production"
	}

	return cfg
}

// Validate checks that every required setting is present.
func (c Config) Validate() error {
	var missing []string
	if c.PageAccessToken == "" {
		missing = append(missing, "PAGE_ACCESS_TOKEN")
	}
	if c.VerifyToken == "" {
		missing = append(missing, "VERIFY_TOKEN")
	}
	if c.SheetID == "" {
		missing = append(missing, "GOOGLE_SHEET_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if c.CredentialsJSON == "" {
		if _, err := os.Stat(c.CredentialsFile); err != nil {
			return fmt.Errorf("google credentials not found: set GOOGLE_CREDENTIALS_JSON or provide %s: %w", c.CredentialsFile, err)
		}
	}

	return nil
}

// ValidateSheets checks only the spreadsheet settings. The CLI talks to the
// sheet without a Messenger presence, so the Meta tokens are not required.
func (c Config) ValidateSheets() error {
	if c.SheetID == "" {
		return fmt.Errorf("missing required environment variable: GOOGLE_SHEET_ID")
	}
	if c.CredentialsJSON == "" {
		if _, err := os.Stat(c.CredentialsFile); err != nil {
			return fmt.Errorf("google credentials not found: set GOOGLE_CREDENTIALS_JSON or provide %s: %w", c.CredentialsFile, err)
		}
	}
	return nil
}

// IsDevelopment reports whether the bot runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}
