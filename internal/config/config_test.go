package config

import (
	"os"
	"path/filepath"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("PAGE_ACCESS_TOKEN", "page-token")
	t.Setenv("VERIFY_TOKEN", "verify-token")
	t.Setenv("GOOGLE_SHEET_ID", "sheet-id")
	t.Setenv("GOOGLE_CREDENTIALS_JSON", `{"type":"service_account"}`)
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "")
	t.Setenv("DATA_LOG_SHEET", "")
	t.Setenv("FORMATTED_REPORT_SHEET", "")

	cfg := Load()

	if cfg.Port != "10000" {
		t.Errorf("Port = %q, want 10000", cfg.Port)
	}
	if cfg.DataLogSheet != DefaultDataLogSheet {
		t.Errorf("DataLogSheet = %q, want %q", cfg.DataLogSheet, DefaultDataLogSheet)
	}
	if cfg.FormattedReportSheet != DefaultFormattedReportSheet {
		t.Errorf("FormattedReportSheet = %q, want %q", cfg.FormattedReportSheet, DefaultFormattedReportSheet)
	}
}

func TestValidate(t *testing.T) {
	setRequiredEnv(t)

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "all present", mutate: func(c *Config) {}},
		{name: "missing page token", mutate: func(c *Config) { c.PageAccessToken = "" }, wantErr: true},
		{name: "missing verify token", mutate: func(c *Config) { c.VerifyToken = "" }, wantErr: true},
		{name: "missing sheet id", mutate: func(c *Config) { c.SheetID = "" }, wantErr: true},
		{
			name: "no credentials at all",
			mutate: func(c *Config) {
				c.CredentialsJSON = ""
				c.CredentialsFile = filepath.Join(t.TempDir(), "does-not-exist.json")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_CredentialsFileFallback(t *testing.T) {
	setRequiredEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "credentials.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := Load()
	cfg.CredentialsJSON = ""
	cfg.CredentialsFile = path

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() with credentials file present failed: %v", err)
	}
}
