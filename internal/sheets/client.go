package sheets

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/keanlouis30/MessengerWalletSystem/internal/config"
)

// NewService builds an authenticated Sheets service from the configured
// credentials. Inline JSON takes precedence over a credentials file so
// container deployments can avoid mounting secrets on disk.
func NewService(ctx context.Context, cfg config.Config) (*sheetsapi.Service, error) {
	var opts []option.ClientOption

	switch {
	case cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case cfg.CredentialsFile != "":
		if _, err := os.Stat(cfg.CredentialsFile); err != nil {
			return nil, fmt.Errorf("credentials file %s: %w", cfg.CredentialsFile, err)
		}
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	default:
		return nil, fmt.Errorf("no Google credentials configured")
	}

	opts = append(opts, option.WithScopes(sheetsapi.SpreadsheetsScope))

	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}
	return svc, nil
}
