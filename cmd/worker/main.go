package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/keanlouis30/MessengerWalletSystem/internal/config"
	"github.com/keanlouis30/MessengerWalletSystem/internal/logger"
	"github.com/keanlouis30/MessengerWalletSystem/internal/sheets"
	"github.com/keanlouis30/MessengerWalletSystem/internal/timeutil"
)

// The server rebuilds the formatted report after every logged transaction,
// but manual sheet edits bypass the bot entirely. This worker catches those
// by rebuilding the view on a fixed interval.
func main() {
	interval := flag.Duration("interval", 15*time.Minute, "How often to rebuild the formatted report")
	flag.Parse()

	// Initialize logger
	log := logger.New()

	cfg := config.Load()
	if err := cfg.ValidateSheets(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, err := sheets.NewService(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create sheets service")
	}
	store := sheets.NewStore(svc, cfg.SheetID, cfg.DataLogSheet, cfg.FormattedReportSheet, log)

	log.Info().Dur("interval", *interval).Msg("Starting report rebuild worker")

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := store.RebuildReportView(ctx, timeutil.Now()); err != nil {
					log.Error().Err(err).Msg("Scheduled rebuild failed")
				}
			}
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down rebuild worker...")
	cancel()
	log.Info().Msg("Rebuild worker exited")
}
