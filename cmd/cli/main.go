package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/keanlouis30/MessengerWalletSystem/internal/config"
	"github.com/keanlouis30/MessengerWalletSystem/internal/domain"
	"github.com/keanlouis30/MessengerWalletSystem/internal/logger"
	"github.com/keanlouis30/MessengerWalletSystem/internal/report"
	"github.com/keanlouis30/MessengerWalletSystem/internal/sheets"
	"github.com/keanlouis30/MessengerWalletSystem/internal/timeutil"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "init":
		runInit(log)
	case "log":
		runLog(log)
	case "report":
		runReport(log)
	case "rebuild":
		runRebuild(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Messenger Wallet Bot CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  init      Initialize the spreadsheet headers and report view")
	fmt.Println("  log       Log a transaction directly to the data log")
	fmt.Println("  report    Print a financial report for a period")
	fmt.Println("  rebuild   Rebuild the formatted report sheet from the data log")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

func newStore(ctx context.Context, log zerolog.Logger) *sheets.Store {
	cfg := config.Load()
	if err := cfg.ValidateSheets(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	svc, err := sheets.NewService(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create sheets service")
	}
	return sheets.NewStore(svc, cfg.SheetID, cfg.DataLogSheet, cfg.FormattedReportSheet, log)
}

func runInit(log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store := newStore(ctx, log)
	if err := store.Initialize(ctx); err != nil {
		log.Fatal().Err(err).Msg("Initialization failed")
	}

	fmt.Println("Sheets initialized.")
}

func runLog(log zerolog.Logger) {
	fs := flag.NewFlagSet("log", flag.ExitOnError)
	txType := fs.String("type", "expense", "Transaction type: income or expense")
	category := fs.String("category", "Other", "Category (expense) or source (income)")
	description := fs.String("description", "", "Transaction description")
	amountStr := fs.String("amount", "", "Amount in pesos")
	userID := fs.String("user", "cli", "User ID to record against")
	fs.Parse(os.Args[2:])

	if *description == "" || *amountStr == "" {
		log.Fatal().Msg("Usage: cli log -type expense -category Food -description 'Lunch' -amount 150")
	}

	amount, err := domain.ParseAmount(*amountStr)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid amount")
	}

	tx := domain.Transaction{
		Timestamp:        timeutil.Now(),
		Type:             domain.TransactionType(*txType),
		CategoryOrSource: *category,
		Description:      *description,
		Amount:           amount,
		UserID:           *userID,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store := newStore(ctx, log)
	if err := store.AppendTransaction(ctx, tx); err != nil {
		log.Fatal().Err(err).Msg("Failed to log transaction")
	}
	if err := store.RebuildReportView(ctx, timeutil.Now()); err != nil {
		log.Warn().Err(err).Msg("Transaction logged but report rebuild failed")
	}

	fmt.Printf("Logged %s of %s: %s\n", *txType, report.FormatCurrency(amount), *description)
}

func runReport(log zerolog.Logger) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	period := fs.String("period", "This Week", `Report period: "Today", "This Week" or "This Month"`)
	userID := fs.String("user", "", "Limit to one user ID (default: all users)")
	fs.Parse(os.Args[2:])

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store := newStore(ctx, log)
	records, err := store.ReadAllTransactions(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read transactions")
	}

	if *userID != "" {
		filtered := records[:0]
		for _, tx := range records {
			if tx.UserID == *userID {
				filtered = append(filtered, tx)
			}
		}
		records = filtered
	}

	fmt.Println(report.Generate(records, timeutil.Period(*period), timeutil.Now()))
}

func runRebuild(log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store := newStore(ctx, log)
	if err := store.RebuildReportView(ctx, timeutil.Now()); err != nil {
		log.Fatal().Err(err).Msg("Rebuild failed")
	}

	fmt.Println("Formatted report rebuilt.")
}
