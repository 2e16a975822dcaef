package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/keanlouis30/MessengerWalletSystem/internal/api/handlers"
	"github.com/keanlouis30/MessengerWalletSystem/internal/api/middleware"
	"github.com/keanlouis30/MessengerWalletSystem/internal/config"
	"github.com/keanlouis30/MessengerWalletSystem/internal/conversation"
	"github.com/keanlouis30/MessengerWalletSystem/internal/jobs"
	"github.com/keanlouis30/MessengerWalletSystem/internal/jobs/inmemory"
	"github.com/keanlouis30/MessengerWalletSystem/internal/logger"
	"github.com/keanlouis30/MessengerWalletSystem/internal/messenger"
	"github.com/keanlouis30/MessengerWalletSystem/internal/sheets"
	"github.com/keanlouis30/MessengerWalletSystem/internal/timeutil"
)

const initAttempts = 3

func main() {
	// Initialize logger
	log := logger.New()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()

	svc, err := sheets.NewService(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create sheets service")
	}
	store := sheets.NewStore(svc, cfg.SheetID, cfg.DataLogSheet, cfg.FormattedReportSheet, log)

	// Sheet initialization races cold-start quota on free hosting tiers, so
	// retry a few times before giving up.
	for attempt := 1; ; attempt++ {
		err = store.Initialize(ctx)
		if err == nil {
			break
		}
		if attempt == initAttempts {
			log.Fatal().Err(err).Msg("Failed to initialize sheets")
		}
		log.Warn().Err(err).Int("attempt", attempt).Msg("Sheet initialization failed, retrying")
		time.Sleep(time.Duration(attempt) * 2 * time.Second)
	}

	// Initialize job infrastructure
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(100, jobStore)

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	jobHandler := func(ctx context.Context, job *jobs.RebuildReportJob) error {
		log.Info().
			Str("job_id", job.JobID).
			Str("reason", job.Reason).
			Msg("Rebuilding report view")
		return store.RebuildReportView(ctx, timeutil.Now())
	}

	go func() {
		log.Info().Msg("Starting rebuild worker")
		if err := jobQueue.Start(workerCtx, jobHandler); err != nil {
			log.Error().Err(err).Msg("Rebuild worker stopped with error")
		}
	}()

	// Wire the conversation engine
	client := messenger.NewClient(cfg.PageAccessToken, log)
	engine := conversation.NewEngine(client, store, jobQueue, log)

	// Initialize handlers
	webhookHandler := handlers.NewWebhookHandler(engine, cfg.VerifyToken, log)
	transactionsHandler := handlers.NewTransactionsHandler(store, log)
	jobsHandler := handlers.NewJobsHandler(jobStore, log)
	healthHandler := handlers.NewHealthHandler(store, log)

	// Create router
	mux := http.NewServeMux()

	mux.Handle("/webhook", webhookHandler)

	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			transactionsHandler.ListTransactions(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobsHandler.ListJobs(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobID := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
			if jobID == "" {
				middleware.WriteError(w, http.StatusBadRequest, "Job ID is required")
				return
			}
			jobsHandler.GetJob(w, r, jobID)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Free hosting tiers probe / to keep the dyno awake.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" && r.URL.Path != "/health" {
			middleware.WriteError(w, http.StatusNotFound, "Not found")
			return
		}
		healthHandler.Health(w, r)
	})

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(mux),
		),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting webhook server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	cancelWorker()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	// Stop job queue and wait for in-flight rebuilds
	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping job queue")
	}

	if err := jobQueue.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close job queue")
	}

	log.Info().Msg("Server exited")
}
