package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/keanlouis30/MessengerWalletSystem/internal/api/middleware"
	"github.com/keanlouis30/MessengerWalletSystem/internal/conversation"
	"github.com/keanlouis30/MessengerWalletSystem/internal/domain"
	"github.com/keanlouis30/MessengerWalletSystem/internal/jobs"
	"github.com/keanlouis30/MessengerWalletSystem/internal/timeutil"
)

// TransactionsHandler exposes the data log over HTTP for dashboards and
// debugging.
type TransactionsHandler struct {
	ledger conversation.Ledger
	log    zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(ledger conversation.Ledger, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{
		ledger: ledger,
		log:    log,
	}
}

// ListTransactions handles GET /api/transactions
func (h *TransactionsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Parse query parameters
	query := r.URL.Query()
	startDateStr := query.Get("start_date")
	endDateStr := query.Get("end_date")
	userID := query.Get("user_id")

	now := timeutil.Now()
	startDate := now.AddDate(-1, 0, 0)
	endDate := now

	var err error
	if startDateStr != "" {
		startDate, err = time.ParseInLocation("2006-01-02", startDateStr, timeutil.Manila)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid start_date format")
			return
		}
	}

	if endDateStr != "" {
		endDate, err = time.ParseInLocation("2006-01-02", endDateStr, timeutil.Manila)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid end_date format")
			return
		}
		// Inclusive end date.
		endDate = endDate.AddDate(0, 0, 1)
	}

	records, err := h.ledger.ReadAllTransactions(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to read transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to read transactions")
		return
	}

	filtered := make([]transactionJSON, 0, len(records))
	for _, tx := range records {
		if tx.Timestamp.Before(startDate) || !tx.Timestamp.Before(endDate) {
			continue
		}
		if userID != "" && tx.UserID != userID {
			continue
		}
		filtered = append(filtered, toTransactionJSON(tx))
	}

	middleware.WriteJSON(w, http.StatusOK, filtered)
}

type transactionJSON struct {
	Timestamp        string `json:"timestamp"`
	Type             string `json:"transaction_type"`
	CategoryOrSource string `json:"category_or_source"`
	Description      string `json:"description"`
	Amount           string `json:"amount"`
	UserID           string `json:"user_id"`
}

func toTransactionJSON(tx domain.Transaction) transactionJSON {
	return transactionJSON{
		Timestamp:        timeutil.FormatTimestamp(tx.Timestamp),
		Type:             string(tx.Type),
		CategoryOrSource: tx.CategoryOrSource,
		Description:      tx.Description,
		Amount:           tx.Amount.StringFixed(2),
		UserID:           tx.UserID,
	}
}

// JobsHandler exposes rebuild job state.
type JobsHandler struct {
	store jobs.JobStore
	log   zerolog.Logger
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(store jobs.JobStore, log zerolog.Logger) *JobsHandler {
	return &JobsHandler{
		store: store,
		log:   log,
	}
}

// GetJob handles GET /api/jobs/{id}
func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request, jobID string) {
	ctx := r.Context()

	job, err := h.store.GetJob(ctx, jobID)
	if err != nil {
		h.log.Error().Err(err).Str("job_id", jobID).Msg("Failed to get job")
		middleware.WriteError(w, http.StatusNotFound, "Job not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, job)
}

// ListJobs handles GET /api/jobs
func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Parse query parameters
	query := r.URL.Query()
	filter := jobs.JobFilter{
		UserID: query.Get("user_id"),
		Status: jobs.JobStatus(query.Get("status")),
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}

	jobsList, err := h.store.ListJobs(ctx, filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list jobs")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobsList,
		"count": len(jobsList),
	})
}

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports process and dependency health.
type HealthHandler struct {
	store Pinger
	log   zerolog.Logger
}

// NewHealthHandler creates a new health handler. store may be nil when the
// spreadsheet is not configured yet.
func NewHealthHandler(store Pinger, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		store: store,
		log:   log,
	}
}

// Health handles GET / and GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{
		"status":  "ok",
		"service": "wallet-bot",
	}

	if h.store != nil {
		if err := h.store.Ping(r.Context()); err != nil {
			h.log.Error().Err(err).Msg("Health check: sheets unreachable")
			status["status"] = "degraded"
			status["sheets"] = "unreachable"
			middleware.WriteJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		status["sheets"] = "ok"
	}

	middleware.WriteJSON(w, http.StatusOK, status)
}
