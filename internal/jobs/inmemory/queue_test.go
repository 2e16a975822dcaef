package inmemory

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/keanlouis30/MessengerWalletSystem/internal/jobs"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestQueue_ProcessesPublishedJob(t *testing.T) {
	store := NewStore()
	queue := NewQueue(10, store)
	defer queue.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var handled int32
	handler := func(ctx context.Context, job *jobs.RebuildReportJob) error {
		atomic.AddInt32(&handled, 1)
		return nil
	}
	if err := queue.Start(ctx, handler); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	job := &jobs.RebuildReportJob{UserID: "user-1", Reason: "transaction_logged"}
	if err := queue.PublishRebuild(ctx, job); err != nil {
		t.Fatalf("PublishRebuild() error: %v", err)
	}
	if job.JobID == "" {
		t.Fatal("expected a job ID to be assigned")
	}

	waitFor(t, 2*time.Second, func() bool {
		saved, err := store.GetJob(ctx, job.JobID)
		return err == nil && saved.Status == jobs.JobStatusCompleted
	})

	if atomic.LoadInt32(&handled) != 1 {
		t.Errorf("handler ran %d times, want 1", handled)
	}
}

func TestQueue_RetriesFailedJob(t *testing.T) {
	store := NewStore()
	queue := NewQueue(10, store)
	defer queue.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var attempts int32
	handler := func(ctx context.Context, job *jobs.RebuildReportJob) error {
		if atomic.AddInt32(&attempts, 1) == 1 {
			return errors.New("sheet busy")
		}
		return nil
	}
	if err := queue.Start(ctx, handler); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	job := &jobs.RebuildReportJob{UserID: "user-1", Reason: "transaction_logged"}
	if err := queue.PublishRebuild(ctx, job); err != nil {
		t.Fatalf("PublishRebuild() error: %v", err)
	}

	waitFor(t, 5*time.Second, func() bool {
		saved, err := store.GetJob(ctx, job.JobID)
		return err == nil && saved.Status == jobs.JobStatusCompleted
	})

	if got := atomic.LoadInt32(&attempts); got != 2 {
		t.Errorf("handler ran %d times, want 2", got)
	}
}

func TestStore_ListJobsFilters(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	save := func(id, user string, status jobs.JobStatus) {
		t.Helper()
		err := store.SaveJob(ctx, &jobs.RebuildReportJob{JobID: id, UserID: user, Status: status})
		if err != nil {
			t.Fatalf("SaveJob(%s) error: %v", id, err)
		}
	}
	save("j1", "alice", jobs.JobStatusCompleted)
	save("j2", "alice", jobs.JobStatusFailed)
	save("j3", "bob", jobs.JobStatusCompleted)

	byUser, err := store.ListJobs(ctx, jobs.JobFilter{UserID: "alice"})
	if err != nil {
		t.Fatalf("ListJobs() error: %v", err)
	}
	if len(byUser) != 2 {
		t.Errorf("user filter returned %d jobs, want 2", len(byUser))
	}

	byStatus, err := store.ListJobs(ctx, jobs.JobFilter{Status: jobs.JobStatusCompleted})
	if err != nil {
		t.Fatalf("ListJobs() error: %v", err)
	}
	if len(byStatus) != 2 {
		t.Errorf("status filter returned %d jobs, want 2", len(byStatus))
	}

	limited, err := store.ListJobs(ctx, jobs.JobFilter{Limit: 1})
	if err != nil {
		t.Fatalf("ListJobs() error: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit returned %d jobs, want 1", len(limited))
	}
}

func TestStore_SaveRequiresJobID(t *testing.T) {
	store := NewStore()
	if err := store.SaveJob(context.Background(), &jobs.RebuildReportJob{}); err == nil {
		t.Error("expected error for missing job ID")
	}
}
