package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"log/slog"

	"github.com/garnizeh/offerdesk/internal/db"
	"github.com/garnizeh/offerdesk/internal/jobs"
)

func setupJobsDB(t *testing.T) *db.DB {
	t.Helper()
	ctx := context.Background()
	// use shared in-memory DB so multiple connections see the same schema
	d, err := db.New(ctx, "file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if _, err := d.Exec(ctx, `CREATE TABLE IF NOT EXISTS jobs (id INTEGER PRIMARY KEY AUTOINCREMENT, type TEXT NOT NULL, payload TEXT, status TEXT NOT NULL DEFAULT 'queued', attempts INTEGER NOT NULL DEFAULT 0, max_attempts INTEGER NOT NULL DEFAULT 5, priority INTEGER NOT NULL DEFAULT 100, scheduled_at INTEGER NOT NULL DEFAULT (strftime('%s','now')), next_try_at INTEGER, last_error TEXT, created INTEGER NOT NULL DEFAULT (strftime('%s','now')), updated INTEGER NOT NULL DEFAULT (strftime('%s','now')))`); err != nil {
		t.Fatalf("create jobs table: %v", err)
	}
	if _, err := d.Exec(ctx, `CREATE TABLE IF NOT EXISTS dead_letter_jobs (id INTEGER PRIMARY KEY AUTOINCREMENT, job_id INTEGER NOT NULL, type TEXT NOT NULL, payload TEXT, attempts INTEGER NOT NULL, last_error TEXT, failed_at INTEGER NOT NULL DEFAULT (strftime('%s','now')))`); err != nil {
		t.Fatalf("create dlq table: %v", err)
	}

	// drop rows left over from other tests sharing the in-memory DB
	if _, err := d.Exec(ctx, `DELETE FROM jobs`); err != nil {
		t.Fatalf("clear jobs table: %v", err)
	}
	if _, err := d.Exec(ctx, `DELETE FROM dead_letter_jobs`); err != nil {
		t.Fatalf("clear dlq table: %v", err)
	}

	return d
}

func TestBackoffDuration(t *testing.T) {
	if got := jobs.BackoffDuration(0); got != time.Second {
		t.Fatalf("BackoffDuration(0) = %v", got)
	}
	if got := jobs.BackoffDuration(1); got != 2*time.Second {
		t.Fatalf("BackoffDuration(1) = %v", got)
	}
	if got := jobs.BackoffDuration(3); got != 8*time.Second {
		t.Fatalf("BackoffDuration(3) = %v", got)
	}
	// capped
	if got := jobs.BackoffDuration(20); got != 5*time.Minute {
		t.Fatalf("BackoffDuration(20) = %v", got)
	}
}

func TestEnqueueAndProcess(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	d := setupJobsDB(t)

	repo := jobs.NewRepository(d)
	handled := make(chan struct{}, 1)
	handlers := map[string]jobs.Handler{
		"test": func(ctx context.Context, j *jobs.Job) error {
			handled <- struct{}{}
			return nil
		},
	}
	pool := jobs.NewWorkerPool(repo, handlers, logger, 1)
	pool.Start(ctx)
	defer pool.Stop()

	if _, err := pool.Enqueue(ctx, "test", map[string]string{"foo": "bar"}, 10, 3); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	select {
	case <-handled:
		// ok
	case <-time.After(3 * time.Second):
		t.Fatalf("handler was not called")
	}
}

func TestEnqueueAtDefersExecution(t *testing.T) {
	ctx := context.Background()
	d := setupJobsDB(t)
	repo := jobs.NewRepository(d)

	pool := jobs.NewWorkerPool(repo, nil, slog.Default(), 1)
	if _, err := pool.EnqueueAt(ctx, "later", nil, 10, 3, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("enqueue at: %v", err)
	}

	// scheduled in the future: nothing is due yet
	j, err := repo.FetchNext(ctx)
	if err != nil {
		t.Fatalf("fetch next: %v", err)
	}
	if j != nil {
		t.Fatalf("expected no due job got %#v", j)
	}

	if _, err := pool.Enqueue(ctx, "now", nil, 10, 3); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	j, err = repo.FetchNext(ctx)
	if err != nil {
		t.Fatalf("fetch next: %v", err)
	}
	if j == nil || j.Type != "now" {
		t.Fatalf("expected the immediate job got %#v", j)
	}
}

func TestFailingJobMovesToDeadLetter(t *testing.T) {
	ctx := context.Background()
	d := setupJobsDB(t)
	repo := jobs.NewRepository(d)

	handlers := map[string]jobs.Handler{
		"boom": func(ctx context.Context, j *jobs.Job) error {
			return errors.New("always fails")
		},
	}
	pool := jobs.NewWorkerPool(repo, handlers, slog.Default(), 1)
	pool.Start(ctx)
	defer pool.Stop()

	if _, err := pool.Enqueue(ctx, "boom", nil, 10, 1); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		var count int64
		row := d.QueryRow(ctx, `SELECT COUNT(1) FROM dead_letter_jobs WHERE type = 'boom'`)
		if err := row.Scan(&count); err != nil {
			t.Fatalf("count dlq: %v", err)
		}
		if count == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("job was not moved to dead letter queue")
		}
		time.Sleep(50 * time.Millisecond)
	}
}
