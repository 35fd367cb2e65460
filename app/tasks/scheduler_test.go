package tasks

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/autoxpress/partsearch/app/listing"
	"github.com/autoxpress/partsearch/app/search"
)

// failingTask fails every execution so the scheduler keeps scheduling
// retries for it.
type failingTask struct {
	Task
	executed chan struct{}
}

func newFailingTask() *failingTask {
	return &failingTask{
		Task:     NewTask(TaskTypeRefreshWatch, "doomed"),
		executed: make(chan struct{}, DefaultMaxRetries+1),
	}
}

func (t *failingTask) Execute(ctx context.Context) error {
	t.executed <- struct{}{}
	return errors.New("boom")
}

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		searcher:     &fakeSearcher{result: &search.Result{}},
		watchRepo:    setupWatchRepo(t),
		favoriteRepo: setupFavoriteRepo(t),
		httpClient:   http.DefaultClient,
		extractor:    listing.NewDescriptionExtractor(),
		userAgent:    "Test Agent",
		interval:     time.Hour,
		watchMaxAge:  time.Hour,
		workerCount:  1,
		ctx:          ctx,
		cancel:       cancel,
		taskQueue:    make(chan TaskInterface, 10),
	}
}

func TestSchedulerRunsEnqueuedTask(t *testing.T) {
	scheduler := newTestScheduler(t)
	scheduler.Start()
	defer scheduler.Stop()

	task := newFailingTask()
	if err := scheduler.EnqueueTask(task); err != nil {
		t.Fatalf("failed to enqueue task: %v", err)
	}

	select {
	case <-task.executed:
	case <-time.After(5 * time.Second):
		t.Fatal("expected task to be executed")
	}
}

func TestSchedulerStopWithPendingRetry(t *testing.T) {
	scheduler := newTestScheduler(t)
	scheduler.Start()

	task := newFailingTask()
	if err := scheduler.EnqueueTask(task); err != nil {
		t.Fatalf("failed to enqueue task: %v", err)
	}

	// Wait for the first failure so a delayed retry is in flight, then stop
	// while it is still sleeping. Stop must wait the retry out (or cancel
	// it) before closing the queue; re-enqueueing on a closed queue panics.
	select {
	case <-task.executed:
	case <-time.After(5 * time.Second):
		t.Fatal("expected task to be executed")
	}
	time.Sleep(50 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		scheduler.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("expected Stop to return promptly with a pending retry")
	}
}

func TestSchedulerEnqueueAfterStop(t *testing.T) {
	scheduler := newTestScheduler(t)
	scheduler.Start()
	scheduler.Stop()

	if err := scheduler.EnqueueTask(newFailingTask()); err == nil {
		t.Error("expected enqueue on a stopped scheduler to fail")
	}
}
