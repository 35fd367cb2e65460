package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/autoxpress/partsearch/app/cfg"
	"github.com/autoxpress/partsearch/app/database"
	"github.com/autoxpress/partsearch/app/listing"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

type Scheduler struct {
	searcher     Searcher
	watchRepo    *database.WatchRepository
	favoriteRepo *database.FavoriteRepository
	httpClient   *http.Client
	extractor    *listing.DescriptionExtractor
	userAgent    string
	interval     time.Duration
	watchMaxAge  time.Duration
	workerCount  int
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	taskQueue    chan TaskInterface
}

func NewScheduler(searcher Searcher, watchRepo *database.WatchRepository,
	favoriteRepo *database.FavoriteRepository, httpClient *http.Client,
	extractor *listing.DescriptionExtractor) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		searcher:     searcher,
		watchRepo:    watchRepo,
		favoriteRepo: favoriteRepo,
		httpClient:   httpClient,
		extractor:    extractor,
		userAgent:    cfg.UserAgent,
		interval:     time.Duration(cfg.SchedulerInterval) * time.Second,
		watchMaxAge:  time.Duration(cfg.WatchInterval) * time.Second,
		workerCount:  cfg.WorkerCount,
		ctx:          ctx,
		cancel:       cancel,
		taskQueue:    make(chan TaskInterface, 300),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueTasks()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueTasks()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	// Once Stop has cancelled the context the queue may already be closed;
	// sending on it would panic.
	if err := s.ctx.Err(); err != nil {
		return err
	}

	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) enqueueTasks() {
	watches, err := s.watchRepo.ListDue(s.watchMaxAge)
	if err != nil {
		slog.Warn("Failed to list due watches", "error", err)
	} else {
		for _, watch := range watches {
			task := NewRefreshWatchTask(watch, s.searcher, s.watchRepo)
			if err := s.EnqueueTask(task); err != nil {
				slog.Warn("Failed to enqueue RefreshWatchTask", "watch_id", watch.ID, "error", err)
			}
		}
		if len(watches) > 0 {
			slog.Debug("Enqueued watch refreshes", "count", len(watches))
		}
	}

	pending, err := s.favoriteRepo.GetPendingDescriptions(1)
	if err != nil {
		slog.Warn("Failed to check for pending favorite enrichment", "error", err)
		return
	}
	if len(pending) == 0 {
		return
	}

	task := NewEnrichFavoriteTask(s.favoriteRepo, s.httpClient, s.extractor, s.userAgent)
	if err := s.EnqueueTask(task); err != nil {
		slog.Warn("Failed to enqueue EnrichFavoriteTask", "error", err)
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "subject", task.GetSubject(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

			// The retry goroutine joins the WaitGroup so Stop cannot close
			// the queue while a delayed re-enqueue is still pending.
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()

				select {
				case <-time.After(retryDelay):
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				}

				if retryErr := s.EnqueueTask(task); retryErr != nil {
					slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}
