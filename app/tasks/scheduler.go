package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/driftapp/drift-parse/app/cfg"
	"github.com/driftapp/drift-parse/app/database"
	"github.com/driftapp/drift-parse/app/linkparse"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

// refreshBatchSize caps how many popular links are re-parsed per tick.
const refreshBatchSize = 20

type Scheduler struct {
	linkRepo    database.ParsedLinkRepository
	parser      *linkparse.Parser
	cacheTTL    time.Duration
	interval    time.Duration
	workerCount int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface
}

func NewScheduler(linkRepo database.ParsedLinkRepository, parser *linkparse.Parser) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		linkRepo:    linkRepo,
		parser:      parser,
		cacheTTL:    time.Duration(cfg.CacheTTL) * time.Second,
		interval:    time.Duration(cfg.SchedulerInterval) * time.Second,
		workerCount: cfg.WorkerCount,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 300),
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
	purgeTask := NewPurgeCacheTask(s.linkRepo)
	if err := s.EnqueueTask(purgeTask); err != nil {
		slog.Warn("Failed to enqueue PurgeCacheTask", "error", err)
	}

	// Re-parse popular links about to expire so repeat shares keep
	// hitting the cache.
	expiring, err := s.linkRepo.Expiring(2*s.interval, refreshBatchSize)
	if err != nil {
		slog.Warn("Failed to query expiring links", "error", err)
		return
	}

	if len(expiring) == 0 {
		slog.Debug("No cached links due for refresh")
		return
	}

	slog.Debug("Scheduling link refreshes", "count", len(expiring))

	for _, cached := range expiring {
		refreshTask := NewRefreshLinkTask(cached.URL, s.parser, s.linkRepo, s.cacheTTL)
		if err := s.EnqueueTask(refreshTask); err != nil {
			slog.Warn("Failed to enqueue RefreshLinkTask", "url", cached.URL, "error", err)
		}
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

			go func() {
				time.Sleep(retryDelay)
				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				default:
					if retryErr := s.EnqueueTask(task); retryErr != nil {
						slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
					}
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}
