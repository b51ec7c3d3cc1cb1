// Package scheduler runs periodic maintenance for the conversion job log.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/refhub/internal/config"
	"github.com/mrlokans/refhub/internal/tasks"
)

// CleanupEnqueuer hands job retention off to the task queue.
type CleanupEnqueuer interface {
	EnqueueJobCleanup(retentionDays int) (string, error)
}

// JobCleanupScheduler periodically prunes old conversion jobs. When a task
// queue is available the work is enqueued there; otherwise the cleaner runs
// inline on the cron goroutine.
type JobCleanupScheduler struct {
	cfg      config.Jobs
	enqueuer CleanupEnqueuer
	cleaner  tasks.JobCleaner

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewJobCleanupScheduler creates a new scheduler instance. enqueuer may be nil.
func NewJobCleanupScheduler(cfg config.Jobs, enqueuer CleanupEnqueuer, cleaner tasks.JobCleaner) *JobCleanupScheduler {
	return &JobCleanupScheduler{
		cfg:      cfg,
		enqueuer: enqueuer,
		cleaner:  cleaner,
		cron:     cron.New(cron.WithParser(cronParser)),
	}
}

// Start begins the scheduler if cleanup is enabled
func (s *JobCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.cfg.CleanupEnabled {
		log.Printf("Job cleanup scheduler: disabled")
		return nil
	}

	if err := ValidateCronSchedule(s.cfg.CleanupSchedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.cfg.CleanupSchedule, err)
	}

	entryID, err := s.cron.AddFunc(s.cfg.CleanupSchedule, func() {
		if err := s.runCleanup(); err != nil {
			log.Printf("Job cleanup: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule cleanup job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := GetNextRunTime(s.cfg.CleanupSchedule)
	log.Printf("Job cleanup scheduler: started with schedule '%s' (%s), retention %d days. Next run: %v",
		s.cfg.CleanupSchedule,
		GetCronDescription(s.cfg.CleanupSchedule),
		s.cfg.RetentionDays,
		nextRun)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler
func (s *JobCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Job cleanup scheduler: stopped")
}

// RunNow triggers an immediate cleanup
func (s *JobCleanupScheduler) RunNow() error {
	go func() {
		if err := s.runCleanup(); err != nil {
			log.Printf("Job cleanup: %v", err)
		}
	}()
	return nil
}

// IsRunning returns whether the scheduler is active
func (s *JobCleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next cleanup will occur
func (s *JobCleanupScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *JobCleanupScheduler) runCleanup() error {
	if s.enqueuer != nil {
		taskID, err := s.enqueuer.EnqueueJobCleanup(s.cfg.RetentionDays)
		if err != nil {
			return err
		}
		log.Printf("Job cleanup: enqueued task %s", taskID)
		return nil
	}

	if s.cleaner == nil {
		return fmt.Errorf("no job cleaner configured")
	}

	retentionDays := s.cfg.RetentionDays
	if retentionDays <= 0 {
		retentionDays = tasks.DefaultJobRetentionDays
	}
	deleted, err := s.cleaner.DeleteOldJobs(time.Duration(retentionDays) * 24 * time.Hour)
	if err != nil {
		return fmt.Errorf("delete old jobs: %w", err)
	}
	log.Printf("Job cleanup: removed %d jobs older than %d days", deleted, retentionDays)
	return nil
}
