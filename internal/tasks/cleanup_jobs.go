package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// DefaultJobRetentionDays applies when a cleanup task carries no retention.
const DefaultJobRetentionDays = 90

// JobCleaner deletes conversion jobs older than a retention window.
type JobCleaner interface {
	DeleteOldJobs(retention time.Duration) (int64, error)
}

// CleanupConversionJobsTask removes conversion jobs older than the configured retention period.
type CleanupConversionJobsTask struct {
	RetentionDays int `json:"retention_days"`
}

// Config returns the queue configuration for job cleanup tasks.
func (t CleanupConversionJobsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_conversion_jobs",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupConversionJobsProcessor creates a processor function for CleanupConversionJobsTask.
func CleanupConversionJobsProcessor(cleaner JobCleaner) backlite.QueueProcessor[CleanupConversionJobsTask] {
	return func(ctx context.Context, task CleanupConversionJobsTask) error {
		if cleaner == nil {
			return fmt.Errorf("job cleaner not configured")
		}

		retentionDays := task.RetentionDays
		if retentionDays <= 0 {
			retentionDays = DefaultJobRetentionDays
		}
		retention := time.Duration(retentionDays) * 24 * time.Hour

		deleted, err := cleaner.DeleteOldJobs(retention)
		if err != nil {
			return fmt.Errorf("cleanup conversion jobs: %w", err)
		}

		log.Printf("[TASK] Cleaned up %d conversion jobs older than %d days", deleted, retentionDays)
		return nil
	}
}

// NewCleanupConversionJobsQueue creates a backlite queue for job cleanup tasks.
func NewCleanupConversionJobsQueue(cleaner JobCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupConversionJobsProcessor(cleaner))
}
