package audit

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/refhub/internal/conversion"
	"github.com/mrlokans/refhub/internal/entities"
)

const maxErrorLen = 500

// JobStore persists conversion jobs.
type JobStore interface {
	LogJob(job *entities.ConversionJob) error
	GetJobs(limit, offset int) ([]entities.ConversionJob, int64, error)
	GetJobsByFormat(format entities.SourceFormat, limit, offset int) ([]entities.ConversionJob, int64, error)
	GetJobByID(id uint) (*entities.ConversionJob, error)
	GetStats() (*entities.ConversionJobStats, error)
	DeleteOldJobs(olderThan time.Time) (int64, error)
}

// ConversionRecord describes one finished conversion call.
type ConversionRecord struct {
	SourceName string
	SourceSize int
	Options    entities.ConversionOptions
	Result     conversion.Result
	Duration   time.Duration
	Err        error
}

// Service records conversion jobs without blocking the caller.
type Service struct {
	repo    JobStore
	pending sync.WaitGroup
}

func NewService(repo JobStore) *Service {
	return &Service{repo: repo}
}

// Log records a job synchronously.
func (s *Service) Log(job *entities.ConversionJob) error {
	return s.repo.LogJob(job)
}

// LogAsync records a job in the background (non-blocking).
func (s *Service) LogAsync(job *entities.ConversionJob) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.repo.LogJob(job); err != nil {
			log.Printf("Failed to log conversion job: %v", err)
		}
	}()
}

// Wait blocks until every background write has finished.
func (s *Service) Wait() {
	s.pending.Wait()
}

// LogConversion builds the job row for a conversion call and logs it asynchronously.
func (s *Service) LogConversion(record ConversionRecord) *entities.ConversionJob {
	job := NewConversionJob(record)
	s.LogAsync(job)
	return job
}

// NewConversionJob maps a conversion call onto a job row. A run that
// produced no entries counts as failed.
func NewConversionJob(record ConversionRecord) *entities.ConversionJob {
	job := &entities.ConversionJob{
		JobID:        uuid.NewString(),
		ResourceSlug: entities.ReferenceConverterSlug,
		InputFormat:  record.Result.Format,
		OutputFormat: record.Options.Style(),
		Status:       entities.ConversionJobCompleted,
		SourceName:   truncate(record.SourceName, 255),
		SourceSize:   record.SourceSize,
		EntryCount:   record.Result.EntryCount,
		WarningCount: len(record.Result.Warnings),
		DurationMs:   record.Result.ProcessingTime,
		CreatedAt:    time.Now(),
	}

	if job.InputFormat == "" {
		job.InputFormat = entities.FormatUnknown
	}
	if record.Duration > 0 {
		job.DurationMs = record.Duration.Milliseconds()
	}

	metadata := map[string]any{
		"options":  record.Options,
		"warnings": record.Result.Warnings,
	}
	if mdBytes, err := json.Marshal(metadata); err == nil {
		job.Metadata = string(mdBytes)
	}

	if record.Result.EntryCount == 0 {
		job.Status = entities.ConversionJobFailed
	}
	if record.Err != nil {
		job.Status = entities.ConversionJobFailed
		job.ErrorCount = 1
		job.ErrorMsg = truncate(record.Err.Error(), maxErrorLen)
	}

	return job
}

func (s *Service) GetJobs(limit, offset int) ([]entities.ConversionJob, int64, error) {
	return s.repo.GetJobs(limit, offset)
}

func (s *Service) GetJobsByFormat(format entities.SourceFormat, limit, offset int) ([]entities.ConversionJob, int64, error) {
	return s.repo.GetJobsByFormat(format, limit, offset)
}

func (s *Service) GetJobByID(id uint) (*entities.ConversionJob, error) {
	return s.repo.GetJobByID(id)
}

func (s *Service) GetStats() (*entities.ConversionJobStats, error) {
	return s.repo.GetStats()
}

// DeleteOldJobs removes jobs older than the specified duration.
func (s *Service) DeleteOldJobs(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldJobs(cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
