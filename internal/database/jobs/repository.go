package jobs

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/refhub/internal/entities"
)

const defaultPageSize = 50

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogJob saves a conversion job, assigning a job id and timestamp when unset.
func (r *Repository) LogJob(job *entities.ConversionJob) error {
	if job.JobID == "" {
		job.JobID = uuid.NewString()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	return r.db.Create(job).Error
}

// GetJobs retrieves paginated jobs, most recent first.
func (r *Repository) GetJobs(limit, offset int) ([]entities.ConversionJob, int64, error) {
	return r.page(r.db.Model(&entities.ConversionJob{}), limit, offset)
}

// GetJobsByFormat retrieves paginated jobs for one detected input format.
func (r *Repository) GetJobsByFormat(format entities.SourceFormat, limit, offset int) ([]entities.ConversionJob, int64, error) {
	return r.page(r.db.Model(&entities.ConversionJob{}).Where("input_format = ?", format), limit, offset)
}

func (r *Repository) page(query *gorm.DB, limit, offset int) ([]entities.ConversionJob, int64, error) {
	var jobs []entities.ConversionJob
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	err := query.Order("created_at DESC").Order("id DESC").Limit(limit).Offset(offset).Find(&jobs).Error
	return jobs, total, err
}

func (r *Repository) GetJobByID(id uint) (*entities.ConversionJob, error) {
	var job entities.ConversionJob
	if err := r.db.First(&job, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *Repository) GetJobByJobID(jobID string) (*entities.ConversionJob, error) {
	var job entities.ConversionJob
	if err := r.db.Where("job_id = ?", jobID).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// GetStats aggregates the whole job log.
func (r *Repository) GetStats() (*entities.ConversionJobStats, error) {
	stats := &entities.ConversionJobStats{ByFormat: make(map[string]int64)}

	var byStatus []struct {
		Status entities.ConversionJobStatus
		Count  int64
	}
	if err := r.db.Model(&entities.ConversionJob{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, err
	}
	for _, row := range byStatus {
		stats.Total += row.Count
		switch row.Status {
		case entities.ConversionJobCompleted:
			stats.Completed = row.Count
		case entities.ConversionJobFailed:
			stats.Failed = row.Count
		}
	}

	var totals struct {
		TotalEntries  int64
		AvgDurationMs float64
	}
	if err := r.db.Model(&entities.ConversionJob{}).
		Select("COALESCE(SUM(entry_count), 0) AS total_entries, COALESCE(AVG(duration_ms), 0) AS avg_duration_ms").
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	stats.TotalEntries = totals.TotalEntries
	stats.AvgDurationMs = totals.AvgDurationMs

	var byFormat []struct {
		Format string
		Count  int64
	}
	if err := r.db.Model(&entities.ConversionJob{}).
		Select("input_format AS format, COUNT(*) AS count").
		Group("input_format").
		Scan(&byFormat).Error; err != nil {
		return nil, err
	}
	for _, row := range byFormat {
		stats.ByFormat[row.Format] = row.Count
	}

	return stats, nil
}

// DeleteOldJobs removes jobs created before olderThan and returns how many were deleted.
func (r *Repository) DeleteOldJobs(olderThan time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", olderThan).Delete(&entities.ConversionJob{})
	return result.RowsAffected, result.Error
}
