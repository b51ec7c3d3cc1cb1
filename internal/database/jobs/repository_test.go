package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mrlokans/refhub/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.ConversionJob{})
	require.NoError(t, err)

	return db
}

func newJob(format entities.SourceFormat, status entities.ConversionJobStatus, entries int, duration int64) *entities.ConversionJob {
	return &entities.ConversionJob{
		ResourceSlug: entities.ReferenceConverterSlug,
		InputFormat:  format,
		OutputFormat: entities.CitationStyleBibTeX,
		Status:       status,
		EntryCount:   entries,
		DurationMs:   duration,
	}
}

func TestRepository_LogJob(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	job := newJob(entities.FormatRIS, entities.ConversionJobCompleted, 3, 12)
	require.NoError(t, repo.LogJob(job))

	assert.NotZero(t, job.ID)
	assert.Len(t, job.JobID, 36)
	assert.False(t, job.CreatedAt.IsZero())

	explicit := newJob(entities.FormatRIS, entities.ConversionJobCompleted, 1, 1)
	explicit.JobID = "fixed-id"
	require.NoError(t, repo.LogJob(explicit))
	assert.Equal(t, "fixed-id", explicit.JobID)

	duplicate := newJob(entities.FormatRIS, entities.ConversionJobCompleted, 1, 1)
	duplicate.JobID = "fixed-id"
	assert.Error(t, repo.LogJob(duplicate))
}

func TestRepository_GetJobs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	for i := 0; i < 15; i++ {
		job := newJob(entities.FormatRIS, entities.ConversionJobCompleted, i, 10)
		job.CreatedAt = time.Now().Add(time.Duration(-i) * time.Hour)
		require.NoError(t, repo.LogJob(job))
	}
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.LogJob(newJob(entities.FormatEndNote, entities.ConversionJobFailed, 0, 5)))
	}

	t.Run("get all jobs", func(t *testing.T) {
		jobs, total, err := repo.GetJobs(50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(20), total)
		assert.Len(t, jobs, 20)
	})

	t.Run("default page size", func(t *testing.T) {
		jobs, _, err := repo.GetJobs(0, -3)
		require.NoError(t, err)
		assert.Len(t, jobs, 20)
	})

	t.Run("filter by format", func(t *testing.T) {
		jobs, total, err := repo.GetJobsByFormat(entities.FormatRIS, 50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		for _, job := range jobs {
			assert.Equal(t, entities.FormatRIS, job.InputFormat)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		jobs, total, err := repo.GetJobsByFormat(entities.FormatRIS, 5, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		assert.Len(t, jobs, 5)

		jobs2, _, err := repo.GetJobsByFormat(entities.FormatRIS, 5, 5)
		require.NoError(t, err)
		assert.Len(t, jobs2, 5)
		assert.NotEqual(t, jobs[0].ID, jobs2[0].ID)
	})

	t.Run("order by created_at desc", func(t *testing.T) {
		jobs, _, err := repo.GetJobs(20, 0)
		require.NoError(t, err)
		for i := 1; i < len(jobs); i++ {
			assert.False(t, jobs[i-1].CreatedAt.Before(jobs[i].CreatedAt))
		}
	})
}

func TestRepository_GetJobByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	job := newJob(entities.FormatXML, entities.ConversionJobCompleted, 2, 7)
	job.SourceName = "library.xml"
	require.NoError(t, repo.LogJob(job))

	t.Run("existing job", func(t *testing.T) {
		found, err := repo.GetJobByID(job.ID)
		require.NoError(t, err)
		assert.Equal(t, "library.xml", found.SourceName)

		byJobID, err := repo.GetJobByJobID(job.JobID)
		require.NoError(t, err)
		assert.Equal(t, job.ID, byJobID.ID)
	})

	t.Run("non-existing job", func(t *testing.T) {
		_, err := repo.GetJobByID(999)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		_, err = repo.GetJobByJobID("missing")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestRepository_GetStats(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	t.Run("empty log", func(t *testing.T) {
		stats, err := repo.GetStats()
		require.NoError(t, err)
		assert.Equal(t, int64(0), stats.Total)
		assert.Equal(t, int64(0), stats.TotalEntries)
		assert.Empty(t, stats.ByFormat)
	})

	require.NoError(t, repo.LogJob(newJob(entities.FormatRIS, entities.ConversionJobCompleted, 4, 10)))
	require.NoError(t, repo.LogJob(newJob(entities.FormatRIS, entities.ConversionJobCompleted, 6, 20)))
	require.NoError(t, repo.LogJob(newJob(entities.FormatUnknown, entities.ConversionJobFailed, 0, 30)))

	stats, err := repo.GetStats()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.Completed)
	assert.Equal(t, int64(1), stats.Failed)
	assert.Equal(t, int64(10), stats.TotalEntries)
	assert.InDelta(t, 20.0, stats.AvgDurationMs, 0.001)
	assert.Equal(t, map[string]int64{"ris": 2, "unknown": 1}, stats.ByFormat)
}

func TestRepository_DeleteOldJobs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	now := time.Now()

	oldJob := newJob(entities.FormatRIS, entities.ConversionJobCompleted, 1, 1)
	oldJob.CreatedAt = now.Add(-48 * time.Hour)
	oldJob.SourceName = "old.ris"
	newerJob := newJob(entities.FormatRIS, entities.ConversionJobCompleted, 1, 1)
	newerJob.CreatedAt = now.Add(-1 * time.Hour)
	newerJob.SourceName = "new.ris"

	require.NoError(t, repo.LogJob(oldJob))
	require.NoError(t, repo.LogJob(newerJob))

	deleted, err := repo.DeleteOldJobs(now.Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	jobs, total, err := repo.GetJobs(50, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, jobs, 1)
	assert.Equal(t, "new.ris", jobs[0].SourceName)
}
