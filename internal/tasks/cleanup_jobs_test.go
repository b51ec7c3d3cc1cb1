package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCleaner struct {
	retention time.Duration
	deleted   int64
	err       error
}

func (f *fakeCleaner) DeleteOldJobs(retention time.Duration) (int64, error) {
	f.retention = retention
	return f.deleted, f.err
}

func TestCleanupConversionJobsTaskConfig(t *testing.T) {
	cfg := CleanupConversionJobsTask{RetentionDays: 7}.Config()

	assert.Equal(t, "cleanup_conversion_jobs", cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 5*time.Minute, cfg.Backoff)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	require.NotNil(t, cfg.Retention)
	assert.Equal(t, 24*time.Hour, cfg.Retention.Duration)
}

func TestCleanupConversionJobsProcessor(t *testing.T) {
	t.Run("uses task retention", func(t *testing.T) {
		cleaner := &fakeCleaner{deleted: 4}
		err := CleanupConversionJobsProcessor(cleaner)(context.Background(), CleanupConversionJobsTask{RetentionDays: 7})
		require.NoError(t, err)
		assert.Equal(t, 7*24*time.Hour, cleaner.retention)
	})

	t.Run("falls back to default retention", func(t *testing.T) {
		cleaner := &fakeCleaner{}
		err := CleanupConversionJobsProcessor(cleaner)(context.Background(), CleanupConversionJobsTask{})
		require.NoError(t, err)
		assert.Equal(t, time.Duration(DefaultJobRetentionDays)*24*time.Hour, cleaner.retention)
	})

	t.Run("wraps cleaner errors", func(t *testing.T) {
		cleaner := &fakeCleaner{err: errors.New("disk full")}
		err := CleanupConversionJobsProcessor(cleaner)(context.Background(), CleanupConversionJobsTask{RetentionDays: 1})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cleanup conversion jobs")
	})

	t.Run("nil cleaner", func(t *testing.T) {
		err := CleanupConversionJobsProcessor(nil)(context.Background(), CleanupConversionJobsTask{})
		assert.Error(t, err)
	})
}
