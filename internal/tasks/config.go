package tasks

import (
	"time"

	"github.com/mrlokans/refhub/internal/config"
)

// Config holds configuration for the task queue.
type Config struct {
	Workers           int           // concurrent workers
	MaxRetries        int           // default attempts for failed tasks
	RetryDelay        time.Duration // backoff between retries
	TaskTimeout       time.Duration
	ReleaseAfter      time.Duration // stuck tasks return to the queue after this
	CleanupInterval   time.Duration // how often finished tasks are purged
	RetentionDuration time.Duration // how long finished tasks are kept
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:           2,
		MaxRetries:        3,
		RetryDelay:        1 * time.Minute,
		TaskTimeout:       5 * time.Minute,
		ReleaseAfter:      15 * time.Minute,
		CleanupInterval:   1 * time.Hour,
		RetentionDuration: 24 * time.Hour,
	}
}

// ConfigFromSettings maps environment settings onto a queue Config.
// Non-positive values keep their defaults.
func ConfigFromSettings(settings config.Tasks) Config {
	cfg := DefaultConfig()
	if settings.Workers > 0 {
		cfg.Workers = settings.Workers
	}
	if settings.MaxRetries > 0 {
		cfg.MaxRetries = settings.MaxRetries
	}
	for _, d := range []struct {
		src time.Duration
		dst *time.Duration
	}{
		{settings.RetryDelay, &cfg.RetryDelay},
		{settings.TaskTimeout, &cfg.TaskTimeout},
		{settings.ReleaseAfter, &cfg.ReleaseAfter},
		{settings.CleanupInterval, &cfg.CleanupInterval},
		{settings.RetentionDuration, &cfg.RetentionDuration},
	} {
		if d.src > 0 {
			*d.dst = d.src
		}
	}
	return cfg
}
