package http

import (
	"context"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/refhub/internal/audit"
	"github.com/mrlokans/refhub/internal/conversion"
	"github.com/mrlokans/refhub/internal/entities"
)

// This file consolidates the collaborator interfaces used by HTTP controllers.
// Each controller depends only on the methods it calls.

// Converter runs the conversion pipeline.
type Converter interface {
	Convert(content string, opts entities.ConversionOptions) (conversion.Result, error)
}

// ConversionLogger records one job per conversion call.
type ConversionLogger interface {
	LogConversion(record audit.ConversionRecord) *entities.ConversionJob
}

// JobReader provides read access to the conversion job log.
type JobReader interface {
	GetJobs(limit, offset int) ([]entities.ConversionJob, int64, error)
	GetJobsByFormat(format entities.SourceFormat, limit, offset int) ([]entities.ConversionJob, int64, error)
	GetJobByID(id uint) (*entities.ConversionJob, error)
	GetStats() (*entities.ConversionJobStats, error)
}

// TaskRunner enqueues maintenance tasks and reports their status.
type TaskRunner interface {
	EnqueueJobCleanup(retentionDays int) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}
